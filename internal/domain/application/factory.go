package application

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func New(ownerID string, req CreateRequest) Application {
	now := time.Now().UTC()

	status := req.Status

	if status == "" {
		status = StatusApplied
	}

	return Application{
		ID:              uuid.NewString(),
		UserID:          ownerID,
		Company:         strings.TrimSpace(req.Company),
		Role:            strings.TrimSpace(req.Role),
		Status:          status,
		ApplicationDate: req.ApplicationDate,
		Link:            strings.TrimSpace(req.Link),
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
