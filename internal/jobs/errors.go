package jobs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden: the record exists but the principal is neither its
	// owner nor an admin.
	ErrForbidden = errors.New("not allowed to access this application")

	// ErrStoreUnavailable wraps unexpected persistence failures. The
	// service never retries; that policy belongs to callers.
	ErrStoreUnavailable = errors.New("store unavailable")
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))

	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrStoreUnavailable)
}
