package application

import (
	"errors"
	"time"
)

type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	default:
		return false
	}
}

var ErrNotFound = errors.New("application not found")

type Application struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user"`
	Company         string    `json:"company"`
	Role            string    `json:"role"`
	Status          Status    `json:"status"`
	ApplicationDate Date      `json:"applicationDate"`
	Link            string    `json:"link,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	// Seq is assigned by the store on insert and breaks ordering ties
	// between records sharing an application date.
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Company         string `json:"company" binding:"required,max=200"`
	Role            string `json:"role" binding:"required,max=200"`
	Status          Status `json:"status" binding:"omitempty,oneof=Applied Interview Offer Rejected"`
	ApplicationDate Date   `json:"applicationDate" binding:"required"`
	Link            string `json:"link" binding:"omitempty,url,max=2000"`
	Notes           string `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateRequest is a partial update: nil means "leave as is". There is
// deliberately no owner field here, so ownership cannot be changed over
// the wire at all.
type UpdateRequest struct {
	Company         *string `json:"company" binding:"omitempty,max=200"`
	Role            *string `json:"role" binding:"omitempty,max=200"`
	Status          *Status `json:"status" binding:"omitempty,oneof=Applied Interview Offer Rejected"`
	ApplicationDate *Date   `json:"applicationDate"`
	Link            *string `json:"link" binding:"omitempty,max=2000"`
	Notes           *string `json:"notes" binding:"omitempty,max=5000"`
}

// with pointers if optional, it will be nil
type ListFilter struct {
	OwnerID *string
	Status  *Status
	From    *Date
	To      *Date
	SortBy  string
}
