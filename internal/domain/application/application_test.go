package application_test

import (
	"testing"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/domain/application"
)

func TestNewDefaults(t *testing.T) {
	req := application.CreateRequest{
		Company:         "  Acme  ",
		Role:            " Backend Engineer ",
		ApplicationDate: application.NewDate(2026, time.January, 10),
		Link:            " https://jobs.acme.example/backend ",
	}

	app := application.New("owner-1", req)

	if app.ID == "" {
		t.Fatalf("expected generated id")
	}

	if app.UserID != "owner-1" {
		t.Fatalf("owner not set, got %q", app.UserID)
	}

	if app.Status != application.StatusApplied {
		t.Fatalf("status should default to Applied, got %q", app.Status)
	}

	if app.Company != "Acme" || app.Role != "Backend Engineer" {
		t.Fatalf("fields not trimmed: %q / %q", app.Company, app.Role)
	}

	if app.Link != "https://jobs.acme.example/backend" {
		t.Fatalf("link not trimmed: %q", app.Link)
	}

	if app.CreatedAt.IsZero() || !app.CreatedAt.Equal(app.UpdatedAt) {
		t.Fatalf("timestamps not initialized together: %v / %v", app.CreatedAt, app.UpdatedAt)
	}
}

func TestNewKeepsExplicitStatus(t *testing.T) {
	req := application.CreateRequest{
		Company:         "Acme",
		Role:            "Backend Engineer",
		Status:          application.StatusInterview,
		ApplicationDate: application.NewDate(2026, time.January, 10),
	}

	app := application.New("owner-1", req)

	if app.Status != application.StatusInterview {
		t.Fatalf("explicit status overwritten, got %q", app.Status)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []application.Status{
		application.StatusApplied,
		application.StatusInterview,
		application.StatusOffer,
		application.StatusRejected,
	} {
		if !s.IsValid() {
			t.Fatalf("%q should be valid", s)
		}
	}

	for _, s := range []application.Status{"", "applied", "Ghosted"} {
		if s.IsValid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		wantCol  string
		wantDesc bool
	}{
		{name: "default_when_empty", sortBy: "", wantCol: "application_date", wantDesc: true},
		{name: "explicit_default", sortBy: "-applicationDate", wantCol: "application_date", wantDesc: true},
		{name: "ascending_date", sortBy: "applicationDate", wantCol: "application_date", wantDesc: false},
		{name: "company", sortBy: "company", wantCol: "company", wantDesc: false},
		{name: "company_desc", sortBy: "-company", wantCol: "company", wantDesc: true},
		{name: "created_at", sortBy: "createdAt", wantCol: "created_at", wantDesc: false},
		{name: "unknown_falls_back", sortBy: "salary", wantCol: "application_date", wantDesc: true},
		{name: "injection_attempt_falls_back", sortBy: "id; DROP TABLE applications", wantCol: "application_date", wantDesc: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			col, desc := application.SortKey(tt.sortBy)

			if col != tt.wantCol || desc != tt.wantDesc {
				t.Fatalf("got (%q, %v), want (%q, %v)", col, desc, tt.wantCol, tt.wantDesc)
			}
		})
	}
}
