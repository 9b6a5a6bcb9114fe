package jobs

import (
	"net/url"
	"strings"

	"github.com/jobtrackr/jobtrackr/internal/domain/application"
)

// Validate checks field shape only. It deliberately knows nothing about
// the store so it can be unit-tested in isolation, and it runs on the
// full record so partial updates are re-checked after the merge.
func Validate(app application.Application) error {
	var fields []FieldViolation

	if strings.TrimSpace(app.Company) == "" {
		fields = append(fields, FieldViolation{Field: "company", Message: "is required"})
	}

	if strings.TrimSpace(app.Role) == "" {
		fields = append(fields, FieldViolation{Field: "role", Message: "is required"})
	}

	if app.ApplicationDate.IsZero() {
		fields = append(fields, FieldViolation{Field: "applicationDate", Message: "is required"})
	}

	if !app.Status.IsValid() {
		fields = append(fields, FieldViolation{Field: "status", Message: "must be one of Applied, Interview, Offer, Rejected"})
	}

	if app.Link != "" && !isWellFormedURL(app.Link) {
		fields = append(fields, FieldViolation{Field: "link", Message: "must be a valid URL"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func isWellFormedURL(raw string) bool {
	u, err := url.Parse(raw)

	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
