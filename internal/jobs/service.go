package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/domain/application"
	"github.com/jobtrackr/jobtrackr/internal/domain/user"
)

// Store is the persistence surface the service needs. Kept small so
// tests can fake it easily.
type Store interface {
	Insert(ctx context.Context, app application.Application) (application.Application, error)
	GetByID(ctx context.Context, id string) (application.Application, error)
	List(ctx context.Context, filter application.ListFilter) ([]application.Application, error)
	Update(ctx context.Context, app application.Application) (application.Application, error)
	Delete(ctx context.Context, id string) error
}

// Service implements the ownership-scoped CRUD contract. Every operation
// takes the resolved principal explicitly; there is no ambient identity.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create sets the owner from the principal unconditionally. A caller
// cannot create a record on behalf of someone else.
func (s *Service) Create(ctx context.Context, p user.Principal, req application.CreateRequest) (application.Application, error) {
	app := application.New(p.ID, req)

	if err := Validate(app); err != nil {
		return application.Application{}, err
	}

	created, err := s.store.Insert(ctx, app)

	if err != nil {
		return application.Application{}, storeErr("create application", err)
	}

	return created, nil
}

// List scopes the candidate set to the principal's own records unless
// the principal is an admin. The result is materialized at call time.
func (s *Service) List(ctx context.Context, p user.Principal, filter application.ListFilter) ([]application.Application, error) {
	if p.IsAdmin() {
		filter.OwnerID = nil
	} else {
		owner := p.ID
		filter.OwnerID = &owner
	}

	apps, err := s.store.List(ctx, filter)

	if err != nil {
		return nil, storeErr("list applications", err)
	}

	return apps, nil
}

// Get checks existence before ownership: a missing record is NotFound,
// an existing record the principal cannot touch is Forbidden.
func (s *Service) Get(ctx context.Context, p user.Principal, id string) (application.Application, error) {
	app, err := s.store.GetByID(ctx, id)

	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, err
		}
		return application.Application{}, storeErr("get application", err)
	}

	if !user.CanAccess(p, app.UserID) {
		return application.Application{}, ErrForbidden
	}

	return app, nil
}

// Update merges the partial request into the stored record, re-validates
// and persists. The owner field is immutable; UpdateRequest cannot even
// carry one. Concurrent updates are last-write-wins.
func (s *Service) Update(ctx context.Context, p user.Principal, id string, req application.UpdateRequest) (application.Application, error) {
	app, err := s.Get(ctx, p, id)

	if err != nil {
		return application.Application{}, err
	}

	merged := merge(app, req)

	if err := Validate(merged); err != nil {
		return application.Application{}, err
	}

	merged.UpdatedAt = time.Now().UTC()

	updated, err := s.store.Update(ctx, merged)

	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, err
		}
		return application.Application{}, storeErr("update application", err)
	}

	return updated, nil
}

// Delete removes the record permanently. A repeated delete on the same
// id reports NotFound.
func (s *Service) Delete(ctx context.Context, p user.Principal, id string) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}

	err := s.store.Delete(ctx, id)

	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return err
		}
		return storeErr("delete application", err)
	}

	return nil
}

func merge(app application.Application, req application.UpdateRequest) application.Application {
	if req.Company != nil {
		app.Company = strings.TrimSpace(*req.Company)
	}

	if req.Role != nil {
		app.Role = strings.TrimSpace(*req.Role)
	}

	if req.Status != nil {
		app.Status = *req.Status
	}

	if req.ApplicationDate != nil {
		app.ApplicationDate = *req.ApplicationDate
	}

	if req.Link != nil {
		// an explicit empty string clears the link
		app.Link = strings.TrimSpace(*req.Link)
	}

	if req.Notes != nil {
		app.Notes = *req.Notes
	}

	return app
}
