package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/domain/application"
	"github.com/jobtrackr/jobtrackr/internal/domain/user"
	"github.com/jobtrackr/jobtrackr/internal/http/middlewares"
	"github.com/jobtrackr/jobtrackr/internal/jobs"
)

// JobsService is the ownership-scoped CRUD surface; the handler adds
// nothing but HTTP plumbing on top of it.
type JobsService interface {
	Create(ctx context.Context, p user.Principal, req application.CreateRequest) (application.Application, error)
	List(ctx context.Context, p user.Principal, filter application.ListFilter) ([]application.Application, error)
	Get(ctx context.Context, p user.Principal, id string) (application.Application, error)
	Update(ctx context.Context, p user.Principal, id string, req application.UpdateRequest) (application.Application, error)
	Delete(ctx context.Context, p user.Principal, id string) error
}

type ApplicationsHandler struct {
	svc JobsService
}

func NewApplicationsHandler(svc JobsService) *ApplicationsHandler {
	return &ApplicationsHandler{svc: svc}
}

// POST /api/jobs

func (h *ApplicationsHandler) Create(ctx *gin.Context) {
	p, ok := middlewares.PrincipalFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req application.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	app, err := h.svc.Create(cctx, p, req)

	if err != nil {
		h.respondServiceError(ctx, err, "Could not create application")
		return
	}

	ctx.JSON(http.StatusCreated, app)
}

// GET /api/jobs

func (h *ApplicationsHandler) List(ctx *gin.Context) {
	p, ok := middlewares.PrincipalFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	filter, ok := parseListFilter(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	apps, err := h.svc.List(cctx, p, filter)

	if err != nil {
		h.respondServiceError(ctx, err, "Could not list applications")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": apps,
		"count": len(apps),
	})
}

// GET /api/jobs/:id

func (h *ApplicationsHandler) Get(ctx *gin.Context) {
	h.withRecord(ctx, "Could not fetch application", func(cctx context.Context, p user.Principal, id string) (any, int, error) {
		app, err := h.svc.Get(cctx, p, id)
		return app, http.StatusOK, err
	})
}

// PUT /api/jobs/:id

func (h *ApplicationsHandler) Update(ctx *gin.Context) {
	p, ok := middlewares.PrincipalFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")

	if !isUUID(id) {
		RespondNotFound(ctx, "Application not found")
		return
	}

	var req application.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	app, err := h.svc.Update(cctx, p, id, req)

	if err != nil {
		h.respondServiceError(ctx, err, "Could not update application")
		return
	}

	ctx.JSON(http.StatusOK, app)
}

// DELETE /api/jobs/:id

func (h *ApplicationsHandler) Delete(ctx *gin.Context) {
	h.withRecord(ctx, "Could not delete application", func(cctx context.Context, p user.Principal, id string) (any, int, error) {
		err := h.svc.Delete(cctx, p, id)
		return gin.H{}, http.StatusOK, err
	})
}

// withRecord factors the shared principal/id/timeout plumbing of the
// single-record routes.
func (h *ApplicationsHandler) withRecord(ctx *gin.Context, failMsg string, fn func(context.Context, user.Principal, string) (any, int, error)) {
	p, ok := middlewares.PrincipalFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")

	if !isUUID(id) {
		RespondNotFound(ctx, "Application not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	body, status, err := fn(cctx, p, id)

	if err != nil {
		h.respondServiceError(ctx, err, failMsg)
		return
	}

	ctx.JSON(status, body)
}

func (h *ApplicationsHandler) respondServiceError(ctx *gin.Context, err error, internalMsg string) {
	var vErr *jobs.ValidationError

	switch {
	case errors.As(err, &vErr):
		RespondBadRequest(ctx, "Invalid application fields", gin.H{"fields": vErr.Fields})
	case errors.Is(err, application.ErrNotFound):
		RespondNotFound(ctx, "Application not found")
	case errors.Is(err, jobs.ErrForbidden):
		RespondForbidden(ctx, "Not authorized to access this application")
	default:
		RespondInternal(ctx, internalMsg)
	}
}

func parseListFilter(ctx *gin.Context) (application.ListFilter, bool) {
	var filter application.ListFilter

	if s := ctx.Query("status"); s != "" {
		status := application.Status(s)

		if !status.IsValid() {
			RespondBadRequest(ctx, "Invalid status filter", gin.H{"status": s})
			return filter, false
		}

		filter.Status = &status
	}

	if s := ctx.Query("startDate"); s != "" {
		from, err := application.ParseDate(s)

		if err != nil {
			RespondBadRequest(ctx, "Invalid startDate", gin.H{"startDate": s})
			return filter, false
		}

		filter.From = &from
	}

	if s := ctx.Query("endDate"); s != "" {
		to, err := application.ParseDate(s)

		if err != nil {
			RespondBadRequest(ctx, "Invalid endDate", gin.H{"endDate": s})
			return filter, false
		}

		filter.To = &to
	}

	filter.SortBy = ctx.Query("sortBy")

	return filter, true
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
