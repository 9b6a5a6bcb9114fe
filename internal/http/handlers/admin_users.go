package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/domain/user"
)

type UserLister interface {
	List(ctx context.Context) ([]user.User, error)
}

type AdminUsersHandler struct {
	users UserLister
}

func NewAdminUsersHandler(users UserLister) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

// GET /api/admin/users — admin role enforced by the route gate.

func (h *AdminUsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}
