package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/repo/postgres"
	"github.com/jobtrackr/jobtrackr/internal/security"
)

// EnsureAdminUser creates the configured admin account if it does not
// exist yet. A deployment without admin credentials simply skips this.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	users := postgres.NewUsersRepo(pool)

	_, err = users.Create(ctx, cfg.AdminEmail, hash, cfg.AdminName, cfg.AdminRole)

	if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
		// lost a race with another instance seeding the same admin
		return nil
	}

	return err
}
