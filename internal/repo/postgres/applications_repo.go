package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobtrackr/jobtrackr/internal/domain/application"
	"github.com/jobtrackr/jobtrackr/internal/observability"
)

type ApplicationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewApplicationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ApplicationsRepo {
	return &ApplicationsRepo{pool: pool, prom: prom}
}

func (r *ApplicationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const applicationColumns = `id, user_id, company, role, status, application_date, link, notes, seq, created_at, updated_at`

func (r *ApplicationsRepo) Insert(ctx context.Context, app application.Application) (application.Application, error) {
	// seq is a bigserial; it fixes insertion order for tie-breaking.
	err := r.observe("applications.insert", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO applications (id, user_id, company, role, status, application_date, link, notes, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			 RETURNING seq`,
			app.ID, app.UserID, app.Company, app.Role, app.Status, app.ApplicationDate,
			app.Link, app.Notes, app.CreatedAt, app.UpdatedAt,
		).Scan(&app.Seq)
	})

	if err != nil {
		return application.Application{}, err
	}

	return app, nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (application.Application, error) {
	var app application.Application

	err := r.observe("applications.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id,
		).Scan(
			&app.ID, &app.UserID, &app.Company, &app.Role, &app.Status,
			&app.ApplicationDate, &app.Link, &app.Notes, &app.Seq,
			&app.CreatedAt, &app.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}

		return application.Application{}, err
	}

	return app, nil
}

func (r *ApplicationsRepo) List(ctx context.Context, filter application.ListFilter) ([]application.Application, error) {
	baseQuery := `SELECT ` + applicationColumns + ` FROM applications`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.OwnerID != nil {
		conds = append(conds, fmt.Sprintf("user_id = $%d", argsPosition))
		args = append(args, *filter.OwnerID)
		argsPosition++
	}

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, *filter.Status)
		argsPosition++
	}

	// inclusive bounds on both ends
	if filter.From != nil {
		conds = append(conds, fmt.Sprintf("application_date >= $%d", argsPosition))
		args = append(args, *filter.From)
		argsPosition++
	}

	if filter.To != nil {
		conds = append(conds, fmt.Sprintf("application_date <= $%d", argsPosition))
		args = append(args, *filter.To)
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// The sort column comes from a whitelist, never from user input.
	column, desc := application.SortKey(filter.SortBy)
	direction := "ASC"

	if desc {
		direction = "DESC"
	}

	query += fmt.Sprintf(" ORDER BY %s %s, seq ASC", column, direction)

	output := make([]application.Application, 0)

	err := r.observe("applications.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var app application.Application

			err = rows.Scan(
				&app.ID, &app.UserID, &app.Company, &app.Role, &app.Status,
				&app.ApplicationDate, &app.Link, &app.Notes, &app.Seq,
				&app.CreatedAt, &app.UpdatedAt,
			)

			if err != nil {
				return err
			}

			output = append(output, app)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *ApplicationsRepo) Update(ctx context.Context, app application.Application) (application.Application, error) {
	err := r.observe("applications.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE applications
				SET company = $2,
						role = $3,
						status = $4,
						application_date = $5,
						link = $6,
						notes = $7,
						updated_at = $8
			WHERE id = $1
			RETURNING `+applicationColumns,
			app.ID, app.Company, app.Role, app.Status, app.ApplicationDate,
			app.Link, app.Notes, app.UpdatedAt,
		).Scan(
			&app.ID, &app.UserID, &app.Company, &app.Role, &app.Status,
			&app.ApplicationDate, &app.Link, &app.Notes, &app.Seq,
			&app.CreatedAt, &app.UpdatedAt,
		)
	})

	if err != nil {
		// the record can vanish between the service's existence check
		// and this statement
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}

		return application.Application{}, err
	}

	return app, nil
}

func (r *ApplicationsRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("applications.delete", func() error {
		var err error
		tag, err = r.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
		return err
	})

	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}

	return nil
}
