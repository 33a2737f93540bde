// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

const userColumns = `id, email, name, role, created_at, updated_at`

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// User operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	role := u.Role
	if role == "" {
		role = domain.UserRoleContributor
	}

	created, err := scanUser(q.QueryRow(ctx,
		`INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.Name, string(role)))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return created, nil
}

// UpdateRole changes a user's role.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2
		 RETURNING `+userColumns, string(role), id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// List returns users ordered by creation time.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var rows []userRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// CountByRole returns the number of users holding each role.
func (r *Repo) CountByRole(ctx context.Context) (map[domain.UserRole]int, error) {
	var rows []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT role, count(*) AS count FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}

	out := make(map[domain.UserRole]int, len(rows))
	for _, row := range rows {
		out[domain.UserRole(row.Role)] = row.Count
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type userRow struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var ur userRow
	if err := row.Scan(&ur.ID, &ur.Email, &ur.Name, &ur.Role, &ur.CreatedAt, &ur.UpdatedAt); err != nil {
		return nil, err
	}
	u := ur.toDomain()
	return &u, nil
}

func (ur userRow) toDomain() domain.User {
	return domain.User{
		ID:        ur.ID,
		Email:     ur.Email,
		Name:      ur.Name,
		Role:      domain.UserRole(ur.Role),
		CreatedAt: ur.CreatedAt,
		UpdatedAt: ur.UpdatedAt,
	}
}
