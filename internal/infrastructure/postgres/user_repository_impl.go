package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
	"github.com/oksasatya/workspace-hub/internal/domain/repository"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

const userColumns = `id::text, name, email, is_active, COALESCE(profile_metadata, '{}'::jsonb), created_at, updated_at, last_login_at`

// querier is the part of *pgxpool.Pool the user repository needs.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type UserRepository struct {
	pool       querier
	bcryptCost int
	now        func() time.Time
}

func NewUserRepository(pool *pgxpool.Pool, bcryptCost int) *UserRepository {
	return &UserRepository{
		pool:       pool,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func scanUser(row pgx.Row, withHash bool) (*entity.User, error) {
	u := &entity.User{}
	dest := []any{&u.ID, &u.Name, &u.Email, &u.IsActive, &u.ProfileMetadata, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt}
	if withHash {
		dest = append(dest, &u.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, in entity.NewUser) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password, r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	meta := in.ProfileMetadata
	if meta == nil {
		meta = map[string]any{}
	}
	now := r.now()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, profile_metadata, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		RETURNING `+userColumns,
		in.Name, strings.ToLower(in.Email), hash, meta, now)
	return scanUser(row, false)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, false)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+`, password_hash FROM users WHERE email = lower($1)`, email)
	return scanUser(row, true)
}

func (r *UserRepository) Update(ctx context.Context, id string, in entity.UserUpdate) (*entity.User, error) {
	var hash string
	if in.Password != nil {
		h, err := helpers.HashPassword(*in.Password, r.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}
	sql, args := buildUserUpdate(id, in, hash, r.now())
	return scanUser(r.pool.QueryRow(ctx, sql, args...), false)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET last_login_at = $2, updated_at = $2
		WHERE id = $1
		RETURNING `+userColumns, id, r.now())
	return scanUser(row, false)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
	return scanUser(row, false)
}

// softDeleteAttempts bounds retries when the row is reactivated between the
// conditional update and the classifying read.
const softDeleteAttempts = 3

func (r *UserRepository) SoftDelete(ctx context.Context, id string) (*entity.User, error) {
	for attempt := 0; attempt < softDeleteAttempts; attempt++ {
		row := r.pool.QueryRow(ctx, `
			UPDATE users SET is_active = FALSE, updated_at = $2
			WHERE id = $1 AND is_active
			RETURNING `+userColumns, id, r.now())
		u, err := scanUser(row, false)
		if !errors.Is(err, repository.ErrNotFound) {
			return u, err
		}

		// zero rows: either missing or already inactive
		var active bool
		if err := r.pool.QueryRow(ctx, `SELECT is_active FROM users WHERE id = $1`, id).Scan(&active); err != nil {
			return nil, translate(err)
		}
		if !active {
			return nil, repository.ErrAlreadyInactive
		}
	}
	return nil, fmt.Errorf("soft delete %s: user kept being reactivated", id)
}

func (r *UserRepository) List(ctx context.Context, q entity.ListQuery) (entity.UserPage, error) {
	where, args := buildListFilter(q)
	order := buildListOrder(q)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return entity.UserPage{}, err
	}

	pageArgs := append(args, q.Limit, q.Offset())
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		userColumns, where, order, len(args)+1, len(args)+2), pageArgs...)
	if err != nil {
		return entity.UserPage{}, err
	}
	defer rows.Close()

	users := make([]entity.User, 0, q.Limit)
	for rows.Next() {
		u, err := scanUser(rows, false)
		if err != nil {
			return entity.UserPage{}, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return entity.UserPage{}, err
	}

	return entity.UserPage{
		Users:      users,
		Pagination: entity.NewPagination(q.Page, q.Limit, int(total)),
	}, nil
}

func (r *UserRepository) Stats(ctx context.Context, since time.Time) (entity.UserStats, error) {
	var total, active, recent int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE is_active),
		       count(*) FILTER (WHERE created_at >= $1)
		FROM users`, since).Scan(&total, &active, &recent)
	if err != nil {
		return entity.UserStats{}, err
	}
	return entity.UserStats{
		Total:    int(total),
		Active:   int(active),
		Inactive: int(total - active),
		Recent:   int(recent),
	}, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
