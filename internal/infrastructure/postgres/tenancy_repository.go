package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
)

var ErrInvalidCategoryType = errors.New("invalid category type")

// TenancyRepository creates rows of the workspace -> space -> category chain.
// Each creator is enrolled as a member of what they create.
type TenancyRepository struct {
	pool *pgxpool.Pool
}

func NewTenancyRepository(pool *pgxpool.Pool) *TenancyRepository {
	return &TenancyRepository{pool: pool}
}

// CreateWorkspace inserts the workspace and an owner membership for ownerID.
func (r *TenancyRepository) CreateWorkspace(ctx context.Context, name, description, ownerID string) (*entity.Workspace, error) {
	w := &entity.Workspace{Name: name, Description: description, OwnerID: ownerID}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO workspaces (name, description, owner_id, settings)
			VALUES ($1, NULLIF($2, ''), $3, '{}'::jsonb)
			RETURNING id::text, is_active, created_at, updated_at`,
			name, description, ownerID).Scan(&w.ID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert workspace: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, now())`, w.ID, ownerID, entity.RoleOwner)
		if err != nil {
			return fmt.Errorf("insert workspace owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.Settings = map[string]any{}
	return w, nil
}

// CreateSpace inserts a space in workspaceID and enrolls createdBy as its owner.
func (r *TenancyRepository) CreateSpace(ctx context.Context, workspaceID, name, description, createdBy string, private bool) (*entity.Space, error) {
	s := &entity.Space{Name: name, Description: description, WorkspaceID: workspaceID, CreatedBy: createdBy, IsPrivate: private}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO spaces (name, description, workspace_id, created_by, is_private, sort_order, settings)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5,
			        (SELECT COALESCE(max(sort_order) + 1, 0) FROM spaces WHERE workspace_id = $3),
			        '{}'::jsonb)
			RETURNING id::text, is_active, sort_order, created_at, updated_at`,
			name, description, workspaceID, createdBy, private).
			Scan(&s.ID, &s.IsActive, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert space: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO space_members (space_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, now())`, s.ID, createdBy, entity.RoleOwner)
		if err != nil {
			return fmt.Errorf("insert space owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Settings = map[string]any{}
	return s, nil
}

// CreateCategory inserts a category of type LIST, SPRINT or TEXT into spaceID.
func (r *TenancyRepository) CreateCategory(ctx context.Context, spaceID, name, categoryType, ownerID string) (*entity.Category, error) {
	if !entity.ValidCategoryType(categoryType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategoryType, categoryType)
	}
	c := &entity.Category{Name: name, SpaceID: spaceID, OwnerID: ownerID, Type: categoryType}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, space_id, owner_id, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at`,
		name, spaceID, ownerID, categoryType).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}
