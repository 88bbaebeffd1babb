package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestBuildUserUpdateOnlyStampsWhenEmpty(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sql, args := buildUserUpdate("id-1", entity.UserUpdate{}, "", now)

	assert.Equal(t, "UPDATE users SET updated_at = $2 WHERE id = $1 RETURNING "+userColumns, sql)
	assert.Equal(t, []any{"id-1", now}, args)
}

func TestBuildUserUpdateProvidedFields(t *testing.T) {
	now := time.Now()
	in := entity.UserUpdate{
		Name:     strp("Ana"),
		Email:    strp("Ana@Example.com"),
		Password: strp("Secret123"),
		IsActive: boolp(false),
	}
	sql, args := buildUserUpdate("id-1", in, "$2a$hash", now)

	assert.Contains(t, sql, "name = $3")
	assert.Contains(t, sql, "email = lower($4)")
	assert.Contains(t, sql, "password_hash = $5")
	assert.Contains(t, sql, "is_active = $6")
	assert.NotContains(t, sql, "profile_metadata =")
	assert.Equal(t, []any{"id-1", now, "Ana", "Ana@Example.com", "$2a$hash", false}, args)
}

func TestBuildUserUpdateMetadata(t *testing.T) {
	now := time.Now()
	patch := map[string]any{"phone": "11999887766"}

	sql, args := buildUserUpdate("id", entity.UserUpdate{MetadataPatch: patch}, "", now)
	assert.Contains(t, sql, "profile_metadata = COALESCE(profile_metadata, '{}'::jsonb) || $3::jsonb")
	assert.Len(t, args, 3)

	replace := map[string]any{"bio": "dev"}
	sql, args = buildUserUpdate("id", entity.UserUpdate{ProfileMetadata: replace, MetadataPatch: patch}, "", now)
	assert.Contains(t, sql, "profile_metadata = $3::jsonb || $4::jsonb")
	assert.Equal(t, replace, args[2])
	assert.Equal(t, patch, args[3])
}

func TestBuildListFilter(t *testing.T) {
	where, args := buildListFilter(entity.ListQuery{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildListFilter(entity.ListQuery{OnlyActive: true, Search: " 50%_off "})
	assert.Equal(t, " WHERE is_active AND name ILIKE $1", where)
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestBuildListOrder(t *testing.T) {
	assert.Equal(t, "name ASC, id ASC", buildListOrder(entity.ListQuery{SortBy: "name", SortOrder: "asc"}))
	assert.Equal(t, "email DESC, id DESC", buildListOrder(entity.ListQuery{SortBy: "email", SortOrder: "desc"}))
	assert.Equal(t, "created_at DESC, id DESC", buildListOrder(entity.ListQuery{SortBy: "password_hash; DROP TABLE users"}))
}
