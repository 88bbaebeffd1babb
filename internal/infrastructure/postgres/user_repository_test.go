package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/workspace-hub/internal/domain/repository"
)

type scriptedRow struct {
	active bool
	err    error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.active
	return nil
}

// scriptedDB answers every UPDATE with no rows and every SELECT with the
// current is_active value.
type scriptedDB struct {
	active  bool
	updates int
}

func (db *scriptedDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	if strings.Contains(sql, "UPDATE users") {
		db.updates++
		return scriptedRow{err: pgx.ErrNoRows}
	}
	return scriptedRow{active: db.active}
}

func (db *scriptedDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not used")
}

func repoOver(db querier) *UserRepository {
	return &UserRepository{pool: db, now: func() time.Time { return time.Unix(0, 0).UTC() }}
}

func TestSoftDeleteAlreadyInactive(t *testing.T) {
	db := &scriptedDB{active: false}
	_, err := repoOver(db).SoftDelete(context.Background(), "7d3c1f1e-7d1b-4c3e-9a51-2f4b8f0c9a10")
	assert.ErrorIs(t, err, repository.ErrAlreadyInactive)
	assert.Equal(t, 1, db.updates)
}

func TestSoftDeleteRetriesWhenRowIsActiveAgain(t *testing.T) {
	db := &scriptedDB{active: true}
	_, err := repoOver(db).SoftDelete(context.Background(), "7d3c1f1e-7d1b-4c3e-9a51-2f4b8f0c9a10")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrAlreadyInactive)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, softDeleteAttempts, db.updates)
}
