package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type capturedQuery struct {
	sql  string
	vars []any
}

// newDryRunDB builds statements for the postgres dialect without a server and records every query.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]capturedQuery) {
	t.Helper()

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var queries []capturedQuery
	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		queries = append(queries, capturedQuery{
			sql:  tx.Statement.SQL.String(),
			vars: append([]any(nil), tx.Statement.Vars...),
		})
	})
	require.NoError(t, err)

	return db, &queries
}

func lastQuery(t *testing.T, queries *[]capturedQuery) capturedQuery {
	t.Helper()
	require.NotEmpty(t, *queries)

	return (*queries)[len(*queries)-1]
}

func TestStoreRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, queries := newDryRunDB(t)

	_, _ = NewStoreRepository(db).FindByIDForUpdate(context.Background(), 7)

	q := lastQuery(t, queries)
	assert.Contains(t, q.sql, `FROM "stores"`)
	assert.True(t, strings.HasSuffix(q.sql, "FOR UPDATE"), q.sql)
	assert.Contains(t, q.vars, int64(7))
}

func TestStoreRepository_LockByIDs_LocksInAscendingOrder(t *testing.T) {
	db, queries := newDryRunDB(t)

	_, _ = NewStoreRepository(db).LockByIDs(context.Background(), []int64{9, 3, 5, 3})

	q := lastQuery(t, queries)
	orderAt := strings.Index(q.sql, "ORDER BY id ASC")
	lockAt := strings.Index(q.sql, "FOR UPDATE")
	require.NotEqual(t, -1, orderAt, q.sql)
	require.NotEqual(t, -1, lockAt, q.sql)
	assert.Less(t, orderAt, lockAt)
	assert.Equal(t, []any{int64(3), int64(5), int64(9)}, q.vars)
}

func TestStoreRepository_LockByIDs_EmptyIssuesNoQuery(t *testing.T) {
	db, queries := newDryRunDB(t)

	locked, err := NewStoreRepository(db).LockByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, locked)
	assert.Empty(t, *queries)
}

func TestUserRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, queries := newDryRunDB(t)

	_, _ = NewUserRepository(db).FindByIDForUpdate(context.Background(), 11)

	q := lastQuery(t, queries)
	assert.Contains(t, q.sql, `FROM "users"`)
	assert.True(t, strings.HasSuffix(q.sql, "FOR UPDATE"), q.sql)
	assert.Contains(t, q.vars, int64(11))
}

func TestUserRepository_FindByID_DoesNotLock(t *testing.T) {
	db, queries := newDryRunDB(t)

	_, _ = NewUserRepository(db).FindByID(context.Background(), 11)

	assert.NotContains(t, lastQuery(t, queries).sql, "FOR UPDATE")
}
