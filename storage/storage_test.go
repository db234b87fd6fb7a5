package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/medpriceai/medprice-web/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertParams(id string, seenAt, staleBefore int64) db.UpsertAccountParams {
	return db.UpsertAccountParams{
		ID:          id,
		Provider:    "supabase",
		Subject:     "sub-1",
		Email:       "ada@example.com",
		FullName:    "Ada Lovelace",
		SeenAt:      seenAt,
		StaleBefore: staleBefore,
	}
}

func TestUpsertAccount(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	created, err := queries.UpsertAccount(ctx, upsertParams("acc-1", 1000, 940))
	require.NoError(t, err)
	assert.Equal(t, "acc-1", created.ID)
	assert.Equal(t, int64(1000), created.FirstSeenAt)
	assert.Equal(t, int64(1000), created.LastSeenAt)

	t.Run("fresh row is left alone", func(t *testing.T) {
		_, err := queries.UpsertAccount(ctx, upsertParams("acc-2", 1030, 970))
		assert.ErrorIs(t, err, sql.ErrNoRows)

		got, err := queries.GetAccountBySubject(ctx, db.GetAccountBySubjectParams{Provider: "supabase", Subject: "sub-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got.LastSeenAt)
	})

	t.Run("stale row is refreshed and keeps its id", func(t *testing.T) {
		params := upsertParams("acc-3", 1100, 1040)
		params.Email = "ada@analytical.engine"

		updated, err := queries.UpsertAccount(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", updated.ID)
		assert.Equal(t, "ada@analytical.engine", updated.Email)
		assert.Equal(t, int64(1000), updated.FirstSeenAt)
		assert.Equal(t, int64(1100), updated.LastSeenAt)
	})

	count, err := queries.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetAccount(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	_, err = queries.GetAccount(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = queries.UpsertAccount(ctx, upsertParams("acc-1", 1000, 940))
	require.NoError(t, err)

	got, err := queries.GetAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
}

func TestWithTransactionRollsBack(t *testing.T) {
	database, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	err = WithTransaction(database, func(tx *sql.Tx) error {
		_, err := queries.WithTx(tx).UpsertAccount(ctx, upsertParams("acc-1", 1000, 940))
		return err
	})
	require.NoError(t, err)

	count, err := queries.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewCreatesDatabaseDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "medprice.db")

	s, err := New(path)
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Ping(context.Background()))
	assert.FileExists(t, path)

	count, err := s.Queries.CountAccounts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
