package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Set(ctx, "cf_cart", `[{"id":1,"quantity":2}]`))
	got, err := db.Get(ctx, "cf_cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"quantity":2}]`, got)

	// Upsert replaces.
	require.NoError(t, db.Set(ctx, "cf_cart", "[]"))
	got, err = db.Get(ctx, "cf_cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	require.NoError(t, db.Delete(ctx, "cf_cart"))
	_, err = db.Get(ctx, "cf_cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "cf_token", "abc.def.ghi"))
	require.NoError(t, db.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "cf_token")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)
}
