package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestUpCreatesSchema(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, "sqlite"))

	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "meals"))
	assert.True(t, tableExists(t, db, "goose_db_version"))

	version, err := Version(ctx, db, "sqlite")
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
}

func TestUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, "sqlite"))
	require.NoError(t, Up(ctx, db, "sqlite"))
}

func TestDownRollsBackLatest(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, "sqlite"))
	require.NoError(t, Down(ctx, db, "sqlite"))

	assert.False(t, tableExists(t, db, "meals"))
	assert.True(t, tableExists(t, db, "users"))
}

func TestUnknownDriver(t *testing.T) {
	err := Up(context.Background(), openSQLite(t), "oracle")
	assert.ErrorContains(t, err, `no migrations for driver "oracle"`)
}

func TestEveryDialectShipsTheSameVersions(t *testing.T) {
	var want []string
	for _, dir := range []string{"mysql", "postgres", "sqlite"} {
		entries, err := FS.ReadDir(dir)
		require.NoError(t, err)

		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		if want == nil {
			want = names
			continue
		}
		assert.Equal(t, want, names, "dialect %s", dir)
	}
}
