package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hiq/apps/go-server/assets"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := OpenMigrated(Memory)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hiq.db")
	db, err := OpenMigrated(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}

func TestMigrateRecordsEveryScript(t *testing.T) {
	db, err := OpenMigrated(Memory)
	require.NoError(t, err)
	defer db.Close()

	migrations, err := assets.Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	for _, m := range migrations {
		var name string
		require.NoError(t, db.QueryRow(`SELECT name FROM _migrations WHERE name=?`, m.Name).Scan(&name))
	}
}
