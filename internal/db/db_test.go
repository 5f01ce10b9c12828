package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "bb.db")

	database, err := Open(path, "test-key")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations(ctx))
	// Second run is a no-op
	require.NoError(t, database.RunMigrations(ctx))

	version, err := database.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)

	_, err = database.Exec("INSERT INTO app_state (key, value) VALUES ('k', 'v')")
	assert.NoError(t, err)
}

func TestOpen_WrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.db")

	database, err := Open(path, "right-key")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(context.Background()))
	require.NoError(t, database.Close())

	_, err = Open(path, "wrong-key")
	assert.Error(t, err)

	database, err = Open(path, "right-key")
	require.NoError(t, err)
	assert.NoError(t, database.Close())
}

func TestOpen_FileIsEncrypted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bb.db")

	database, err := Open(path, "test-key")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx))
	_, err = database.ExecContext(ctx, "INSERT INTO app_state (key, value) VALUES ('boutique-bill-user', 'user@example.com')")
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "SQLite format 3")
	assert.NotContains(t, string(data), "user@example.com")
}

func TestOpen_KeyWithDSNCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.db")
	key := `a&b#c=d?e"f`

	database, err := Open(path, key)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(context.Background()))
	require.NoError(t, database.Close())

	database, err = Open(path, key)
	require.NoError(t, err)
	assert.NoError(t, database.Close())

	_, err = Open(path, "a")
	assert.Error(t, err)
}
