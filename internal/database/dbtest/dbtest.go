// Package dbtest provides throwaway SQLite databases carrying the author
// table, for tests of packages that talk to the store.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/author-service/internal/database"
)

// Schema is the SQLite rendition of db/schema.sql.
const Schema = `
CREATE TABLE author (
	authorId BLOB NOT NULL PRIMARY KEY,
	authorAvatarUrl VARCHAR(255),
	authorActivationToken CHAR(32),
	authorEmail VARCHAR(128) NOT NULL UNIQUE,
	authorHash CHAR(97) NOT NULL,
	authorUsername VARCHAR(32) NOT NULL UNIQUE
);`

// New opens a fresh database under t.TempDir() with the author table created.
func New(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "author.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
