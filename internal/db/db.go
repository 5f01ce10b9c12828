package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

type DB struct {
	*sql.DB
}

// Open opens the SQLCipher store at dbPath, keyed with password.
// The parent directory is created owner-only when missing.
func Open(dbPath, password string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma_key=%s", dbPath, url.QueryEscape(quoteKey(password)))

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	// Key derivation runs per connection
	sqlDB.SetMaxOpenConns(1)

	// A wrong key only surfaces once a page is decrypted
	var tables int
	if err := sqlDB.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&tables); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to read store (wrong key?): %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// quoteKey escapes the passphrase for the driver, which sends it as
// PRAGMA key = "<key>".
func quoteKey(key string) string {
	return strings.ReplaceAll(key, `"`, `""`)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Version returns the highest applied migration, 0 on a fresh store
func (db *DB) Version(ctx context.Context) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
