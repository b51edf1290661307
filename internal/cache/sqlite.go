// internal/cache/sqlite.go - SQLite-backed cache strategy
package cache

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tile_cache (
	tileset   TEXT    NOT NULL,
	z         INTEGER NOT NULL,
	x         INTEGER NOT NULL,
	y         INTEGER NOT NULL,
	tile_data BLOB    NOT NULL,
	PRIMARY KEY (tileset, z, x, y)
)`

// SQLite keeps all entries in a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

func (c *SQLite) Lookup(key Key, consumer func(io.Reader) error) bool {
	const query = `SELECT tile_data FROM tile_cache WHERE tileset = ? AND z = ? AND x = ? AND y = ?`

	var data []byte
	err := c.db.QueryRow(query, key.Tileset, key.Z, key.X, key.Y).Scan(&data)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Warnf("cache lookup for %s/%d/%d/%d failed: %v", key.Tileset, key.Z, key.X, key.Y, err)
		}
		return false
	}

	if err := consumer(bytes.NewReader(data)); err != nil {
		log.Debugf("cache read for %s/%d/%d/%d: %v", key.Tileset, key.Z, key.X, key.Y, err)
	}
	return true
}

func (c *SQLite) Store(key Key, producer func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := producer(&buf); err != nil {
		return err
	}

	const query = `INSERT INTO tile_cache (tileset, z, x, y, tile_data)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(tileset, z, x, y) DO UPDATE SET tile_data = excluded.tile_data`

	if _, err := c.db.Exec(query, key.Tileset, key.Z, key.X, key.Y, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}
