// Package storage is the durable key-value store backing the playlist.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/genwaves/internal/db"
)

const (
	appName    = "genwaves"
	dbFileName = "genwaves.db"
	probeKey   = "__storage_test__"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Verify Manager implements Store at compile time.
var _ Store = (*Manager)(nil)

// Manager is a SQLite-backed Store.
type Manager struct {
	db *sql.DB
}

// Open opens the store at path. An empty path uses the XDG data directory.
func Open(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: keeps ":memory:" databases shared and serializes writes
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// DefaultPath returns $XDG_DATA_HOME/genwaves/genwaves.db.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Get returns the value stored under key.
func (m *Manager) Get(key string) (string, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (m *Manager) Set(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}

// Remove deletes key. Removing a missing key is not an error.
func (m *Manager) Remove(key string) error {
	_, err := m.db.Exec(`DELETE FROM kv_store WHERE key = ?`, key)
	return err
}

// UpdatedAt returns when key was last written.
func (m *Manager) UpdatedAt(key string) (time.Time, error) {
	var ts sql.NullInt64
	err := m.db.QueryRow(`SELECT updated_at FROM kv_store WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return dbutil.UnixTime(ts), nil
}

// Probe writes and removes a test key inside one transaction and reports
// whether the store accepts writes.
func (m *Manager) Probe() error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO kv_store (key, value, updated_at) VALUES (?, ?, 0)`,
			probeKey, probeKey); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM kv_store WHERE key = ?`, probeKey)
		return err
	})
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// Prober is implemented by stores with a cheaper or stricter probe.
type Prober interface {
	Probe() error
}

// Timestamper is implemented by stores that record when a key was written.
type Timestamper interface {
	UpdatedAt(key string) (time.Time, error)
}

// Verify Manager implements Timestamper at compile time.
var _ Timestamper = (*Manager)(nil)

// Available reports whether s can persist values. Stores implementing Prober
// use their own probe; others get a set-then-remove round trip.
func Available(s Store) bool {
	if s == nil {
		return false
	}
	if p, ok := s.(Prober); ok {
		return p.Probe() == nil
	}
	if err := s.Set(probeKey, probeKey); err != nil {
		return false
	}
	return s.Remove(probeKey) == nil
}
