package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a durable Store backed by a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) a SQLite-backed store at
// path. Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A kv transaction spans multiple statements; a single connection keeps
	// them on the same SQLite handle.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return err
	}
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`)
	return err
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := t.tx.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (t *sqliteTx) Set(key string, value []byte) error {
	_, err := t.tx.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (t *sqliteTx) Delete(key string) error {
	_, err := t.tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// View runs fn in a read-only SQL transaction.
func (s *SQLiteStore) View(fn func(Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	return fn(&sqliteTx{tx: tx})
}

// Update runs fn in a SQL transaction, committing only on success.
func (s *SQLiteStore) Update(fn func(Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(&sqliteTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
