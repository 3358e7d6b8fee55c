package pagecache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a persistent, on-disk record of built response bytes keyed by
// request path, grounded on the SQLite-backed persistence layer in
// github.com/0xcro3dile/localrag-go's vectordb adapter. It complements
// Cache: Cache holds hot in-memory entries and coalesces concurrent
// builds, Store survives process restarts.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) a SQLite-backed Store rooted at
// dataPath/pages.db.
func OpenStore(dataPath string) (*Store, error) {
	if dataPath == "" {
		dataPath = "."
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating page cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataPath, "pages.db"))
	if err != nil {
		return nil, fmt.Errorf("opening page cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing page cache schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS built_pages (
			path       TEXT PRIMARY KEY,
			response   BLOB NOT NULL,
			mod_time   INTEGER NOT NULL
		)
	`)
	return err
}

// Get returns the cached response bytes for path and the source file's
// modification time it was built against, or ok=false if absent.
func (s *Store) Get(path string) (response []byte, modTime int64, ok bool, err error) {
	row := s.db.QueryRow(`SELECT response, mod_time FROM built_pages WHERE path = ?`, path)
	err = row.Scan(&response, &modTime)
	if err == sql.ErrNoRows {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}
	return response, modTime, true, nil
}

// Put records response bytes for path, built from a source file last
// modified at modTime.
func (s *Store) Put(path string, response []byte, modTime int64) error {
	_, err := s.db.Exec(`
		INSERT INTO built_pages (path, response, mod_time) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET response = excluded.response, mod_time = excluded.mod_time
	`, path, response, modTime)
	return err
}

// Delete removes any persisted entry for path.
func (s *Store) Delete(path string) error {
	_, err := s.db.Exec(`DELETE FROM built_pages WHERE path = ?`, path)
	return err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
