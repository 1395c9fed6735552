// Package docstore is the in-process stand-in for the document-store driver
// the design treats as an external collaborator: it offers the same
// query/update/find-random vocabulary over a SQLite-backed table per
// collection, each row a JSON document under an opaque id. It does not aim
// to be a general query planner — collections are small catalog and player
// sets, not event-scale tables — so query evaluation loads candidate rows
// and filters them in Go rather than compiling predicates to SQL.
package docstore

import (
	"database/sql"
	"fmt"
)

// Store owns the underlying SQLite connection pool. One Store per process;
// collections are constructed against it and never open their own
// connections, mirroring the scoped-acquire pattern the rest of the fleet's
// connection-pooled services use.
type Store struct {
	db *sql.DB
}

// Open connects to (creating if necessary) the SQLite file at path.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("docstore: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
