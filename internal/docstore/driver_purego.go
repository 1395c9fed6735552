//go:build nocgo

// Pure-Go SQLite backend, selected with -tags nocgo when CGO is unavailable
// (cross-compilation, minimal container images). modernc.org/sqlite speaks
// the same dialect mattn/go-sqlite3 does for the subset this package uses.
package docstore

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const sqlDriverName = "sqlite"

func openDB(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open(sqlDriverName, dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}
