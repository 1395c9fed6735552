//go:build !nocgo

// Package docstore's default build links mattn/go-sqlite3, the CGO-backed
// driver the reference deployment ships with. Build with -tags nocgo to get
// the pure-Go driver instead (see driver_purego.go) for cross-compiled or
// CGO-unavailable environments.
package docstore

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const sqlDriverName = "sqlite3"

func openDB(path string) (*sql.DB, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open(sqlDriverName, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
