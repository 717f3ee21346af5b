package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DriverSQLite  = "sqlite"
	DriverJournal = "journal"
)

// Open creates dir if needed and opens the backend selected by driver inside it.
func Open(driver, dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteBackend(filepath.Join(dir, "students.db"))
	case DriverJournal:
		return NewJournalBackend(filepath.Join(dir, "students.journal"))
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
