package storage

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"studentdb/pkg/common"

	_ "modernc.org/sqlite"
)

// Backend persists the student collection. Records are keyed by their
// normalized id; writing an existing id replaces it. ReplaceAll swaps the
// whole collection atomically: after a failure the previous contents remain.
type Backend interface {
	Write(rec common.Record) error
	Delete(id common.StudentID) error
	ReplaceAll(records []common.Record) error
	LoadAll() ([]common.Record, error)
	Truncate() error
	Close()
}

type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS students (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		major TEXT NOT NULL,
		gpa   REAL NOT NULL,
		email TEXT NOT NULL DEFAULT ''
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("init table: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
	`)
	if err != nil {
		log.Printf("[Storage] Warning: Failed to set PRAGMA: %v", err)
	}

	return &SQLiteBackend{db: db}, nil
}

const upsertStudent = "INSERT OR REPLACE INTO students (id, name, major, gpa, email) VALUES (?, ?, ?, ?, ?)"

func (s *SQLiteBackend) Write(rec common.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(upsertStudent, string(rec.ID.Normalize()), rec.Name, rec.Major, rec.Score, rec.Email)
	return err
}

func (s *SQLiteBackend) Delete(id common.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM students WHERE id = ?", string(id.Normalize()))
	return err
}

func (s *SQLiteBackend) ReplaceAll(records []common.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(upsertStudent)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(string(rec.ID.Normalize()), rec.Name, rec.Major, rec.Score, rec.Email); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteBackend) LoadAll() ([]common.Record, error) {
	rows, err := s.db.Query("SELECT id, name, major, gpa, email FROM students ORDER BY CAST(id AS INTEGER) ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []common.Record
	for rows.Next() {
		var rec common.Record
		var rawID string
		if err := rows.Scan(&rawID, &rec.Name, &rec.Major, &rec.Score, &rec.Email); err != nil {
			return nil, err
		}
		rec.ID = common.StudentID(rawID)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteBackend) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM students")
	return err
}

func (s *SQLiteBackend) Close() {
	s.db.Close()
}
