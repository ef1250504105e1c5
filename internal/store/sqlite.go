package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"badge-verifier/internal/models"

	"github.com/google/uuid"
)

// created_at is unix nanoseconds so ORDER BY sorts chronologically.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS badge_records (
    id TEXT PRIMARY KEY,
    employee_id TEXT NOT NULL,
    name TEXT NOT NULL,
    dob TEXT NOT NULL,
    joining_date TEXT NOT NULL,
    post TEXT NOT NULL,
    department TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS badge_records_employee_id_idx ON badge_records (employee_id, created_at DESC);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSQLiteRecord(row rowScanner) (models.Record, error) {
	var rec models.Record
	var created int64
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Name, &rec.DOB, &rec.JoiningDate, &rec.Post, &rec.Department, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	rec.CreatedAt = time.Unix(0, created)
	return rec, err
}

func (s *SQLiteStore) Insert(ctx context.Context, rec *models.Record) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO badge_records (id, employee_id, name, dob, joining_date, post, department, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, rec.EmployeeID, rec.Name, rec.DOB, rec.JoiningDate, rec.Post, rec.Department, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert badge record: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (s *SQLiteStore) FindByRecordID(ctx context.Context, id string) (models.Record, error) {
	return scanSQLiteRecord(s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM badge_records WHERE id = ?", id))
}

func (s *SQLiteStore) FindByEmployeeID(ctx context.Context, employeeID string) (models.Record, error) {
	return scanSQLiteRecord(s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM badge_records WHERE employee_id = ? ORDER BY created_at DESC LIMIT 1", employeeID))
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...interface{}) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) List(ctx context.Context, q ListQuery) (Page, error) {
	countSQL, pageSQL, args := sqliteDialect.listQuery(q)

	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return Page{Records: []models.Record{}}, fmt.Errorf("count badge records: %w", err)
	}
	recs, err := s.query(ctx, pageSQL, append(args, q.PerPage, q.Offset())...)
	if err != nil {
		return Page{Records: []models.Record{}, Total: total}, fmt.Errorf("list badge records: %w", err)
	}
	return Page{Records: recs, Total: total}, nil
}

func (s *SQLiteStore) Search(ctx context.Context, term string, field Field, limit int) ([]models.Record, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query, args := sqliteDialect.searchQuery(term, field)
	recs, err := s.query(ctx, query, append(args, limit)...)
	if err != nil {
		return []models.Record{}, fmt.Errorf("search badge records: %w", err)
	}
	return recs, nil
}
