package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"badge-verifier/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS badge_records (
	id           TEXT PRIMARY KEY,
	employee_id  TEXT NOT NULL,
	name         TEXT NOT NULL,
	dob          TEXT NOT NULL,
	joining_date TEXT NOT NULL,
	post         TEXT NOT NULL,
	department   TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS badge_records_employee_id_idx ON badge_records (employee_id, created_at DESC);
`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec *models.Record) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO badge_records (id, employee_id, name, dob, joining_date, post, department, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, rec.EmployeeID, rec.Name, rec.DOB, rec.JoiningDate, rec.Post, rec.Department, rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert badge record: %w", err)
	}
	rec.ID = id
	return id, nil
}

func scanRecord(row pgx.Row) (models.Record, error) {
	var rec models.Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Name, &rec.DOB, &rec.JoiningDate, &rec.Post, &rec.Department, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

func (s *PostgresStore) FindByRecordID(ctx context.Context, id string) (models.Record, error) {
	return scanRecord(s.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM badge_records WHERE id=$1`, id))
}

func (s *PostgresStore) FindByEmployeeID(ctx context.Context, employeeID string) (models.Record, error) {
	return scanRecord(s.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM badge_records WHERE employee_id=$1 ORDER BY created_at DESC LIMIT 1`, employeeID))
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...interface{}) ([]models.Record, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) (Page, error) {
	countSQL, pageSQL, args := postgresDialect.listQuery(q)

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return Page{Records: []models.Record{}}, fmt.Errorf("count badge records: %w", err)
	}
	recs, err := s.query(ctx, pageSQL, append(args, q.PerPage, q.Offset())...)
	if err != nil {
		return Page{Records: []models.Record{}, Total: total}, fmt.Errorf("list badge records: %w", err)
	}
	return Page{Records: recs, Total: total}, nil
}

func (s *PostgresStore) Search(ctx context.Context, term string, field Field, limit int) ([]models.Record, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	sql, args := postgresDialect.searchQuery(term, field)
	recs, err := s.query(ctx, sql, append(args, limit)...)
	if err != nil {
		return []models.Record{}, fmt.Errorf("search badge records: %w", err)
	}
	return recs, nil
}
