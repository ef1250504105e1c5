package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"badge-verifier/internal/models"
)

// FileIDPrefix marks record ids issued by the file backend so a scanned badge can be
// routed back to the file even when a database backend is primary.
const FileIDPrefix = "JSON"

// FileStore keeps every record in one JSON array, rewritten in full on insert.
// Concurrent inserts are not serialized: two writers racing on the
// read-modify-write can drop one record.
type FileStore struct {
	path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Close() error { return nil }

// fileRecord is the on-disk layout. created_at is kept as text so files written
// with "2006-01-02 15:04:05.999999" timestamps still load.
type fileRecord struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	DOB         string `json:"dob"`
	JoiningDate string `json:"joining_date"`
	Post        string `json:"post"`
	Department  string `json:"department"`
	EmployeeID  string `json:"employee_id"`
	CreatedAt   string `json:"created_at"`
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999",
}

func parseCreatedAt(v string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (fr fileRecord) record() models.Record {
	return models.Record{
		ID:          fr.ID,
		EmployeeID:  fr.EmployeeID,
		Name:        fr.Name,
		DOB:         fr.DOB,
		JoiningDate: fr.JoiningDate,
		Post:        fr.Post,
		Department:  fr.Department,
		CreatedAt:   parseCreatedAt(fr.CreatedAt),
	}
}

func toFileRecord(rec models.Record) fileRecord {
	return fileRecord{
		ID:          rec.ID,
		Name:        rec.Name,
		DOB:         rec.DOB,
		JoiningDate: rec.JoiningDate,
		Post:        rec.Post,
		Department:  rec.Department,
		EmployeeID:  rec.EmployeeID,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339Nano),
	}
}

// load returns the records in file order. A missing file is an empty store.
func (s *FileStore) load() ([]models.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var raw []fileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	recs := make([]models.Record, 0, len(raw))
	for _, fr := range raw {
		recs = append(recs, fr.record())
	}
	return recs, nil
}

func (s *FileStore) save(recs []models.Record) error {
	raw := make([]fileRecord, 0, len(recs))
	for _, rec := range recs {
		raw = append(raw, toFileRecord(rec))
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// nextID derives an id from the current second, suffixed when that second is taken.
func nextID(recs []models.Record, now time.Time) string {
	base := FileIDPrefix + now.Format("20060102150405")
	taken := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if strings.HasPrefix(rec.ID, base) {
			taken[rec.ID] = true
		}
	}
	id := base
	for n := 2; taken[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func (s *FileStore) Insert(_ context.Context, rec *models.Record) (string, error) {
	recs, err := s.load()
	if err != nil {
		return "", err
	}
	now := s.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.ID = nextID(recs, now)
	if err := s.save(append(recs, *rec)); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *FileStore) find(match func(models.Record) bool) (models.Record, error) {
	recs, err := s.load()
	if err != nil {
		return models.Record{}, err
	}
	for _, rec := range recs {
		if match(rec) {
			return rec, nil
		}
	}
	return models.Record{}, ErrNotFound
}

func (s *FileStore) FindByRecordID(_ context.Context, id string) (models.Record, error) {
	return s.find(func(rec models.Record) bool { return rec.ID == id })
}

func (s *FileStore) FindByEmployeeID(_ context.Context, employeeID string) (models.Record, error) {
	return s.find(func(rec models.Record) bool { return rec.EmployeeID == employeeID })
}

func (s *FileStore) List(_ context.Context, q ListQuery) (Page, error) {
	recs, err := s.load()
	if err != nil {
		return Page{Records: []models.Record{}}, err
	}
	matched := filter(recs, q.Term, q.Field)
	newestFirst(matched)
	return Page{Records: paginate(matched, q), Total: len(matched)}, nil
}

func (s *FileStore) Search(_ context.Context, term string, field Field, limit int) ([]models.Record, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	recs, err := s.load()
	if err != nil {
		return []models.Record{}, err
	}
	matched := filter(recs, term, field)
	newestFirst(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
