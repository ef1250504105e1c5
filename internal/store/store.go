// Package store persists badge records behind one interface with a flat-file
// implementation and database implementations (Postgres, MongoDB, SQLite).
package store

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"badge-verifier/internal/models"
)

var ErrNotFound = errors.New("record not found")

// DefaultSearchLimit caps quick-search results.
const DefaultSearchLimit = 10

type Store interface {
	Name() string
	// Insert assigns rec.ID and persists rec.
	Insert(ctx context.Context, rec *models.Record) (string, error)
	FindByRecordID(ctx context.Context, id string) (models.Record, error)
	// FindByEmployeeID returns the first match in backend order.
	FindByEmployeeID(ctx context.Context, employeeID string) (models.Record, error)
	List(ctx context.Context, q ListQuery) (Page, error)
	Search(ctx context.Context, term string, field Field, limit int) ([]models.Record, error)
	Close() error
}

type Field string

const (
	FieldAll        Field = "all"
	FieldName       Field = "name"
	FieldEmployeeID Field = "employee_id"
	FieldDepartment Field = "department"
	FieldPost       Field = "post"
)

// searchable lists the record columns a search term is matched against.
var searchable = []Field{FieldName, FieldEmployeeID, FieldDepartment, FieldPost}

// ParseField maps a query parameter to a Field; anything unknown searches all fields.
func ParseField(s string) Field {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range searchable {
		if f == known {
			return f
		}
	}
	return FieldAll
}

func (f Field) columns() []Field {
	if f == FieldAll || f == "" {
		return searchable
	}
	return []Field{f}
}

type ListQuery struct {
	Page    int
	PerPage int
	Term    string
	Field   Field
}

// Offset saturates at math.MaxInt instead of overflowing.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PerPage
}

// Page is one slice of a listing. Total counts all matches before slicing.
type Page struct {
	Records []models.Record
	Total   int
}

func fieldValue(rec models.Record, f Field) string {
	switch f {
	case FieldName:
		return rec.Name
	case FieldEmployeeID:
		return rec.EmployeeID
	case FieldDepartment:
		return rec.Department
	case FieldPost:
		return rec.Post
	}
	return ""
}

// Matches reports whether rec contains term, case-insensitively, in the given field.
// An empty term matches everything.
func Matches(rec models.Record, term string, field Field) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range field.columns() {
		if strings.Contains(strings.ToLower(fieldValue(rec, f)), needle) {
			return true
		}
	}
	return false
}

func filter(recs []models.Record, term string, field Field) []models.Record {
	out := make([]models.Record, 0, len(recs))
	for _, rec := range recs {
		if Matches(rec, term, field) {
			out = append(out, rec)
		}
	}
	return out
}

// newestFirst sorts by creation time descending, keeping list order for ties.
func newestFirst(recs []models.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

func paginate(recs []models.Record, q ListQuery) []models.Record {
	start := q.Offset()
	if start < 0 || start >= len(recs) || q.PerPage < 1 {
		return []models.Record{}
	}
	end := len(recs)
	if q.PerPage < end-start {
		end = start + q.PerPage
	}
	return recs[start:end]
}
