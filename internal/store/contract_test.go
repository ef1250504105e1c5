package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"badge-verifier/internal/models"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func makeRecord(i int, name, dept, post string) *models.Record {
	return &models.Record{
		EmployeeID:  fmt.Sprintf("EMP%03d", i),
		Name:        name,
		DOB:         "1990-01-01",
		JoiningDate: "2020-01-01",
		Post:        post,
		Department:  dept,
		CreatedAt:   baseTime.Add(time.Duration(i) * time.Minute),
	}
}

func seed(t *testing.T, s Store, recs ...*models.Record) []string {
	t.Helper()
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		id, err := s.Insert(context.Background(), rec)
		if err != nil {
			t.Fatalf("Insert(%s) error = %v", rec.Name, err)
		}
		if id == "" || rec.ID != id {
			t.Fatalf("Insert returned id %q, record has %q", id, rec.ID)
		}
		ids = append(ids, id)
	}
	return ids
}

// runStoreContract checks the behavior every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("insert then find by record id", func(t *testing.T) {
		s := newStore(t)
		rec := makeRecord(1, "Jane Doe", "R&D", "Engineer")
		ids := seed(t, s, rec)

		got, err := s.FindByRecordID(ctx, ids[0])
		if err != nil {
			t.Fatalf("FindByRecordID() error = %v", err)
		}
		if got.ID != ids[0] || got.Name != "Jane Doe" || got.DOB != "1990-01-01" || got.EmployeeID != "EMP001" {
			t.Errorf("FindByRecordID() = %+v", got)
		}
		if !got.CreatedAt.Equal(rec.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
		}
	})

	t.Run("missing ids are ErrNotFound", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, makeRecord(1, "Jane Doe", "R&D", "Engineer"))

		if _, err := s.FindByRecordID(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
			t.Errorf("FindByRecordID() error = %v, want ErrNotFound", err)
		}
		if _, err := s.FindByEmployeeID(ctx, "EMP404"); !errors.Is(err, ErrNotFound) {
			t.Errorf("FindByEmployeeID() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("pages partition the result set", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 7; i++ {
			seed(t, s, makeRecord(i, fmt.Sprintf("Person %d", i), "Ops", "Clerk"))
		}

		seen := map[string]bool{}
		count := 0
		var prev time.Time
		for page := 1; page <= 3; page++ {
			p, err := s.List(ctx, ListQuery{Page: page, PerPage: 3, Field: FieldAll})
			if err != nil {
				t.Fatalf("List(page %d) error = %v", page, err)
			}
			if p.Total != 7 {
				t.Errorf("page %d total = %d, want 7", page, p.Total)
			}
			for _, rec := range p.Records {
				if seen[rec.ID] {
					t.Errorf("record %s appears on two pages", rec.ID)
				}
				if !prev.IsZero() && rec.CreatedAt.After(prev) {
					t.Errorf("records are not newest first")
				}
				prev = rec.CreatedAt
				seen[rec.ID] = true
				count++
			}
		}
		if count != 7 {
			t.Errorf("sum of page sizes = %d, want 7", count)
		}
	})

	t.Run("out of range page is empty with true total", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, makeRecord(1, "A", "X", "Y"), makeRecord(2, "B", "X", "Y"))

		p, err := s.List(ctx, ListQuery{Page: 999, PerPage: 5, Field: FieldAll})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(p.Records) != 0 || p.Total != 2 {
			t.Errorf("List(page 999) = %d records, total %d; want 0, 2", len(p.Records), p.Total)
		}
		if p.Records == nil {
			t.Error("Records should be an empty slice, not nil")
		}
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, makeRecord(1, "Alice Smith", "Finance", "Analyst"), makeRecord(2, "Bob Jones", "IT", "Admin"))

		for _, term := range []string{"smith", "SMITH", "lic"} {
			got, err := s.Search(ctx, term, FieldAll, 0)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", term, err)
			}
			if len(got) != 1 || got[0].Name != "Alice Smith" {
				t.Errorf("Search(%q) = %+v", term, got)
			}
			p, err := s.List(ctx, ListQuery{Page: 1, PerPage: 5, Term: term, Field: FieldName})
			if err != nil {
				t.Fatalf("List(%q) error = %v", term, err)
			}
			if p.Total != 1 || p.Records[0].Name != "Alice Smith" {
				t.Errorf("List(%q) = %+v", term, p)
			}
		}
	})

	t.Run("field restricts the match", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, makeRecord(1, "Finn", "Sales", "Rep"), makeRecord(2, "Zoe", "Finance", "Rep"))

		byName, err := s.List(ctx, ListQuery{Page: 1, PerPage: 5, Term: "fin", Field: FieldName})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if byName.Total != 1 || byName.Records[0].Name != "Finn" {
			t.Errorf("name filter = %+v", byName)
		}
		byDept, err := s.Search(ctx, "fin", FieldDepartment, 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(byDept) != 1 || byDept[0].Name != "Zoe" {
			t.Errorf("department filter = %+v", byDept)
		}
		all, err := s.Search(ctx, "fin", FieldAll, 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(all) != 2 {
			t.Errorf("all-field search = %d results, want 2", len(all))
		}
		byPost, err := s.Search(ctx, "REP", FieldPost, 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(byPost) != 2 {
			t.Errorf("post filter = %d results, want 2", len(byPost))
		}
	})

	t.Run("search is capped", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 12; i++ {
			seed(t, s, makeRecord(i, fmt.Sprintf("Match %d", i), "Ops", "Clerk"))
		}
		got, err := s.Search(ctx, "match", FieldAll, 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != DefaultSearchLimit {
			t.Errorf("Search() = %d results, want %d", len(got), DefaultSearchLimit)
		}
	})
}
