package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"badge-verifier/internal/models"
	"badge-verifier/internal/store"

	"github.com/xuri/excelize/v2"
)

func TestWriteRecords(t *testing.T) {
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	recs := []models.Record{
		{ID: "JSON1", EmployeeID: "EMP1", Name: "Jane Doe", DOB: "1990-01-01", JoiningDate: "2020-01-01", Post: "Engineer", Department: "R&D", CreatedAt: created},
		{ID: "JSON2", EmployeeID: "EMP2", Name: "John Roe", DOB: "1991-01-01", JoiningDate: "2021-01-01", Post: "Clerk", Department: "Ops", CreatedAt: created},
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, recs); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("sheets = %v, want [%s]", sheets, SheetName)
	}
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Record ID" || rows[0][7] != "Created At" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "Jane Doe" || rows[2][6] != "Ops" || rows[1][7] != "2024-02-03T04:05:06Z" {
		t.Errorf("data rows = %v", rows[1:])
	}
}

func TestCollectWalksAllPages(t *testing.T) {
	s := store.NewFileStore(filepath.Join(t.TempDir(), "employees.json"))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < batchSize+5; i++ {
		rec := &models.Record{
			EmployeeID: fmt.Sprintf("EMP%d", i),
			Name:       fmt.Sprintf("Person %d", i),
			Department: "Ops",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		if _, err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	all, err := Collect(ctx, s, "", store.FieldAll)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(all) != batchSize+5 {
		t.Fatalf("Collect() = %d records, want %d", len(all), batchSize+5)
	}
	if all[0].Name != fmt.Sprintf("Person %d", batchSize+4) {
		t.Errorf("first record = %s, want newest", all[0].Name)
	}

	some, err := Collect(ctx, s, "person 10", store.FieldName)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	// "Person 10" and "Person 100".."Person 104"
	if len(some) != 6 {
		t.Errorf("filtered Collect() = %d records, want 6", len(some))
	}
}
