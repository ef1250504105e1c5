package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"badge-verifier/internal/models"
	"badge-verifier/internal/store"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Employees"

var headers = []interface{}{
	"Record ID", "Employee ID", "Name", "Date of Birth", "Joining Date", "Post", "Department", "Created At",
}

// batchSize is the page size used to walk the store.
const batchSize = 100

// Collect pages through every record matching term, newest first.
func Collect(ctx context.Context, s store.Store, term string, field store.Field) ([]models.Record, error) {
	var out []models.Record
	for page := 1; ; page++ {
		p, err := s.List(ctx, store.ListQuery{Page: page, PerPage: batchSize, Term: term, Field: field})
		if err != nil {
			return nil, err
		}
		out = append(out, p.Records...)
		if len(p.Records) == 0 || len(out) >= p.Total {
			return out, nil
		}
	}
}

// WriteRecords writes recs as an xlsx workbook with a header row.
func WriteRecords(w io.Writer, recs []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return err
	}
	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			rec.ID, rec.EmployeeID, rec.Name, rec.DOB, rec.JoiningDate,
			rec.Post, rec.Department, rec.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
