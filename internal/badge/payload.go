// Package badge converts employee records to and from the text printed in a badge QR code.
package badge

import (
	"strings"

	"badge-verifier/internal/models"
)

const (
	header          = "Employee Verification:"
	labelName       = "Name:"
	labelEmployeeID = "Employee ID:"
	labelPost       = "Post:"
	labelDepartment = "Department:"
	labelRecordID   = "Record ID:"
)

// Encode renders the badge text. Only name, employee id, post, department and
// record id are printed; date of birth and joining date never appear on a badge.
func Encode(rec models.Record) string {
	lines := []string{
		header,
		labelName + " " + rec.Name,
		labelEmployeeID + " " + rec.EmployeeID,
		labelPost + " " + rec.Post,
		labelDepartment + " " + rec.Department,
		labelRecordID + " " + rec.ID,
	}
	return strings.Join(lines, "\n")
}

// Identifiers are the fields recovered from scanned badge text. Empty means absent.
type Identifiers struct {
	RecordID   string
	EmployeeID string
}

func (id Identifiers) Empty() bool {
	return id.RecordID == "" && id.EmployeeID == ""
}

// Decode pulls the record and employee ids out of scanned text. Unknown lines are
// ignored and a later label wins over an earlier one.
func Decode(text string) Identifiers {
	var ids Identifiers
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(line, labelRecordID):
			ids.RecordID = strings.TrimSpace(strings.TrimPrefix(line, labelRecordID))
		case strings.HasPrefix(line, labelEmployeeID):
			ids.EmployeeID = strings.TrimSpace(strings.TrimPrefix(line, labelEmployeeID))
		}
	}
	return ids
}
