// Package lookup resolves scanned badge text back to a stored record.
package lookup

import (
	"context"
	"errors"
	"strings"

	"badge-verifier/internal/badge"
	"badge-verifier/internal/models"
	"badge-verifier/internal/store"
)

type Status int

const (
	NotFound Status = iota
	Found
	// Failed means nothing was found and at least one backend call errored.
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Failed:
		return "failed"
	default:
		return "not_found"
	}
}

type Result struct {
	Status  Status
	Record  models.Record
	Decoded badge.Identifiers
	// Err is the last backend error seen, if any.
	Err error
}

// View returns the redacted record, or nil when nothing matched.
func (r Result) View() *models.BadgeView {
	if r.Status != Found {
		return nil
	}
	v := r.Record.Redact()
	return &v
}

type Resolver struct {
	primary store.Store
	files   store.Store
}

// NewResolver resolves against primary. files serves ids with the file prefix and
// backs up employee id lookups when primary errors; it may be primary itself.
func NewResolver(primary, files store.Store) *Resolver {
	if files == nil {
		files = primary
	}
	return &Resolver{primary: primary, files: files}
}

// Resolve tries the record id first, then the employee id.
func (r *Resolver) Resolve(ctx context.Context, scanned string) Result {
	res := Result{Decoded: badge.Decode(scanned)}

	if id := res.Decoded.RecordID; id != "" {
		backend := r.primary
		if strings.HasPrefix(id, store.FileIDPrefix) {
			backend = r.files
		}
		if found, _ := r.attempt(&res, func() (models.Record, error) { return backend.FindByRecordID(ctx, id) }); found {
			return res
		}
	}

	if id := res.Decoded.EmployeeID; id != "" {
		found, err := r.attempt(&res, func() (models.Record, error) { return r.primary.FindByEmployeeID(ctx, id) })
		if found {
			return res
		}
		if err != nil && r.files != r.primary {
			if found, _ := r.attempt(&res, func() (models.Record, error) { return r.files.FindByEmployeeID(ctx, id) }); found {
				return res
			}
		}
	}

	if res.Err != nil {
		res.Status = Failed
	}
	return res
}

// attempt runs find and records its outcome on res. It reports a match, and
// returns the error when the backend failed rather than finding nothing.
func (r *Resolver) attempt(res *Result, find func() (models.Record, error)) (bool, error) {
	rec, err := find()
	switch {
	case err == nil:
		res.Status, res.Record, res.Err = Found, rec, nil
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		res.Err = err
		return false, err
	}
}
