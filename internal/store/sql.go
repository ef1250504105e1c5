package store

import (
	"fmt"
	"strings"
)

const tableName = "badge_records"

const selectColumns = `id, employee_id, name, dob, joining_date, post, department, created_at`

// dialect covers the SQL differences between the Postgres and SQLite backends.
type dialect struct {
	bind     func(n int) string
	contains func(column, placeholder string) string
}

var postgresDialect = dialect{
	bind: func(n int) string { return fmt.Sprintf("$%d", n) },
	contains: func(column, p string) string {
		return fmt.Sprintf("strpos(lower(%s), %s) > 0", column, p)
	},
}

var sqliteDialect = dialect{
	bind: func(int) string { return "?" },
	contains: func(column, p string) string {
		return fmt.Sprintf("instr(lower(%s), %s) > 0", column, p)
	},
}

// where builds a case-insensitive substring filter over the searched columns.
// Placeholders are numbered from 1.
func (d dialect) where(term string, field Field) (string, []interface{}) {
	if term == "" {
		return "", nil
	}
	needle := strings.ToLower(term)
	conds := []string{}
	args := []interface{}{}
	for i, f := range field.columns() {
		conds = append(conds, d.contains(string(f), d.bind(i+1)))
		args = append(args, needle)
	}
	return " WHERE " + strings.Join(conds, " OR "), args
}

// listQuery returns the count and page queries for q, sharing one filter.
func (d dialect) listQuery(q ListQuery) (countSQL, pageSQL string, args []interface{}) {
	where, args := d.where(q.Term, q.Field)
	countSQL = "SELECT COUNT(*) FROM " + tableName + where
	n := len(args)
	pageSQL = "SELECT " + selectColumns + " FROM " + tableName + where +
		" ORDER BY created_at DESC LIMIT " + d.bind(n+1) + " OFFSET " + d.bind(n+2)
	return countSQL, pageSQL, args
}

func (d dialect) searchQuery(term string, field Field) (string, []interface{}) {
	where, args := d.where(term, field)
	return "SELECT " + selectColumns + " FROM " + tableName + where +
		" ORDER BY created_at DESC LIMIT " + d.bind(len(args)+1), args
}
