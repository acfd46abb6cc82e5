package repository

import (
	"database/sql"
	"fmt"
	"strings"
)

// whereClause accumulates AND-ed conditions with numbered placeholders.
type whereClause struct {
	conds []string
	args  []interface{}
}

// add appends cond, replacing each "?" with the next $n placeholder bound to arg.
func (w *whereClause) add(cond string, arg interface{}) {
	n := len(w.args) + 1
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", n)))
	w.args = append(w.args, arg)
}

func (w *whereClause) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET when size > 0 and returns the final args.
func (w *whereClause) page(query string, size, offset int) (string, []interface{}) {
	args := append([]interface{}{}, w.args...)
	if size <= 0 {
		return query, args
	}
	n := len(args)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	return query, append(args, size, offset)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
