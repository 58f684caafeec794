// Package sqlbuild contains the query-composition helpers shared by every
// entity repository: a filtered-list builder that keeps the row query and its
// COUNT query positionally consistent, and a partial-update builder that only
// touches columns the caller explicitly supplied.
package sqlbuild

import (
	"strconv"
	"strings"
)

// DefaultLimit bounds unpaginated list queries.
const DefaultLimit = 100

// Condition is a single parameterized predicate. The Nth placeholder in Expr
// corresponds to the Nth entry in Args.
type Condition struct {
	Expr string
	Args []interface{}
}

// Filter accumulates optional predicate clauses for a list query. The same
// Filter value must be applied to both the row query and the COUNT query so
// totals and the page never drift apart.
type Filter struct {
	conds []Condition
}

// Equal adds an exact-match predicate. Empty values and sentinel "all" values
// (e.g. "Todos", "Todas") omit the predicate entirely rather than producing a
// no-op comparison.
func (f *Filter) Equal(column, value string, sentinels ...string) {
	if value == "" {
		return
	}
	for _, s := range sentinels {
		if value == s {
			return
		}
	}
	f.conds = append(f.conds, Condition{
		Expr: column + " = ?",
		Args: []interface{}{value},
	})
}

// Search adds one OR group of case-insensitive partial matches across the
// given columns. An empty term or empty column set adds nothing.
func (f *Filter) Search(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	pattern := "%" + term + "%"
	exprs := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		exprs[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	f.conds = append(f.conds, Condition{
		Expr: "(" + strings.Join(exprs, " OR ") + ")",
		Args: args,
	})
}

// From adds an inclusive lower bound on column.
func (f *Filter) From(column, value string) {
	if value == "" {
		return
	}
	f.conds = append(f.conds, Condition{
		Expr: column + " >= ?",
		Args: []interface{}{value},
	})
}

// Until adds an inclusive upper bound on column.
func (f *Filter) Until(column, value string) {
	if value == "" {
		return
	}
	f.conds = append(f.conds, Condition{
		Expr: column + " <= ?",
		Args: []interface{}{value},
	})
}

// Conditions returns the accumulated predicates in insertion order. A filter
// with no supplied options returns an empty slice (full scan, bounded by the
// caller's limit).
func (f *Filter) Conditions() []Condition {
	return f.conds
}

// Args returns every bound parameter across all conditions, flattened in
// predicate order.
func (f *Filter) Args() []interface{} {
	var args []interface{}
	for _, c := range f.conds {
		args = append(args, c.Args...)
	}
	return args
}

// Pagination carries coerced limit/offset values for a list query.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination coerces raw query-string values to integers. Non-numeric or
// out-of-range input falls back to the defaults (limit 100, offset 0) instead
// of failing the request.
func ParsePagination(limitRaw, offsetRaw string) Pagination {
	p := Pagination{Limit: DefaultLimit}
	if n, err := strconv.Atoi(limitRaw); err == nil && n > 0 {
		p.Limit = n
	}
	if n, err := strconv.Atoi(offsetRaw); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}
