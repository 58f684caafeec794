// Package repository contains the gorm implementations of the domain
// repository interfaces. Implementations are stateless; the caller supplies
// the *gorm.DB (or transaction) per call.
package repository

import (
	"novadent-crm/pkg/sqlbuild"

	"gorm.io/gorm"
)

// applyConditions appends every accumulated predicate to the query. List
// implementations call this once for the row query and once for the COUNT
// query with the same filter, which keeps parameters identical in content
// and order.
func applyConditions(q *gorm.DB, f *sqlbuild.Filter) *gorm.DB {
	for _, c := range f.Conditions() {
		q = q.Where(c.Expr, c.Args...)
	}
	return q
}
