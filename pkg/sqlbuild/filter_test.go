package sqlbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterEqual(t *testing.T) {
	t.Run("adds predicate for concrete value", func(t *testing.T) {
		f := &Filter{}
		f.Equal("status", "Pendiente", "Todas")

		conds := f.Conditions()
		assert.Len(t, conds, 1)
		assert.Equal(t, "status = ?", conds[0].Expr)
		assert.Equal(t, []interface{}{"Pendiente"}, conds[0].Args)
	})

	t.Run("omits empty value", func(t *testing.T) {
		f := &Filter{}
		f.Equal("status", "")
		assert.Empty(t, f.Conditions())
	})

	t.Run("omits sentinel values", func(t *testing.T) {
		f := &Filter{}
		f.Equal("status", "Todos", "Todos", "Todas")
		f.Equal("site_id", "Todas", "Todos", "Todas")
		assert.Empty(t, f.Conditions())
	})
}

func TestFilterSearch(t *testing.T) {
	t.Run("builds OR group across columns", func(t *testing.T) {
		f := &Filter{}
		f.Search("garcia", "name", "phone", "email")

		conds := f.Conditions()
		assert.Len(t, conds, 1)
		assert.Equal(t, "(name ILIKE ? OR phone ILIKE ? OR email ILIKE ?)", conds[0].Expr)
		assert.Equal(t, []interface{}{"%garcia%", "%garcia%", "%garcia%"}, conds[0].Args)
	})

	t.Run("empty term adds nothing", func(t *testing.T) {
		f := &Filter{}
		f.Search("", "name")
		assert.Empty(t, f.Conditions())
	})

	t.Run("no columns adds nothing", func(t *testing.T) {
		f := &Filter{}
		f.Search("garcia")
		assert.Empty(t, f.Conditions())
	})
}

func TestFilterDateRange(t *testing.T) {
	f := &Filter{}
	f.From("date", "2026-01-01")
	f.Until("date", "2026-01-31")
	f.From("date", "")
	f.Until("date", "")

	conds := f.Conditions()
	assert.Len(t, conds, 2)
	assert.Equal(t, "date >= ?", conds[0].Expr)
	assert.Equal(t, "date <= ?", conds[1].Expr)
}

func TestFilterArgsMatchConditionOrder(t *testing.T) {
	f := &Filter{}
	f.Search("ana", "name", "email")
	f.Equal("status", "Nuevo", "Todos")
	f.From("created_at::date", "2026-02-01")

	// The flattened args must line up with the predicates in insertion
	// order, otherwise the row query and the COUNT query would bind
	// different values.
	assert.Equal(t, []interface{}{"%ana%", "%ana%", "Nuevo", "2026-02-01"}, f.Args())
}

func TestFilterEmpty(t *testing.T) {
	f := &Filter{}
	assert.Empty(t, f.Conditions())
	assert.Nil(t, f.Args())
}

func TestParsePagination(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		p := ParsePagination("25", "50")
		assert.Equal(t, 25, p.Limit)
		assert.Equal(t, 50, p.Offset)
	})

	t.Run("missing values fall back to defaults", func(t *testing.T) {
		p := ParsePagination("", "")
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("non-numeric values fall back to defaults", func(t *testing.T) {
		p := ParsePagination("abc", "xyz")
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("negative values fall back to defaults", func(t *testing.T) {
		p := ParsePagination("-5", "-10")
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})
}
