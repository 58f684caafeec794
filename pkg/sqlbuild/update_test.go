package sqlbuild

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	t.Run("object body", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(`{"name":"Ana","siteId":null}`))
		require.NoError(t, err)
		assert.True(t, p.Has("name"))
		assert.True(t, p.Has("siteId"))
		assert.False(t, p.Has("phone"))
	})

	t.Run("empty body decodes to empty payload", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("malformed body fails", func(t *testing.T) {
		_, err := DecodePayload(strings.NewReader(`{"name":`))
		assert.Error(t, err)
	})
}

func TestUpdateSetString(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{"name":"Ana Garcia","notes":null}`))
	require.NoError(t, err)

	u := &Update{}
	require.NoError(t, u.SetString(p, "name", "name"))
	require.NoError(t, u.SetString(p, "notes", "notes"))
	require.NoError(t, u.SetString(p, "phone", "phone"))

	m, err := u.Assignments()
	require.NoError(t, err)
	assert.Equal(t, "Ana Garcia", m["name"])
	assert.Nil(t, m["notes"])
	_, phoneTouched := m["phone"]
	assert.False(t, phoneTouched, "absent field must not be assigned")
}

func TestUpdateSetStringTypeMismatch(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{"name":42}`))
	require.NoError(t, err)

	u := &Update{}
	err = u.SetString(p, "name", "name")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestUpdateSetInt(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{"points":150,"reset":null}`))
	require.NoError(t, err)

	u := &Update{}
	require.NoError(t, u.SetInt(p, "points", "points"))
	require.NoError(t, u.SetInt(p, "reset", "reset"))

	m, err := u.Assignments()
	require.NoError(t, err)
	assert.Equal(t, 150, m["points"])
	assert.Nil(t, m["reset"])
}

func TestUpdateSetBool(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{"active":false}`))
	require.NoError(t, err)

	u := &Update{}
	require.NoError(t, u.SetBool(p, "active", "active"))

	m, err := u.Assignments()
	require.NoError(t, err)
	assert.Equal(t, false, m["active"])
}

func TestUpdateSetDecimal(t *testing.T) {
	t.Run("json number", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(`{"amount":1250.50}`))
		require.NoError(t, err)

		u := &Update{}
		require.NoError(t, u.SetDecimal(p, "amount", "amount"))

		m, err := u.Assignments()
		require.NoError(t, err)
		amount, ok := m["amount"].(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, amount.Equal(decimal.RequireFromString("1250.50")))
	})

	t.Run("numeric string", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(`{"amount":"99.99"}`))
		require.NoError(t, err)

		u := &Update{}
		require.NoError(t, u.SetDecimal(p, "amount", "amount"))

		m, err := u.Assignments()
		require.NoError(t, err)
		amount, ok := m["amount"].(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, amount.Equal(decimal.RequireFromString("99.99")))
	})
}

func TestUpdateSetUUID(t *testing.T) {
	id := uuid.New()

	t.Run("valid uuid string", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(`{"siteId":"` + id.String() + `"}`))
		require.NoError(t, err)

		u := &Update{}
		require.NoError(t, u.SetUUID(p, "siteId", "site_id"))

		m, err := u.Assignments()
		require.NoError(t, err)
		assert.Equal(t, id, m["site_id"])
	})

	t.Run("explicit null clears the reference", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(`{"siteId":null}`))
		require.NoError(t, err)

		u := &Update{}
		require.NoError(t, u.SetUUID(p, "siteId", "site_id"))

		m, err := u.Assignments()
		require.NoError(t, err)
		assert.Nil(t, m["site_id"])
	})

	t.Run("malformed uuid fails", func(t *testing.T) {
		p, err := DecodePayload(strings.NewReader(`{"siteId":"not-a-uuid"}`))
		require.NoError(t, err)

		u := &Update{}
		assert.Error(t, u.SetUUID(p, "siteId", "site_id"))
	})
}

func TestUpdateAssignmentsEmpty(t *testing.T) {
	u := &Update{}
	assert.True(t, u.Empty())

	_, err := u.Assignments()
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestUpdateColumnsOrder(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{"name":"Ana","phone":"555","email":"a@b.c"}`))
	require.NoError(t, err)

	u := &Update{}
	require.NoError(t, u.SetString(p, "name", "name"))
	require.NoError(t, u.SetString(p, "phone", "phone"))
	require.NoError(t, u.SetString(p, "email", "email"))

	assert.Equal(t, []string{"name", "phone", "email"}, u.Columns())
}
