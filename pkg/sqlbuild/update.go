package sqlbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoFields is returned when an update payload contains none of the
// recognized fields. Callers must check this before issuing any statement.
var ErrNoFields = errors.New("no fields to update")

// Payload is a decoded JSON object that preserves the difference between a
// key that is absent and a key explicitly set to null.
type Payload map[string]json.RawMessage

// DecodePayload reads a JSON object from r. An empty body decodes to an empty
// payload rather than an error.
func DecodePayload(r io.Reader) (Payload, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return Payload{}, nil
	}
	p := Payload{}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Has reports whether the payload explicitly contains key, including an
// explicit null.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Update collects column assignments for a partial UPDATE. A column is
// assigned if and only if the source payload explicitly contained its field:
// absence leaves it unchanged, explicit null clears it.
type Update struct {
	columns []string
	values  []interface{}
}

// Set unconditionally adds an assignment. A nil value writes SQL NULL.
func (u *Update) Set(column string, value interface{}) {
	u.columns = append(u.columns, column)
	u.values = append(u.values, value)
}

// SetString assigns column from a string field when present.
func (u *Update) SetString(p Payload, key, column string) error {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if v == nil {
		u.Set(column, nil)
		return nil
	}
	u.Set(column, *v)
	return nil
}

// SetInt assigns column from an integer field when present.
func (u *Update) SetInt(p Payload, key, column string) error {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var v *int
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if v == nil {
		u.Set(column, nil)
		return nil
	}
	u.Set(column, *v)
	return nil
}

// SetBool assigns column from a boolean field when present.
func (u *Update) SetBool(p Payload, key, column string) error {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var v *bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if v == nil {
		u.Set(column, nil)
		return nil
	}
	u.Set(column, *v)
	return nil
}

// SetDecimal assigns column from a decimal field when present. Accepts both
// JSON numbers and numeric strings.
func (u *Update) SetDecimal(p Payload, key, column string) error {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var v *decimal.Decimal
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if v == nil {
		u.Set(column, nil)
		return nil
	}
	u.Set(column, *v)
	return nil
}

// SetUUID assigns column from a UUID string field when present. Explicit null
// clears the reference.
func (u *Update) SetUUID(p Payload, key, column string) error {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if s == nil {
		u.Set(column, nil)
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	u.Set(column, id)
	return nil
}

// Empty reports whether no assignments were collected.
func (u *Update) Empty() bool {
	return len(u.columns) == 0
}

// Columns returns the assigned column names in insertion order.
func (u *Update) Columns() []string {
	return u.columns
}

// Assignments returns the collected column/value pairs, or ErrNoFields when
// the payload supplied nothing updatable.
func (u *Update) Assignments() (map[string]interface{}, error) {
	if len(u.columns) == 0 {
		return nil, ErrNoFields
	}
	m := make(map[string]interface{}, len(u.columns))
	for i, col := range u.columns {
		m[col] = u.values[i]
	}
	return m, nil
}
