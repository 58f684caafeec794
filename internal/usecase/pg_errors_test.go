package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_patients_phone"}

	assert.True(t, isDuplicateKeyError(dup, "phone"))
	assert.True(t, isDuplicateKeyError(dup, "PHONE"), "constraint match is case-insensitive")
	assert.True(t, isDuplicateKeyError(fmt.Errorf("create patient: %w", dup), "phone"), "matches through wrapping")
	assert.False(t, isDuplicateKeyError(dup, "email"))
	assert.False(t, isDuplicateKeyError(&pgconn.PgError{Code: "23503", ConstraintName: "idx_patients_phone"}, "phone"))
	assert.False(t, isDuplicateKeyError(errors.New("connection refused"), "phone"))
	assert.False(t, isDuplicateKeyError(nil, "phone"))
}

func TestIsForeignKeyError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_doctor"}

	assert.True(t, isForeignKeyError(fk, "doctor"))
	assert.True(t, isForeignKeyError(fmt.Errorf("create appointment: %w", fk), "doctor"))
	assert.False(t, isForeignKeyError(fk, "site"))
	assert.False(t, isForeignKeyError(&pgconn.PgError{Code: "23505", ConstraintName: "fk_appointments_doctor"}, "doctor"))
	assert.False(t, isForeignKeyError(errors.New("connection refused"), "doctor"))
}
