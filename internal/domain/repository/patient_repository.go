package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByPhone(db *gorm.DB, phone string) (*entity.Patient, error)
	// Search returns one page of patients plus the unpaginated total; both
	// queries are driven by the same filter so they never drift apart.
	Search(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	// AdjustPoints applies a signed delta to the running balance, flooring
	// at zero.
	AdjustPoints(db *gorm.DB, id uuid.UUID, delta int) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	Stats(db *gorm.DB) (*entity.PatientStats, error)
}
