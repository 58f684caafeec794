package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB, activeOnly bool) ([]entity.Doctor, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
