package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadRepository interface {
	Create(db *gorm.DB, lead *entity.Lead) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Lead, error)
	List(db *gorm.DB, filter *entity.LeadFilter) ([]entity.Lead, int64, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
