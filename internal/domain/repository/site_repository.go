package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteRepository interface {
	Create(db *gorm.DB, site *entity.Site) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Site, error)
	FindAll(db *gorm.DB, activeOnly bool) ([]entity.Site, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
