package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(db *gorm.DB, campaign *entity.Campaign) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Campaign, error)
	FindAll(db *gorm.DB) ([]entity.Campaign, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	IncrementLeads(db *gorm.DB, id uuid.UUID) error
	IncrementConversions(db *gorm.DB, id uuid.UUID) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
