package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type campaignRepository struct{}

func NewCampaignRepository() domainRepo.CampaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(db *gorm.DB, campaign *entity.Campaign) error {
	return db.Create(campaign).Error
}

func (r *campaignRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Campaign, error) {
	var campaign entity.Campaign
	err := db.Where("id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) FindAll(db *gorm.DB) ([]entity.Campaign, error) {
	var campaigns []entity.Campaign
	if err := db.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Campaign{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *campaignRepository) IncrementLeads(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Campaign{}).
		Where("id = ?", id).
		Update("leads_generated", gorm.Expr("leads_generated + 1")).Error
}

func (r *campaignRepository) IncrementConversions(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Campaign{}).
		Where("id = ?", id).
		Update("conversions", gorm.Expr("conversions + 1")).Error
}

func (r *campaignRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Campaign{})
	return affected.RowsAffected, affected.Error
}
