package repository

import (
	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type loyaltyPointRepository struct{}

func NewLoyaltyPointRepository() domainRepo.LoyaltyPointRepository {
	return &loyaltyPointRepository{}
}

func (r *loyaltyPointRepository) Create(db *gorm.DB, point *entity.LoyaltyPoint) error {
	return db.Create(point).Error
}

func (r *loyaltyPointRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.LoyaltyPoint, error) {
	var points []entity.LoyaltyPoint
	err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

type odontogramRepository struct{}

func NewOdontogramRepository() domainRepo.OdontogramRepository {
	return &odontogramRepository{}
}

func (r *odontogramRepository) Create(db *gorm.DB, odontogram *entity.Odontogram) error {
	return db.Create(odontogram).Error
}

func (r *odontogramRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Odontogram, error) {
	var odontograms []entity.Odontogram
	err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&odontograms).Error
	if err != nil {
		return nil, err
	}
	return odontograms, nil
}
