package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoyaltyPointRepository interface {
	Create(db *gorm.DB, point *entity.LoyaltyPoint) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.LoyaltyPoint, error)
}

type OdontogramRepository interface {
	Create(db *gorm.DB, odontogram *entity.Odontogram) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Odontogram, error)
}
