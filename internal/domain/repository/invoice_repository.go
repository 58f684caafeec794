package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	List(db *gorm.DB, filter *entity.InvoiceFilter) ([]entity.Invoice, int64, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
