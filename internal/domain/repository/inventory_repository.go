package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	CreateItem(db *gorm.DB, item *entity.InventoryItem) error
	FindItemByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error)
	FindItemByCode(db *gorm.DB, code string) (*entity.InventoryItem, error)
	ListItems(db *gorm.DB, filter *entity.InventoryFilter) ([]entity.InventoryItem, int64, error)
	UpdateItemColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	// AdjustStock applies a signed delta to current_stock.
	AdjustStock(db *gorm.DB, id uuid.UUID, delta int) error
	DeleteItem(db *gorm.DB, id uuid.UUID) (int64, error)

	CreateMovement(db *gorm.DB, movement *entity.InventoryMovement) error
	FindMovementsByItemID(db *gorm.DB, itemID uuid.UUID, limit int) ([]entity.InventoryMovement, error)
}
