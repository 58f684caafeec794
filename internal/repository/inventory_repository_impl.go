package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type inventoryRepository struct{}

func NewInventoryRepository() domainRepo.InventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) CreateItem(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Create(item).Error
}

func (r *inventoryRepository) FindItemByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Preload("Site").Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindItemByCode(db *gorm.DB, code string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Where("code = ?", code).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) ListItems(db *gorm.DB, filter *entity.InventoryFilter) ([]entity.InventoryItem, int64, error) {
	f := &sqlbuild.Filter{}
	limit := sqlbuild.DefaultLimit
	offset := 0
	lowStock := false
	if filter != nil {
		f.Search(filter.Search, "code", "name", "category", "supplier")
		f.Equal("site_id", filter.SiteID, entity.SentinelAllFeminine, entity.SentinelAllMasculine)
		lowStock = filter.LowStock
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	rows := applyConditions(db.Model(&entity.InventoryItem{}), f)
	count := applyConditions(db.Model(&entity.InventoryItem{}), f)
	if lowStock {
		rows = rows.Where("current_stock <= min_stock")
		count = count.Where("current_stock <= min_stock")
	}

	var items []entity.InventoryItem
	err := rows.
		Preload("Site").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *inventoryRepository) UpdateItemColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.InventoryItem{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *inventoryRepository) AdjustStock(db *gorm.DB, id uuid.UUID, delta int) error {
	return db.Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error
}

func (r *inventoryRepository) DeleteItem(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.InventoryItem{})
	return affected.RowsAffected, affected.Error
}

func (r *inventoryRepository) CreateMovement(db *gorm.DB, movement *entity.InventoryMovement) error {
	return db.Create(movement).Error
}

func (r *inventoryRepository) FindMovementsByItemID(db *gorm.DB, itemID uuid.UUID, limit int) ([]entity.InventoryMovement, error) {
	var movements []entity.InventoryMovement
	err := db.Where("item_id = ?", itemID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
