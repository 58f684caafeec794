package usecase

import (
	"context"
	"errors"
	"time"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound        = errors.New("inventory item not found")
	ErrItemCodeExists      = errors.New("an item with this code already exists")
	ErrInsufficientStock   = errors.New("insufficient stock for this movement")
	ErrInvalidMovementType = errors.New("invalid movement type")
)

const movementHistoryLimit = 50

type InventoryUsecase interface {
	ListItems(ctx context.Context, filter *entity.InventoryFilter) ([]entity.InventoryItem, int64, error)
	GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	CreateItem(ctx context.Context, actor service.Actor, req *dto.CreateInventoryItemRequest) (*entity.InventoryItem, error)
	UpdateItem(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.InventoryItem, error)
	DeleteItem(ctx context.Context, actor service.Actor, id uuid.UUID) error

	RegisterMovement(ctx context.Context, actor service.Actor, itemID uuid.UUID, req *dto.CreateMovementRequest) (*entity.InventoryMovement, *entity.InventoryItem, error)
	ListMovements(ctx context.Context, itemID uuid.UUID) ([]entity.InventoryMovement, error)
}

type inventoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	inventoryRepo repository.InventoryRepository
	auditService  service.AuditService
}

func NewInventoryUsecase(db *gorm.DB, log *logrus.Logger, inventoryRepo repository.InventoryRepository, auditService service.AuditService) InventoryUsecase {
	return &inventoryUsecase{
		db:            db,
		log:           log,
		inventoryRepo: inventoryRepo,
		auditService:  auditService,
	}
}

func (u *inventoryUsecase) ListItems(ctx context.Context, filter *entity.InventoryFilter) ([]entity.InventoryItem, int64, error) {
	items, total, err := u.inventoryRepo.ListItems(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list inventory items: %+v", err)
		return nil, 0, err
	}
	return items, total, nil
}

func (u *inventoryUsecase) GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := u.inventoryRepo.FindItemByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (u *inventoryUsecase) CreateItem(ctx context.Context, actor service.Actor, req *dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.inventoryRepo.FindItemByCode(tx, req.Code)
	if err != nil {
		u.log.Warnf("Failed to check item code uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrItemCodeExists
	}

	var siteID *uuid.UUID
	if req.SiteID != nil {
		id, err := uuid.Parse(*req.SiteID)
		if err != nil {
			return nil, ErrSiteNotFound
		}
		siteID = &id
	}

	var expiryDate *time.Time
	if req.ExpiryDate != nil {
		d, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		expiryDate = &d
	}

	item := &entity.InventoryItem{
		Code:         req.Code,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		SiteID:       siteID,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		Location:     req.Location,
		Supplier:     req.Supplier,
		ExpiryDate:   expiryDate,
		LotNumber:    req.LotNumber,
	}

	if err := u.inventoryRepo.CreateItem(tx, item); err != nil {
		if isDuplicateKeyError(err, "code") {
			return nil, ErrItemCodeExists
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to create inventory item: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateItem, "inventory_item", &item.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return item, nil
}

func (u *inventoryUsecase) UpdateItem(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.InventoryItem, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "name", "name"),
		upd.SetString(payload, "category", "category"),
		upd.SetString(payload, "unit", "unit"),
		upd.SetInt(payload, "currentStock", "current_stock"),
		upd.SetInt(payload, "minStock", "min_stock"),
		upd.SetString(payload, "location", "location"),
		upd.SetString(payload, "supplier", "supplier"),
		upd.SetString(payload, "expiryDate", "expiry_date"),
		upd.SetString(payload, "lotNumber", "lot_number"),
		upd.SetUUID(payload, "siteId", "site_id"),
	}
	for _, err := range setters {
		if err != nil {
			return nil, ErrInvalidUpdatePayload
		}
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindItemByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if err := u.inventoryRepo.UpdateItemColumns(tx, id, assignments); err != nil {
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to update inventory item: %+v", err)
		return nil, err
	}

	updated, err := u.inventoryRepo.FindItemByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload inventory item: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateItem, "inventory_item", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *inventoryUsecase) DeleteItem(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.inventoryRepo.DeleteItem(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete inventory item: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteItem, "inventory_item", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *inventoryUsecase) RegisterMovement(ctx context.Context, actor service.Actor, itemID uuid.UUID, req *dto.CreateMovementRequest) (*entity.InventoryMovement, *entity.InventoryItem, error) {
	if !entity.ValidMovementType(req.Type) {
		return nil, nil, ErrInvalidMovementType
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindItemByID(tx, itemID)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrItemNotFound
	}

	// Outbound and transfer movements draw down this item's stock and may
	// never take it negative.
	delta := req.Quantity
	if req.Type == entity.MovementOut || req.Type == entity.MovementTransfer {
		if item.CurrentStock < req.Quantity {
			return nil, nil, ErrInsufficientStock
		}
		delta = -req.Quantity
	}

	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		date = d
	}

	var siteID, destSiteID *uuid.UUID
	if req.SiteID != nil {
		id, err := uuid.Parse(*req.SiteID)
		if err != nil {
			return nil, nil, ErrSiteNotFound
		}
		siteID = &id
	}
	if req.DestinationSiteID != nil {
		id, err := uuid.Parse(*req.DestinationSiteID)
		if err != nil {
			return nil, nil, ErrSiteNotFound
		}
		destSiteID = &id
	}

	movement := &entity.InventoryMovement{
		ItemID:            itemID,
		Type:              req.Type,
		Quantity:          req.Quantity,
		SiteID:            siteID,
		DestinationSiteID: destSiteID,
		Reference:         req.Reference,
		Notes:             req.Notes,
		Date:              date,
	}

	if err := u.inventoryRepo.CreateMovement(tx, movement); err != nil {
		if isForeignKeyError(err, "site") {
			return nil, nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to create inventory movement: %+v", err)
		return nil, nil, err
	}

	if err := u.inventoryRepo.AdjustStock(tx, itemID, delta); err != nil {
		u.log.Warnf("Failed to adjust stock: %+v", err)
		return nil, nil, err
	}

	updated, err := u.inventoryRepo.FindItemByID(tx, itemID)
	if err != nil {
		u.log.Warnf("Failed to reload inventory item: %+v", err)
		return nil, nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateMovement, "inventory_movement", &movement.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	return movement, updated, nil
}

func (u *inventoryUsecase) ListMovements(ctx context.Context, itemID uuid.UUID) ([]entity.InventoryMovement, error) {
	db := u.db.WithContext(ctx)

	item, err := u.inventoryRepo.FindItemByID(db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	return u.inventoryRepo.FindMovementsByItemID(db, itemID, movementHistoryLimit)
}
