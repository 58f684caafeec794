package entity

import (
	"time"

	"github.com/google/uuid"
)

// Inventory movement types.
const (
	MovementIn       = "Entrada"
	MovementOut      = "Salida"
	MovementTransfer = "Transferencia"
)

// ValidMovementType reports whether t is a known movement type.
func ValidMovementType(t string) bool {
	switch t {
	case MovementIn, MovementOut, MovementTransfer:
		return true
	}
	return false
}

// InventoryItem is a stocked supply at a site. Codes are unique across the
// whole inventory.
type InventoryItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name         string     `gorm:"type:varchar(200);not null" json:"name"`
	Category     *string    `gorm:"type:varchar(100)" json:"category,omitempty"`
	Unit         *string    `gorm:"type:varchar(50)" json:"unit,omitempty"`
	SiteID       *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	CurrentStock int        `gorm:"not null;default:0;index" json:"current_stock"`
	MinStock     int        `gorm:"not null;default:0" json:"min_stock"`
	Location     *string    `gorm:"type:varchar(100)" json:"location,omitempty"`
	Supplier     *string    `gorm:"type:varchar(150)" json:"supplier,omitempty"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
	LotNumber    *string    `gorm:"type:varchar(50)" json:"lot_number,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

// InventoryMovement is an append-only stock ledger entry. Registering one
// adjusts the item's current_stock in the same transaction.
type InventoryMovement struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ItemID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	Type              string     `gorm:"type:varchar(20);not null" json:"type"`
	Quantity          int        `gorm:"not null" json:"quantity"`
	SiteID            *uuid.UUID `gorm:"type:uuid" json:"site_id,omitempty"`
	DestinationSiteID *uuid.UUID `gorm:"type:uuid" json:"destination_site_id,omitempty"`
	Reference         *string    `gorm:"type:varchar(100)" json:"reference,omitempty"`
	Notes             *string    `gorm:"type:text" json:"notes,omitempty"`
	Date              time.Time  `gorm:"type:date;not null;index" json:"date"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Item *InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
