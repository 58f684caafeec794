package dto

type CreateInventoryItemRequest struct {
	Code         string  `json:"code" validate:"required,max=50"`
	Name         string  `json:"name" validate:"required,max=200"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Unit         *string `json:"unit" validate:"omitempty,max=50"`
	SiteID       *string `json:"siteId" validate:"omitempty,uuid"`
	CurrentStock int     `json:"currentStock" validate:"omitempty,gte=0"`
	MinStock     int     `json:"minStock" validate:"omitempty,gte=0"`
	Location     *string `json:"location" validate:"omitempty,max=100"`
	Supplier     *string `json:"supplier" validate:"omitempty,max=150"`
	ExpiryDate   *string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	LotNumber    *string `json:"lotNumber" validate:"omitempty,max=50"`
}

type CreateMovementRequest struct {
	Type              string  `json:"type" validate:"required,oneof=Entrada Salida Transferencia"`
	Quantity          int     `json:"quantity" validate:"required,gt=0"`
	SiteID            *string `json:"siteId" validate:"omitempty,uuid"`
	DestinationSiteID *string `json:"destinationSiteId" validate:"omitempty,uuid"`
	Reference         *string `json:"reference" validate:"omitempty,max=100"`
	Notes             *string `json:"notes"`
	Date              string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
