package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReferenceRequest entrada para crear una ubicación, proveedor, cliente o categoría.
type CreateReferenceRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ReferenceResponse salida de una entidad de referencia.
type ReferenceResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Code      *string   `json:"code,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReferenceListResponse lista paginada de referencias.
type ReferenceListResponse struct {
	Items []ReferenceResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateReorderRequest entrada para crear una solicitud de reposición.
type CreateReorderRequest struct {
	ItemID   string `json:"item_id"`
	Supplier string `json:"supplier,omitempty"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateReorderStatusRequest entrada para PATCH /api/reorders/:id/status.
type UpdateReorderStatusRequest struct {
	Status string `json:"status"`
}

// ReorderResponse salida de una solicitud de reposición.
type ReorderResponse struct {
	ID           string     `json:"id"`
	ItemID       string     `json:"item_id"`
	ItemName     string     `json:"item_name"`
	SupplierID   *string    `json:"supplier_id"`
	SupplierName *string    `json:"supplier_name"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CreatedBy    *string    `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un artículo bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	CurrentStock  int             `json:"current_stock"`
	MinQuantity   int             `json:"min_quantity"`
	MaxQuantity   *int            `json:"max_quantity"`
	SuggestedQty  int             `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"` // SuggestedQty × unit_price
	Coverage      decimal.Decimal `json:"coverage"`       // quantity / min_quantity
}
