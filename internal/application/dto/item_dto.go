package dto

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
// Category y Location se aceptan por nombre (se resuelven) o por id.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InitialQuantity int             `json:"initial_quantity"`
	MinQuantity     *int            `json:"min_quantity"`
	MaxQuantity     *int            `json:"max_quantity"`
	CategoryID      string          `json:"category_id,omitempty"`
	Category        string          `json:"category,omitempty"`
	LocationID      string          `json:"location_id,omitempty"`
	Location        string          `json:"location,omitempty"`
}

// UpdateItemRequest entrada para actualizar un artículo (sin quantity: solo vía movimientos).
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinQuantity *int             `json:"min_quantity"`
	MaxQuantity *int             `json:"max_quantity"`
	ClearMin    bool             `json:"clear_min_quantity"`
	ClearMax    bool             `json:"clear_max_quantity"`
	Category    *string          `json:"category"`
	Location    *string          `json:"location"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	MinQuantity  *int            `json:"min_quantity"`
	MaxQuantity  *int            `json:"max_quantity"`
	Active       bool            `json:"active"`
	CategoryID   *string         `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	LocationID   *string         `json:"location_id"`
	LocationName *string         `json:"location_name"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToItemResponse convierte el detalle de dominio.
func ToItemResponse(i *entity.ItemDetail) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		UnitPrice:    i.UnitPrice,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		MaxQuantity:  i.MaxQuantity,
		Active:       i.Active,
		CategoryID:   i.CategoryID,
		CategoryName: i.CategoryName,
		LocationID:   i.LocationID,
		LocationName: i.LocationName,
		LowStock:     i.IsLowStock(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
