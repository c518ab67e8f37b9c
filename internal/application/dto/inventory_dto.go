package dto

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PostMovementRequest body para POST /api/movements.
// location, supplier y customer se envían por nombre y se resuelven a id.
type PostMovementRequest struct {
	ItemID          string           `json:"item_id"`
	MovementType    string           `json:"movement_type"`
	Quantity        *decimal.Decimal `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	Location        string           `json:"location,omitempty"`
	Supplier        string           `json:"supplier,omitempty"`
	Customer        string           `json:"customer,omitempty"`
	MovementDate    *time.Time       `json:"movement_date,omitempty"`
}

// UpdateMovementRequest body para PUT /api/movements/:id. Campos nil no se modifican;
// location/supplier/customer vacíos eliminan la referencia.
type UpdateMovementRequest struct {
	MovementType    *string          `json:"movement_type,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	ReferenceNumber *string          `json:"reference_number,omitempty"`
	Location        *string          `json:"location,omitempty"`
	Supplier        *string          `json:"supplier,omitempty"`
	Customer        *string          `json:"customer,omitempty"`
	MovementDate    *time.Time       `json:"movement_date,omitempty"`
}

// CorrectQuantityRequest body para POST /api/items/:id/correction.
type CorrectQuantityRequest struct {
	Quantity *int   `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// MovementResponse movimiento enriquecido con nombres para mostrar.
type MovementResponse struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"item_id"`
	ItemName        string           `json:"item_name,omitempty"`
	MovementType    string           `json:"movement_type"`
	Quantity        int              `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	TotalValue      *decimal.Decimal `json:"total_value"`
	Notes           string           `json:"notes"`
	ReferenceNumber string           `json:"reference_number"`
	LocationID      *string          `json:"location_id"`
	LocationName    *string          `json:"location_name"`
	SupplierID      *string          `json:"supplier_id"`
	SupplierName    *string          `json:"supplier_name"`
	CustomerID      *string          `json:"customer_id"`
	CustomerName    *string          `json:"customer_name"`
	MovementDate    time.Time        `json:"movement_date"`
	CreatedBy       *string          `json:"created_by"`
	CreatedByName   *string          `json:"created_by_name"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse convierte el detalle de dominio en la respuesta HTTP.
func ToMovementResponse(d *entity.MovementDetail) *MovementResponse {
	if d == nil {
		return nil
	}
	return &MovementResponse{
		ID:              d.ID,
		ItemID:          d.ItemID,
		ItemName:        d.ItemName,
		MovementType:    d.Type,
		Quantity:        d.Quantity,
		UnitPrice:       d.UnitPrice,
		TotalValue:      d.TotalValue,
		Notes:           d.Notes,
		ReferenceNumber: d.ReferenceNumber,
		LocationID:      d.LocationID,
		LocationName:    d.LocationName,
		SupplierID:      d.SupplierID,
		SupplierName:    d.SupplierName,
		CustomerID:      d.CustomerID,
		CustomerName:    d.CustomerName,
		MovementDate:    d.MovementDate,
		CreatedBy:       d.CreatedBy,
		CreatedByName:   d.CreatedByName,
		CreatedAt:       d.CreatedAt,
	}
}

// ToMovementList convierte una página de detalles.
func ToMovementList(list []*entity.MovementDetail, total, limit, offset int) *MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *ToMovementResponse(d))
	}
	return &MovementListResponse{
		Items: items,
		Page:  PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}
