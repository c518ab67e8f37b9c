package entity

import "time"

// Estados de una solicitud de reposición.
const (
	ReorderPending   = "pending"
	ReorderOrdered   = "ordered"
	ReorderReceived  = "received"
	ReorderCancelled = "cancelled"
)

// ValidReorderStatus indica si s es un estado de reposición válido.
func ValidReorderStatus(s string) bool {
	switch s {
	case ReorderPending, ReorderOrdered, ReorderReceived, ReorderCancelled:
		return true
	}
	return false
}

// ReorderRequest solicitud de reposición de un artículo.
type ReorderRequest struct {
	ID         string
	ItemID     string
	SupplierID *string
	Quantity   int
	Status     string
	Notes      string
	CreatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// ReorderDetail solicitud con el nombre del artículo y del proveedor.
type ReorderDetail struct {
	ReorderRequest
	ItemName     string
	SupplierName *string
}
