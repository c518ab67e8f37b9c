package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un artículo del almacén.
// Quantity solo cambia a través de movimientos contabilizados (ver StockLedger); nunca es negativa.
type StockItem struct {
	ID          string
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
	MinQuantity *int // umbral de stock bajo (opcional)
	MaxQuantity *int // umbral de sobrestock (opcional, informativo)
	Active      bool
	CategoryID  *string
	LocationID  *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// IsLowStock indica si la existencia está en o por debajo del mínimo configurado.
func (i *StockItem) IsLowStock() bool {
	return i.MinQuantity != nil && i.Quantity <= *i.MinQuantity
}

// IsOverstock indica si la existencia alcanzó o superó el máximo configurado.
func (i *StockItem) IsOverstock() bool {
	return i.MaxQuantity != nil && i.Quantity >= *i.MaxQuantity
}

// ItemDetail artículo con los nombres de categoría y ubicación.
type ItemDetail struct {
	StockItem
	CategoryName *string
	LocationName *string
}
