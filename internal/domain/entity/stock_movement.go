package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// ValidMovementType indica si t es un tipo de movimiento soportado.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// SignedQuantity devuelve el efecto del movimiento sobre la existencia: +q en IN, -q en OUT.
func SignedQuantity(movementType string, quantity int) int {
	if movementType == MovementTypeOUT {
		return -quantity
	}
	return quantity
}

// StockMovement representa un movimiento de inventario (entrada o salida) ya contabilizado.
type StockMovement struct {
	ID              string
	ItemID          string
	Type            string           // IN, OUT
	Quantity        int              // siempre positivo; el signo lo da Type
	UnitPrice       *decimal.Decimal // precio unitario al momento del movimiento (opcional)
	TotalValue      *decimal.Decimal // Quantity × UnitPrice; nil si no hay precio
	Notes           string
	ReferenceNumber string
	LocationID      *string
	SupplierID      *string
	CustomerID      *string
	MovementDate    time.Time
	CreatedBy       *string
	CreatedAt       time.Time
}

// PriceScale decimales que admite un precio unitario (NUMERIC(14,2) en PostgreSQL).
const PriceScale = 2

// ValidPrice indica si un precio es no negativo y no tiene más de PriceScale decimales.
func ValidPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Equal(p.Round(PriceScale))
}

// ComputeTotal recalcula TotalValue a partir de Quantity y UnitPrice.
func (m *StockMovement) ComputeTotal() {
	if m.UnitPrice == nil {
		m.TotalValue = nil
		return
	}
	total := m.UnitPrice.Mul(decimal.NewFromInt(int64(m.Quantity)))
	m.TotalValue = &total
}

// MovementDetail movimiento enriquecido con los nombres de las entidades relacionadas.
type MovementDetail struct {
	StockMovement
	ItemName      string
	LocationName  *string
	SupplierName  *string
	CustomerName  *string
	CreatedByName *string
}
