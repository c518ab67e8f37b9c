package entity

import "time"

// Categorías de alerta.
const (
	AlertLowStock        = "low_stock"
	AlertOverstock       = "overstock"
	AlertMovement        = "movement"
	AlertSupplierNew     = "supplier_new"
	AlertReorderPending  = "reorder_pending"
	AlertInternalWarning = "internal_warning"
)

// Niveles de severidad.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
	SeveritySuccess = "success"
)

// Alert registro derivado y efímero: se sintetiza en cada consulta y no se persiste.
// ID = categoría + "-" + id de la fila origen.
type Alert struct {
	ID        string
	Category  string
	Title     string
	Message   string
	Severity  string
	Timestamp *time.Time // nil ordena como el más antiguo
	Metadata  map[string]any
}

// SortTime devuelve el timestamp usado para ordenar (cero si no hay).
func (a Alert) SortTime() time.Time {
	if a.Timestamp == nil {
		return time.Time{}
	}
	return *a.Timestamp
}
