package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// AlertSourceRepository consultas de solo lectura que alimentan el feed de alertas.
// Cada método es independiente; no hay aislamiento entre ellos.
type AlertSourceRepository interface {
	// LowStockItems: min_quantity no nulo y quantity <= min_quantity, cantidad ascendente.
	LowStockItems(ctx context.Context, limit int) ([]*entity.StockItem, error)
	// OverstockItems: max_quantity no nulo y quantity >= max_quantity, cantidad descendente.
	OverstockItems(ctx context.Context, limit int) ([]*entity.StockItem, error)
	// RecentMovements: movement_date >= since, más recientes primero.
	RecentMovements(ctx context.Context, since time.Time, limit int) ([]*entity.MovementDetail, error)
	// NewSuppliers: proveedores creados desde since, más recientes primero.
	NewSuppliers(ctx context.Context, since time.Time, limit int) ([]*entity.Reference, error)
	// PendingReorders: solicitudes en estado pending, más recientes primero.
	PendingReorders(ctx context.Context, limit int) ([]*entity.ReorderDetail, error)
}
