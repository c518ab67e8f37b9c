package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatsRepository agregaciones de solo lectura para el dashboard.
// Cada consulta es independiente; no se garantiza consistencia cruzada entre ellas.
type StatsRepository interface {
	CountActiveItems(ctx context.Context) (int, error)
	// CountLowStockItems artículos activos con quantity <= min_quantity.
	CountLowStockItems(ctx context.Context) (int, error)
	// TotalInventoryValue Σ quantity × unit_price sobre artículos activos.
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	CountMovementsSince(ctx context.Context, since time.Time) (int, error)
}
