package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregaciones de solo lectura para el dashboard.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

func (r *StatsRepo) CountActiveItems(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE active`).Scan(&n); err != nil {
		return 0, wrapErr("stats.CountActiveItems", err)
	}
	return n, nil
}

func (r *StatsRepo) CountLowStockItems(ctx context.Context) (int, error) {
	const query = `
	SELECT COUNT(*) FROM items
	WHERE active AND min_quantity IS NOT NULL AND quantity <= min_quantity`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, wrapErr("stats.CountLowStockItems", err)
	}
	return n, nil
}

// TotalInventoryValue Σ quantity × unit_price; 0 si no hay artículos.
func (r *StatsRepo) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM items WHERE active`,
	).Scan(&v)
	if err != nil {
		return decimal.Zero, wrapErr("stats.TotalInventoryValue", err)
	}
	return v, nil
}

func (r *StatsRepo) CountMovementsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE movement_date >= $1`, since).Scan(&n)
	if err != nil {
		return 0, wrapErr("stats.CountMovementsSince", err)
	}
	return n, nil
}
