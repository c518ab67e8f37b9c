package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var (
	_ repository.AlertSourceRepository = (*ReadModel)(nil)
	_ repository.StatsRepository       = (*ReadModel)(nil)
)

// ReadModel consultas de solo lectura del feed de alertas y del dashboard.
// Cada método es una consulta independiente.
type ReadModel struct {
	q Querier
}

// NewReadModel construye el adaptador.
func NewReadModel(q Querier) *ReadModel {
	return &ReadModel{q: q}
}

func (r *ReadModel) LowStockItems(ctx context.Context, limit int) ([]*entity.StockItem, error) {
	return r.items(ctx, "alerts.LowStockItems", `
		SELECT `+itemColumns+` FROM items i
		WHERE i.active = 1 AND i.min_quantity IS NOT NULL AND i.quantity <= i.min_quantity
		ORDER BY i.quantity ASC
		LIMIT ?`, limit)
}

func (r *ReadModel) OverstockItems(ctx context.Context, limit int) ([]*entity.StockItem, error) {
	return r.items(ctx, "alerts.OverstockItems", `
		SELECT `+itemColumns+` FROM items i
		WHERE i.active = 1 AND i.max_quantity IS NOT NULL AND i.quantity >= i.max_quantity
		ORDER BY i.quantity DESC
		LIMIT ?`, limit)
}

func (r *ReadModel) items(ctx context.Context, op, query string, limit int) ([]*entity.StockItem, error) {
	var rows []itemRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, limit); err != nil {
		return nil, wrapErr(op, err)
	}
	list := make([]*entity.StockItem, 0, len(rows))
	for _, row := range rows {
		it := row.item()
		list = append(list, &it)
	}
	return list, nil
}

func (r *ReadModel) RecentMovements(ctx context.Context, since time.Time, limit int) ([]*entity.MovementDetail, error) {
	var rows []movementRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		movementDetailSelect+` WHERE m.movement_date >= ? ORDER BY m.movement_date DESC LIMIT ?`,
		ts(since), limit)
	if err != nil {
		return nil, wrapErr("alerts.RecentMovements", err)
	}
	return movementDetails(rows), nil
}

func (r *ReadModel) NewSuppliers(ctx context.Context, since time.Time, limit int) ([]*entity.Reference, error) {
	var rows []referenceRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, name, code, email, phone, created_at FROM suppliers
		WHERE created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?`, ts(since), limit)
	if err != nil {
		return nil, wrapErr("alerts.NewSuppliers", err)
	}
	return references(rows, entity.ReferenceSupplier), nil
}

func (r *ReadModel) PendingReorders(ctx context.Context, limit int) ([]*entity.ReorderDetail, error) {
	var rows []reorderRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		reorderDetailSelect+` WHERE ro.status = ? ORDER BY ro.created_at DESC LIMIT ?`,
		entity.ReorderPending, limit)
	if err != nil {
		return nil, wrapErr("alerts.PendingReorders", err)
	}
	return reorderDetails(rows), nil
}

func (r *ReadModel) CountActiveItems(ctx context.Context) (int, error) {
	return r.count(ctx, "stats.CountActiveItems", `SELECT COUNT(*) FROM items WHERE active = 1`)
}

func (r *ReadModel) CountLowStockItems(ctx context.Context) (int, error) {
	return r.count(ctx, "stats.CountLowStockItems", `
		SELECT COUNT(*) FROM items
		WHERE active = 1 AND min_quantity IS NOT NULL AND quantity <= min_quantity`)
}

// TotalInventoryValue suma en Go con decimal: SQLite solo sabe sumar en coma flotante.
func (r *ReadModel) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var rows []struct {
		Quantity  int             `db:"quantity"`
		UnitPrice decimal.Decimal `db:"unit_price"`
	}
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT quantity, unit_price FROM items WHERE active = 1`); err != nil {
		return decimal.Zero, wrapErr("stats.TotalInventoryValue", err)
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	return total, nil
}

func (r *ReadModel) CountMovementsSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "stats.CountMovementsSince",
		`SELECT COUNT(*) FROM stock_movements WHERE movement_date >= ?`, ts(since))
}

func (r *ReadModel) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, query, args...); err != nil {
		return 0, wrapErr(op, err)
	}
	return n, nil
}
