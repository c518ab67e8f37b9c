package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.AlertSourceRepository = (*AlertSourceRepo)(nil)

// AlertSourceRepo las cinco consultas que alimentan el feed de alertas.
// Cada una corre por separado, sin transacción común.
type AlertSourceRepo struct {
	q Querier
}

// NewAlertSourceRepository construye el adaptador.
func NewAlertSourceRepository(q Querier) *AlertSourceRepo {
	return &AlertSourceRepo{q: q}
}

func (r *AlertSourceRepo) LowStockItems(ctx context.Context, limit int) ([]*entity.StockItem, error) {
	return r.items(ctx, "alerts.LowStockItems", `
		SELECT `+itemColumns+` FROM items i
		WHERE i.active AND i.min_quantity IS NOT NULL AND i.quantity <= i.min_quantity
		ORDER BY i.quantity ASC
		LIMIT $1`, limit)
}

func (r *AlertSourceRepo) OverstockItems(ctx context.Context, limit int) ([]*entity.StockItem, error) {
	return r.items(ctx, "alerts.OverstockItems", `
		SELECT `+itemColumns+` FROM items i
		WHERE i.active AND i.max_quantity IS NOT NULL AND i.quantity >= i.max_quantity
		ORDER BY i.quantity DESC
		LIMIT $1`, limit)
}

func (r *AlertSourceRepo) items(ctx context.Context, op, query string, limit int) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.StockItem, 0)
	for rows.Next() {
		var it entity.StockItem
		if err := scanItem(rows, &it); err != nil {
			return nil, wrapErr(op, err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *AlertSourceRepo) RecentMovements(ctx context.Context, since time.Time, limit int) ([]*entity.MovementDetail, error) {
	rows, err := r.q.Query(ctx,
		movementDetailSelect+` WHERE m.movement_date >= $1 ORDER BY m.movement_date DESC LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, wrapErr("alerts.RecentMovements", err)
	}
	defer rows.Close()
	list := make([]*entity.MovementDetail, 0)
	for rows.Next() {
		d, err := scanMovementDetail(rows)
		if err != nil {
			return nil, wrapErr("alerts.RecentMovements", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *AlertSourceRepo) NewSuppliers(ctx context.Context, since time.Time, limit int) ([]*entity.Reference, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, code, email, phone, created_at FROM suppliers
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, wrapErr("alerts.NewSuppliers", err)
	}
	defer rows.Close()
	list := make([]*entity.Reference, 0)
	for rows.Next() {
		ref := entity.Reference{Kind: entity.ReferenceSupplier}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Code, &ref.Email, &ref.Phone, &ref.CreatedAt); err != nil {
			return nil, wrapErr("alerts.NewSuppliers", err)
		}
		list = append(list, &ref)
	}
	return list, rows.Err()
}

func (r *AlertSourceRepo) PendingReorders(ctx context.Context, limit int) ([]*entity.ReorderDetail, error) {
	rows, err := r.q.Query(ctx,
		reorderDetailSelect+` WHERE ro.status = $1 ORDER BY ro.created_at DESC LIMIT $2`,
		entity.ReorderPending, limit)
	if err != nil {
		return nil, wrapErr("alerts.PendingReorders", err)
	}
	defer rows.Close()
	list := make([]*entity.ReorderDetail, 0)
	for rows.Next() {
		d, err := scanReorderDetail(rows)
		if err != nil {
			return nil, wrapErr("alerts.PendingReorders", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
