package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ReorderRepository = (*ReorderRepo)(nil)

// ReorderRepo solicitudes de reposición sobre SQLite.
type ReorderRepo struct {
	q Querier
}

// NewReorderRepository construye el adaptador.
func NewReorderRepository(q Querier) *ReorderRepo {
	return &ReorderRepo{q: q}
}

const reorderDetailSelect = `
	SELECT ro.id, ro.item_id, ro.supplier_id, ro.quantity, ro.status, ro.notes, ro.created_by,
		ro.created_at, ro.updated_at, i.name AS item_name, s.name AS supplier_name
	FROM reorder_requests ro
	JOIN items i ON i.id = ro.item_id
	LEFT JOIN suppliers s ON s.id = ro.supplier_id`

func (r *ReorderRepo) Create(ctx context.Context, ro *entity.ReorderRequest) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO reorder_requests (id, item_id, supplier_id, quantity, status, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ro.ID, ro.ItemID, ro.SupplierID, ro.Quantity, ro.Status, ro.Notes, ro.CreatedBy, ts(ro.CreatedAt))
	if err != nil {
		return wrapErr("insert reorder request", err)
	}
	return nil
}

func (r *ReorderRepo) GetByID(ctx context.Context, id string) (*entity.ReorderDetail, error) {
	var row reorderRow
	if err := sqlx.GetContext(ctx, r.q, &row, reorderDetailSelect+` WHERE ro.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get reorder request", err)
	}
	return row.detail(), nil
}

func (r *ReorderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.ReorderDetail, error) {
	var rows []reorderRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		reorderDetailSelect+` WHERE (? = '' OR ro.status = ?) ORDER BY ro.created_at DESC LIMIT ? OFFSET ?`,
		status, status, limit, offset)
	if err != nil {
		return nil, wrapErr("list reorder requests", err)
	}
	return reorderDetails(rows), nil
}

func (r *ReorderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE reorder_requests SET status = ?, updated_at = ? WHERE id = ?`, status, ts(time.Now()), id)
	if err != nil {
		return wrapErr("update reorder status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func reorderDetails(rows []reorderRow) []*entity.ReorderDetail {
	list := make([]*entity.ReorderDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.detail())
	}
	return list
}
