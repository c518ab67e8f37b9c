package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ReorderRepository = (*ReorderRepo)(nil)

// ReorderRepo solicitudes de reposición sobre PostgreSQL.
type ReorderRepo struct {
	q Querier
}

// NewReorderRepository construye el adaptador.
func NewReorderRepository(q Querier) *ReorderRepo {
	return &ReorderRepo{q: q}
}

const reorderDetailSelect = `
	SELECT ro.id, ro.item_id, ro.supplier_id, ro.quantity, ro.status, ro.notes, ro.created_by,
		ro.created_at, ro.updated_at, i.name, s.name
	FROM reorder_requests ro
	JOIN items i ON i.id = ro.item_id
	LEFT JOIN suppliers s ON s.id = ro.supplier_id`

func (r *ReorderRepo) Create(ctx context.Context, ro *entity.ReorderRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reorder_requests (id, item_id, supplier_id, quantity, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ro.ID, ro.ItemID, ro.SupplierID, ro.Quantity, ro.Status, ro.Notes, ro.CreatedBy, ro.CreatedAt)
	if err != nil {
		return wrapErr("insert reorder request", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *ReorderRepo) GetByID(ctx context.Context, id string) (*entity.ReorderDetail, error) {
	d, err := scanReorderDetail(r.q.QueryRow(ctx, reorderDetailSelect+` WHERE ro.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get reorder request", err)
	}
	return d, nil
}

func (r *ReorderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.ReorderDetail, error) {
	query := reorderDetailSelect + ` WHERE ($1 = '' OR ro.status = $1) ORDER BY ro.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, wrapErr("list reorder requests", err)
	}
	defer rows.Close()
	list := make([]*entity.ReorderDetail, 0)
	for rows.Next() {
		d, err := scanReorderDetail(rows)
		if err != nil {
			return nil, wrapErr("scan reorder request", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// UpdateStatus domain.ErrNotFound si no existe.
func (r *ReorderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE reorder_requests SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return wrapErr("update reorder status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanReorderDetail(row rowScanner) (*entity.ReorderDetail, error) {
	var d entity.ReorderDetail
	err := row.Scan(&d.ID, &d.ItemID, &d.SupplierID, &d.Quantity, &d.Status, &d.Notes, &d.CreatedBy,
		&d.CreatedAt, &d.UpdatedAt, &d.ItemName, &d.SupplierName)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
