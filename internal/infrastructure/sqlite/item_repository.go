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
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlq"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo artículos sobre SQLite.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `i.id, i.name, i.description, i.unit_price, i.quantity, i.min_quantity, i.max_quantity,
	i.active, i.category_id, i.location_id, i.created_at, i.updated_at`

const itemDetailSelect = `
	SELECT ` + itemColumns + `, c.name AS category_name, l.name AS location_name
	FROM items i
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN locations l ON l.id = i.location_id`

func (r *ItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO items (id, name, description, unit_price, quantity, min_quantity, max_quantity,
			active, category_id, location_id, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Description, it.UnitPrice, it.MinQuantity, it.MaxQuantity,
		it.Active, it.CategoryID, it.LocationID, ts(it.CreatedAt),
	)
	if err != nil {
		return wrapErr("insert item", err)
	}
	it.Quantity = 0
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.ItemDetail, error) {
	var row itemRow
	if err := sqlx.GetContext(ctx, r.q, &row, itemDetailSelect+` WHERE i.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get item", err)
	}
	return row.detail(), nil
}

func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.ItemDetail, int, error) {
	w := sqlq.New()
	if !f.IncludeInactive {
		w.Eq("i.active", true)
	}
	if f.CategoryID != "" {
		w.Eq("i.category_id", f.CategoryID)
	}
	w.SearchAny(f.Search, "i.name", "i.description")
	cond, args := w.Build(sqlq.Question, 1)

	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM items i`+cond, args...); err != nil {
		return nil, 0, wrapErr("count items", err)
	}
	var rows []itemRow
	query := itemDetailSelect + cond + ` ORDER BY i.name, i.id LIMIT ? OFFSET ?`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, append(args, f.Limit, f.Offset)...); err != nil {
		return nil, 0, wrapErr("list items", err)
	}
	list := make([]*entity.ItemDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.detail())
	}
	return list, total, nil
}

func (r *ItemRepo) Update(ctx context.Context, it *entity.StockItem) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE items SET name = ?, description = ?, unit_price = ?, min_quantity = ?, max_quantity = ?,
			category_id = ?, location_id = ?, updated_at = ?
		WHERE id = ?`,
		it.Name, it.Description, it.UnitPrice, it.MinQuantity, it.MaxQuantity,
		it.CategoryID, it.LocationID, ts(time.Now()), it.ID,
	)
	if err != nil {
		return wrapErr("update item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE items SET active = 0, updated_at = ? WHERE id = ?`, ts(time.Now()), id)
	if err != nil {
		return wrapErr("deactivate item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
