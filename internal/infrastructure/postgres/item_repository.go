package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlq"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `i.id, i.name, i.description, i.unit_price, i.quantity, i.min_quantity, i.max_quantity,
	i.active, i.category_id, i.location_id, i.created_at, i.updated_at`

const itemDetailSelect = `
	SELECT ` + itemColumns + `, c.name, l.name
	FROM items i
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN locations l ON l.id = i.location_id`

// Create persiste un nuevo artículo con quantity 0.
func (r *ItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO items (id, name, description, unit_price, quantity, min_quantity, max_quantity,
			active, category_id, location_id, created_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Name, it.Description, it.UnitPrice, it.MinQuantity, it.MaxQuantity,
		it.Active, it.CategoryID, it.LocationID, it.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert item", err)
	}
	it.Quantity = 0
	return nil
}

// GetByID obtiene un artículo con nombres de categoría y ubicación; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.ItemDetail, error) {
	d, err := scanItemDetail(r.q.QueryRow(ctx, itemDetailSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get item", err)
	}
	return d, nil
}

// List pagina artículos por nombre.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.ItemDetail, int, error) {
	w := sqlq.New()
	if !f.IncludeInactive {
		w.Eq("i.active", true)
	}
	if f.CategoryID != "" {
		w.Eq("i.category_id", f.CategoryID)
	}
	w.SearchAny(f.Search, "i.name", "i.description")
	cond, args := w.Build(sqlq.Dollar, 1)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items i`+cond, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count items", err)
	}

	n := len(args)
	query := itemDetailSelect + cond + ` ORDER BY i.name, i.id LIMIT ` +
		sqlq.Dollar.Placeholder(n+1) + ` OFFSET ` + sqlq.Dollar.Placeholder(n+2)
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, wrapErr("list items", err)
	}
	defer rows.Close()

	list := make([]*entity.ItemDetail, 0)
	for rows.Next() {
		d, err := scanItemDetail(rows)
		if err != nil {
			return nil, 0, wrapErr("scan item", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("iterate items", err)
	}
	return list, total, nil
}

// Update actualiza campos descriptivos y umbrales. quantity no se toca aquí.
func (r *ItemRepo) Update(ctx context.Context, it *entity.StockItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET name = $2, description = $3, unit_price = $4, min_quantity = $5, max_quantity = $6,
			category_id = $7, location_id = $8, updated_at = now()
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.UnitPrice, it.MinQuantity, it.MaxQuantity, it.CategoryID, it.LocationID,
	)
	if err != nil {
		return wrapErr("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica.
func (r *ItemRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return wrapErr("deactivate item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItem(row rowScanner, it *entity.StockItem, extra ...any) error {
	dest := []any{
		&it.ID, &it.Name, &it.Description, &it.UnitPrice, &it.Quantity, &it.MinQuantity, &it.MaxQuantity,
		&it.Active, &it.CategoryID, &it.LocationID, &it.CreatedAt, &it.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func scanItemDetail(row rowScanner) (*entity.ItemDetail, error) {
	var d entity.ItemDetail
	if err := scanItem(row, &d.StockItem, &d.CategoryName, &d.LocationName); err != nil {
		return nil, err
	}
	return &d, nil
}
