package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlq"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `m.id, m.item_id, m.movement_type, m.quantity, m.unit_price, m.total_value,
	m.notes, m.reference_number, m.location_id, m.supplier_id, m.customer_id,
	m.movement_date, m.created_by, m.created_at`

const movementDetailSelect = `
	SELECT ` + movementColumns + `, i.name, l.name, s.name, c.name, u.name
	FROM stock_movements m
	JOIN items i ON i.id = m.item_id
	LEFT JOIN locations l ON l.id = m.location_id
	LEFT JOIN suppliers s ON s.id = m.supplier_id
	LEFT JOIN customers c ON c.id = m.customer_id
	LEFT JOIN users u ON u.id = m.created_by`

// Columnas filtrables; nunca vienen de la entrada del usuario.
const (
	colMovItem   = "m.item_id"
	colMovType   = "m.movement_type"
	colMovDate   = "m.movement_date"
	colMovNotes  = "m.notes"
	colMovRef    = "m.reference_number"
	colMovItemNm = "i.name"
)

// Create persiste un movimiento ya validado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, item_id, movement_type, quantity, unit_price, total_value,
			notes, reference_number, location_id, supplier_id, customer_id, movement_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, m.ItemID, m.Type, m.Quantity, m.UnitPrice, m.TotalValue,
		m.Notes, m.ReferenceNumber, m.LocationID, m.SupplierID, m.CustomerID, m.MovementDate, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert stock movement", err)
	}
	return nil
}

// GetForUpdate obtiene el movimiento y bloquea su fila (SELECT FOR UPDATE).
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	row := r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements m WHERE m.id = $1 FOR UPDATE`, id)
	var m entity.StockMovement
	if err := scanMovement(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get stock movement for update", err)
	}
	return &m, nil
}

// Update reescribe los campos editables; item_id y created_* no cambian.
func (r *StockMovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stock_movements SET movement_type = $2, quantity = $3, unit_price = $4, total_value = $5,
			notes = $6, reference_number = $7, location_id = $8, supplier_id = $9, customer_id = $10,
			movement_date = $11
		WHERE id = $1`,
		m.ID, m.Type, m.Quantity, m.UnitPrice, m.TotalValue,
		m.Notes, m.ReferenceNumber, m.LocationID, m.SupplierID, m.CustomerID, m.MovementDate,
	)
	if err != nil {
		return wrapErr("update stock movement", err)
	}
	return nil
}

// Delete elimina el movimiento.
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id); err != nil {
		return wrapErr("delete stock movement", err)
	}
	return nil
}

// GetDetail obtiene el movimiento con los nombres relacionados; nil si no existe.
func (r *StockMovementRepo) GetDetail(ctx context.Context, id string) (*entity.MovementDetail, error) {
	row := r.q.QueryRow(ctx, movementDetailSelect+` WHERE m.id = $1`, id)
	d, err := scanMovementDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get stock movement detail", err)
	}
	return d, nil
}

// List filtra por artículo, tipo, texto y rango de fechas; orden movement_date DESC.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	where := movementWhere(f)
	cond, args := where.Build(sqlq.Dollar, 1)

	var total int
	countSQL := `SELECT COUNT(*) FROM stock_movements m JOIN items i ON i.id = m.item_id` + cond
	if err := r.q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count stock movements", err)
	}

	n := len(args)
	query := movementDetailSelect + cond +
		` ORDER BY m.movement_date DESC, m.created_at DESC LIMIT ` + sqlq.Dollar.Placeholder(n+1) +
		` OFFSET ` + sqlq.Dollar.Placeholder(n+2)
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, wrapErr("list stock movements", err)
	}
	defer rows.Close()

	list := make([]*entity.MovementDetail, 0)
	for rows.Next() {
		d, err := scanMovementDetail(rows)
		if err != nil {
			return nil, 0, wrapErr("scan stock movement", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("iterate stock movements", err)
	}
	return list, total, nil
}

func movementWhere(f repository.MovementFilter) *sqlq.Where {
	w := sqlq.New()
	if f.ItemID != "" {
		w.Eq(colMovItem, f.ItemID)
	}
	if f.Type != "" {
		w.Eq(colMovType, f.Type)
	}
	if f.From != nil {
		w.Gte(colMovDate, *f.From)
	}
	if f.To != nil {
		w.Lte(colMovDate, *f.To)
	}
	return w.SearchAny(f.Search, colMovNotes, colMovRef, colMovItemNm)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner, m *entity.StockMovement, extra ...any) error {
	dest := []any{
		&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitPrice, &m.TotalValue,
		&m.Notes, &m.ReferenceNumber, &m.LocationID, &m.SupplierID, &m.CustomerID,
		&m.MovementDate, &m.CreatedBy, &m.CreatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func scanMovementDetail(row rowScanner) (*entity.MovementDetail, error) {
	var d entity.MovementDetail
	err := scanMovement(row, &d.StockMovement,
		&d.ItemName, &d.LocationName, &d.SupplierName, &d.CustomerName, &d.CreatedByName)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
