package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlq"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos sobre SQLite (usable con db o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `m.id, m.item_id, m.movement_type, m.quantity, m.unit_price, m.total_value,
	m.notes, m.reference_number, m.location_id, m.supplier_id, m.customer_id,
	m.movement_date, m.created_by, m.created_at`

const movementDetailSelect = `
	SELECT ` + movementColumns + `, i.name AS item_name, l.name AS location_name, s.name AS supplier_name,
		c.name AS customer_name, u.name AS created_by_name
	FROM stock_movements m
	JOIN items i ON i.id = m.item_id
	LEFT JOIN locations l ON l.id = m.location_id
	LEFT JOIN suppliers s ON s.id = m.supplier_id
	LEFT JOIN customers c ON c.id = m.customer_id
	LEFT JOIN users u ON u.id = m.created_by`

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements (id, item_id, movement_type, quantity, unit_price, total_value,
			notes, reference_number, location_id, supplier_id, customer_id, movement_date, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ItemID, m.Type, m.Quantity, m.UnitPrice, m.TotalValue,
		m.Notes, m.ReferenceNumber, m.LocationID, m.SupplierID, m.CustomerID,
		ts(m.MovementDate), m.CreatedBy, ts(m.CreatedAt),
	)
	if err != nil {
		return wrapErr("insert stock movement", err)
	}
	return nil
}

// GetForUpdate lee el movimiento; dentro de la tx la conexión única ya lo protege.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	var row movementRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+movementColumns+` FROM stock_movements m WHERE m.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get stock movement", err)
	}
	m := row.movement()
	return &m, nil
}

func (r *StockMovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE stock_movements SET movement_type = ?, quantity = ?, unit_price = ?, total_value = ?,
			notes = ?, reference_number = ?, location_id = ?, supplier_id = ?, customer_id = ?, movement_date = ?
		WHERE id = ?`,
		m.Type, m.Quantity, m.UnitPrice, m.TotalValue, m.Notes, m.ReferenceNumber,
		m.LocationID, m.SupplierID, m.CustomerID, ts(m.MovementDate), m.ID,
	)
	if err != nil {
		return wrapErr("update stock movement", err)
	}
	return nil
}

func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM stock_movements WHERE id = ?`, id); err != nil {
		return wrapErr("delete stock movement", err)
	}
	return nil
}

func (r *StockMovementRepo) GetDetail(ctx context.Context, id string) (*entity.MovementDetail, error) {
	var row movementRow
	if err := sqlx.GetContext(ctx, r.q, &row, movementDetailSelect+` WHERE m.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get stock movement detail", err)
	}
	return row.detail(), nil
}

func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	w := sqlq.New()
	if f.ItemID != "" {
		w.Eq("m.item_id", f.ItemID)
	}
	if f.Type != "" {
		w.Eq("m.movement_type", f.Type)
	}
	if f.From != nil {
		w.Gte("m.movement_date", ts(*f.From))
	}
	if f.To != nil {
		w.Lte("m.movement_date", ts(*f.To))
	}
	w.SearchAny(f.Search, "m.notes", "m.reference_number", "i.name")
	cond, args := w.Build(sqlq.Question, 1)

	var total int
	countSQL := `SELECT COUNT(*) FROM stock_movements m JOIN items i ON i.id = m.item_id` + cond
	if err := sqlx.GetContext(ctx, r.q, &total, countSQL, args...); err != nil {
		return nil, 0, wrapErr("count stock movements", err)
	}

	var rows []movementRow
	query := movementDetailSelect + cond + ` ORDER BY m.movement_date DESC, m.created_at DESC LIMIT ? OFFSET ?`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, append(args, f.Limit, f.Offset)...); err != nil {
		return nil, 0, wrapErr("list stock movements", err)
	}
	return movementDetails(rows), total, nil
}

func movementDetails(rows []movementRow) []*entity.MovementDetail {
	list := make([]*entity.MovementDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.detail())
	}
	return list
}
