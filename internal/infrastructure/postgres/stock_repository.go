package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockLedger = (*StockLedger)(nil)

// StockLedger escribe items.quantity. Pensado para usarse con la tx del TxRunner.
type StockLedger struct {
	q Querier
}

// NewStockLedger construye el ledger. Pasar pool o tx (Querier).
func NewStockLedger(q Querier) *StockLedger {
	return &StockLedger{q: q}
}

// QuantityForUpdate lee la existencia y bloquea la fila (SELECT FOR UPDATE).
func (l *StockLedger) QuantityForUpdate(ctx context.Context, itemID string) (int, error) {
	var qty int
	err := l.q.QueryRow(ctx, `SELECT quantity FROM items WHERE id = $1 FOR UPDATE`, itemID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, wrapErr("lock item quantity", err)
	}
	return qty, nil
}

// Increase suma amount a la existencia.
func (l *StockLedger) Increase(ctx context.Context, itemID string, amount int) error {
	tag, err := l.q.Exec(ctx,
		`UPDATE items SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		itemID, amount)
	if err != nil {
		return wrapErr("increase item quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Decrease resta amount solo si quantity >= amount; la guarda vive en el WHERE,
// así dos salidas concurrentes nunca dejan la existencia negativa.
func (l *StockLedger) Decrease(ctx context.Context, itemID string, amount int) error {
	tag, err := l.q.Exec(ctx,
		`UPDATE items SET quantity = quantity - $2, updated_at = now() WHERE id = $1 AND quantity >= $2`,
		itemID, amount)
	if err != nil {
		return wrapErr("decrease item quantity", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var available int
	err = l.q.QueryRow(ctx, `SELECT quantity FROM items WHERE id = $1`, itemID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr("read item quantity", err)
	}
	return &domain.InsufficientStockError{ItemID: itemID, Available: available, Requested: amount}
}
