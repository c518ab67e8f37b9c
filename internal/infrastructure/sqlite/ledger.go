package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockLedger = (*StockLedger)(nil)

// StockLedger escribe items.quantity dentro de la tx del TxRunner.
type StockLedger struct {
	q Querier
}

// NewStockLedger construye el ledger.
func NewStockLedger(q Querier) *StockLedger {
	return &StockLedger{q: q}
}

// QuantityForUpdate lee la existencia. La conexión única mantiene la tx en exclusiva.
func (l *StockLedger) QuantityForUpdate(ctx context.Context, itemID string) (int, error) {
	var qty int
	err := l.q.QueryRowxContext(ctx, `SELECT quantity FROM items WHERE id = ?`, itemID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, wrapErr("lock item quantity", err)
	}
	return qty, nil
}

func (l *StockLedger) Increase(ctx context.Context, itemID string, amount int) error {
	res, err := l.q.ExecContext(ctx,
		`UPDATE items SET quantity = quantity + ?, updated_at = ? WHERE id = ?`,
		amount, ts(time.Now()), itemID)
	if err != nil {
		return wrapErr("increase item quantity", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Decrease decremento con guarda: solo escribe si quantity >= amount.
func (l *StockLedger) Decrease(ctx context.Context, itemID string, amount int) error {
	res, err := l.q.ExecContext(ctx,
		`UPDATE items SET quantity = quantity - ?, updated_at = ? WHERE id = ? AND quantity >= ?`,
		amount, ts(time.Now()), itemID, amount)
	if err != nil {
		return wrapErr("decrease item quantity", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	var available int
	err = l.q.QueryRowxContext(ctx, `SELECT quantity FROM items WHERE id = ?`, itemID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr("read item quantity", err)
	}
	return &domain.InsufficientStockError{ItemID: itemID, Available: available, Requested: amount}
}
