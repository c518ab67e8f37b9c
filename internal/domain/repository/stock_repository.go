package repository

import "context"

// StockLedger es el único escritor autorizado de la existencia (items.quantity).
// Las implementaciones deben usarse dentro de la misma transacción que registra el movimiento.
type StockLedger interface {
	// QuantityForUpdate lee la existencia actual bloqueando la fila hasta el fin de la tx.
	// Devuelve domain.ErrNotFound si el artículo no existe.
	QuantityForUpdate(ctx context.Context, itemID string) (int, error)
	// Increase suma amount (> 0). Sin tope contra max_quantity.
	Increase(ctx context.Context, itemID string, amount int) error
	// Decrease resta amount (> 0) solo si hay existencia suficiente (decremento con guarda);
	// si no, devuelve *domain.InsufficientStockError y no escribe nada.
	Decrease(ctx context.Context, itemID string, amount int) error
}
