package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ItemFilter filtros para listar artículos.
type ItemFilter struct {
	Search          string
	CategoryID      string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ItemRepository define el puerto de persistencia para StockItem.
// No expone escritura de Quantity: eso es exclusivo de StockLedger.
type ItemRepository interface {
	// Create persiste el artículo con cantidad 0; la existencia inicial entra como movimiento.
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.ItemDetail, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.ItemDetail, int, error)
	// Update actualiza campos descriptivos y umbrales.
	Update(ctx context.Context, item *entity.StockItem) error
	// Deactivate baja lógica (active = false).
	Deactivate(ctx context.Context, id string) error
}
