package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// MovementFilter filtros tipados para listar movimientos.
type MovementFilter struct {
	ItemID string
	Type   string
	Search string // notas, número de referencia o nombre del artículo
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// StockMovementRepository define el puerto de persistencia para movimientos de inventario (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// GetForUpdate obtiene el movimiento bloqueando su fila; nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	Delete(ctx context.Context, id string) error
	// GetDetail obtiene el movimiento con nombres de artículo, ubicación, proveedor, cliente y creador.
	GetDetail(ctx context.Context, id string) (*entity.MovementDetail, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementDetail, int, error)
}
