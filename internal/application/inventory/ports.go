package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		ledger repository.StockLedger,
	) error) error
}

// ReferenceResolver traduce etiquetas (nombre de ubicación, proveedor, cliente) a ids.
// Una etiqueta vacía o sin coincidencia devuelve nil, nil.
type ReferenceResolver interface {
	Resolve(ctx context.Context, kind entity.ReferenceKind, label string) (*string, error)
}
