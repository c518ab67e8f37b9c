package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReferenceLookup resuelve un nombre exacto (sensible a mayúsculas) a su id.
// Devuelve nil, nil cuando no hay coincidencia.
type ReferenceLookup interface {
	LookupID(ctx context.Context, kind entity.ReferenceKind, name string) (*string, error)
}

// ReferenceRepository persistencia de ubicaciones, proveedores, clientes y categorías.
type ReferenceRepository interface {
	ReferenceLookup
	Create(ctx context.Context, ref *entity.Reference) error
	GetByID(ctx context.Context, kind entity.ReferenceKind, id string) (*entity.Reference, error)
	// List devuelve la página pedida y el total de registros del tipo.
	List(ctx context.Context, kind entity.ReferenceKind, limit, offset int) ([]*entity.Reference, int, error)
}
