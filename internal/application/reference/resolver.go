// Package reference resuelve etiquetas legibles (nombres) de entidades de referencia a sus ids.
package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// Resolver traduce un nombre exacto (sensible a mayúsculas) al id de la entidad.
// Solo lectura; la ausencia de coincidencia no es error.
type Resolver struct {
	lookup repository.ReferenceLookup
}

// NewResolver construye el resolver sobre un ReferenceLookup (repositorio o su decorador con caché).
func NewResolver(lookup repository.ReferenceLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve devuelve el id o nil si la etiqueta está vacía o no existe.
// Solo un tipo desconocido o un fallo del almacenamiento devuelven error.
func (r *Resolver) Resolve(ctx context.Context, kind entity.ReferenceKind, label string) (*string, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("tipo de referencia desconocido: %q", kind))
	}
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}
	id, err := r.lookup.LookupID(ctx, kind, label)
	if err != nil {
		return nil, fmt.Errorf("resolver %s %q: %w", kind, label, err)
	}
	return id, nil
}
