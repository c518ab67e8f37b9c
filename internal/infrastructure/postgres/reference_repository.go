package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo persistencia de ubicaciones, proveedores, clientes y categorías.
// Las cuatro tablas comparten columnas (id, name, code, email, phone, created_at).
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

var referenceTables = map[entity.ReferenceKind]string{
	entity.ReferenceLocation: "locations",
	entity.ReferenceSupplier: "suppliers",
	entity.ReferenceCustomer: "customers",
	entity.ReferenceCategory: "categories",
}

// referenceTable tabla de un tipo; el nombre sale de la tabla fija, nunca de la entrada.
func referenceTable(kind entity.ReferenceKind) (string, error) {
	t, ok := referenceTables[kind]
	if !ok {
		return "", domain.NewValidationError("kind", fmt.Sprintf("tipo de referencia desconocido %q", kind))
	}
	return t, nil
}

// LookupID busca por nombre exacto; nil, nil si no existe.
func (r *ReferenceRepo) LookupID(ctx context.Context, kind entity.ReferenceKind, name string) (*string, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	var id string
	err = r.q.QueryRow(ctx, `SELECT id FROM `+table+` WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("lookup "+string(kind), err)
	}
	return &id, nil
}

// Create persiste la referencia; nombre o código repetido → domain.ErrDuplicate.
func (r *ReferenceRepo) Create(ctx context.Context, ref *entity.Reference) error {
	table, err := referenceTable(ref.Kind)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO `+table+` (id, name, code, email, phone, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ref.ID, ref.Name, ref.Code, ref.Email, ref.Phone, ref.CreatedAt)
	if err != nil {
		return wrapErr("insert "+string(ref.Kind), err)
	}
	return nil
}

// GetByID obtiene una referencia; nil si no existe.
func (r *ReferenceRepo) GetByID(ctx context.Context, kind entity.ReferenceKind, id string) (*entity.Reference, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	ref := entity.Reference{Kind: kind}
	err = r.q.QueryRow(ctx,
		`SELECT id, name, code, email, phone, created_at FROM `+table+` WHERE id = $1`, id,
	).Scan(&ref.ID, &ref.Name, &ref.Code, &ref.Email, &ref.Phone, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get "+string(kind), err)
	}
	return &ref, nil
}

// List pagina por nombre.
func (r *ReferenceRepo) List(ctx context.Context, kind entity.ReferenceKind, limit, offset int) ([]*entity.Reference, int, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&total); err != nil {
		return nil, 0, wrapErr("count "+string(kind), err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, name, code, email, phone, created_at FROM `+table+` ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, wrapErr("list "+string(kind), err)
	}
	defer rows.Close()
	list := make([]*entity.Reference, 0)
	for rows.Next() {
		ref := entity.Reference{Kind: kind}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Code, &ref.Email, &ref.Phone, &ref.CreatedAt); err != nil {
			return nil, 0, wrapErr("scan "+string(kind), err)
		}
		list = append(list, &ref)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list "+string(kind), err)
	}
	return list, total, nil
}
