package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo ubicaciones, proveedores, clientes y categorías sobre SQLite.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador.
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

var referenceTables = map[entity.ReferenceKind]string{
	entity.ReferenceLocation: "locations",
	entity.ReferenceSupplier: "suppliers",
	entity.ReferenceCustomer: "customers",
	entity.ReferenceCategory: "categories",
}

func referenceTable(kind entity.ReferenceKind) (string, error) {
	t, ok := referenceTables[kind]
	if !ok {
		return "", domain.NewValidationError("kind", fmt.Sprintf("tipo de referencia desconocido %q", kind))
	}
	return t, nil
}

// LookupID nombre exacto; = en SQLite distingue mayúsculas con la colación BINARY por defecto.
func (r *ReferenceRepo) LookupID(ctx context.Context, kind entity.ReferenceKind, name string) (*string, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	var id string
	if err := sqlx.GetContext(ctx, r.q, &id, `SELECT id FROM `+table+` WHERE name = ?`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("lookup "+string(kind), err)
	}
	return &id, nil
}

func (r *ReferenceRepo) Create(ctx context.Context, ref *entity.Reference) error {
	table, err := referenceTable(ref.Kind)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO `+table+` (id, name, code, email, phone, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ref.ID, ref.Name, ref.Code, ref.Email, ref.Phone, ts(ref.CreatedAt))
	if err != nil {
		return wrapErr("insert "+string(ref.Kind), err)
	}
	return nil
}

func (r *ReferenceRepo) GetByID(ctx context.Context, kind entity.ReferenceKind, id string) (*entity.Reference, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	var row referenceRow
	err = sqlx.GetContext(ctx, r.q, &row,
		`SELECT id, name, code, email, phone, created_at FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get "+string(kind), err)
	}
	return row.reference(kind), nil
}

func (r *ReferenceRepo) List(ctx context.Context, kind entity.ReferenceKind, limit, offset int) ([]*entity.Reference, int, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM `+table); err != nil {
		return nil, 0, wrapErr("count "+string(kind), err)
	}
	var rows []referenceRow
	err = sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT id, name, code, email, phone, created_at FROM `+table+` ORDER BY name LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, wrapErr("list "+string(kind), err)
	}
	return references(rows, kind), total, nil
}

func references(rows []referenceRow, kind entity.ReferenceKind) []*entity.Reference {
	list := make([]*entity.Reference, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.reference(kind))
	}
	return list
}
