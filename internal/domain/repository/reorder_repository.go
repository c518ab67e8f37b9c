package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReorderRepository persistencia de solicitudes de reposición.
type ReorderRepository interface {
	Create(ctx context.Context, r *entity.ReorderRequest) error
	GetByID(ctx context.Context, id string) (*entity.ReorderDetail, error)
	// List filtra por estado; status vacío lista todas.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.ReorderDetail, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
