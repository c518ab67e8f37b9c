package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReferenceUseCase casos de uso CRUD para ubicaciones, proveedores, clientes y categorías.
// La unicidad de nombre y código la garantiza el almacenamiento (ErrDuplicate).
type ReferenceUseCase struct {
	repo repository.ReferenceRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(repo repository.ReferenceRepository) *ReferenceUseCase {
	return &ReferenceUseCase{repo: repo}
}

// Create crea una entidad de referencia del tipo indicado.
func (uc *ReferenceUseCase) Create(ctx context.Context, kind entity.ReferenceKind, in dto.CreateReferenceRequest) (*dto.ReferenceResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "tipo de referencia desconocido")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	ref := &entity.Reference{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		Code:      optional(in.Code),
		Phone:     optional(in.Phone),
		CreatedAt: time.Now().UTC(),
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.NewValidationError("email", "formato inválido")
		}
		ref.Email = &email
	}
	if err := uc.repo.Create(ctx, ref); err != nil {
		return nil, err
	}
	return toReferenceResponse(ref), nil
}

// GetByID obtiene una entidad de referencia por ID.
func (uc *ReferenceUseCase) GetByID(ctx context.Context, kind entity.ReferenceKind, id string) (*dto.ReferenceResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "tipo de referencia desconocido")
	}
	ref, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}
	return toReferenceResponse(ref), nil
}

// List lista entidades de un tipo con paginación, ordenadas por nombre.
func (uc *ReferenceUseCase) List(ctx context.Context, kind entity.ReferenceKind, limit, offset int) (*dto.ReferenceListResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "tipo de referencia desconocido")
	}
	page := dto.PageRequest{Limit: limit, Offset: offset}.Clamp()
	list, total, err := uc.repo.List(ctx, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReferenceResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReferenceResponse(r))
	}
	return &dto.ReferenceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toReferenceResponse(r *entity.Reference) *dto.ReferenceResponse {
	if r == nil {
		return nil
	}
	return &dto.ReferenceResponse{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Name:      r.Name,
		Code:      r.Code,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
}
