package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

const initialStockNote = "Saldo inicial"

// MovementPoster contabiliza movimientos (lo implementa inventory.MovementEngine).
type MovementPoster interface {
	PostMovement(ctx context.Context, in inventory.MovementInput) (*entity.MovementDetail, error)
}

// ItemUseCase casos de uso CRUD para artículos. Quantity solo cambia vía movimientos.
type ItemUseCase struct {
	repo     repository.ItemRepository
	resolver inventory.ReferenceResolver
	poster   MovementPoster
	log      zerolog.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, resolver inventory.ReferenceResolver, poster MovementPoster, log zerolog.Logger) *ItemUseCase {
	return &ItemUseCase{repo: repo, resolver: resolver, poster: poster, log: log}
}

// Create crea un artículo con existencia 0 y, si InitialQuantity > 0, contabiliza la existencia
// inicial como un movimiento IN ("Saldo inicial").
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest, userID string) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if !entity.ValidPrice(in.UnitPrice) {
		return nil, domain.NewValidationError("unit_price", "no puede ser negativo ni tener más de 2 decimales")
	}
	if in.InitialQuantity < 0 {
		return nil, domain.NewValidationError("initial_quantity", "no puede ser negativa")
	}
	if err := validateThresholds(in.MinQuantity, in.MaxQuantity); err != nil {
		return nil, err
	}
	categoryID, err := uc.refID(ctx, entity.ReferenceCategory, in.CategoryID, in.Category)
	if err != nil {
		return nil, err
	}
	locationID, err := uc.refID(ctx, entity.ReferenceLocation, in.LocationID, in.Location)
	if err != nil {
		return nil, err
	}

	item := &entity.StockItem{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Quantity:    0,
		MinQuantity: in.MinQuantity,
		MaxQuantity: in.MaxQuantity,
		Active:      true,
		CategoryID:  categoryID,
		LocationID:  locationID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	if in.InitialQuantity > 0 {
		price := in.UnitPrice
		_, err := uc.poster.PostMovement(ctx, inventory.MovementInput{
			ItemID:    item.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  in.InitialQuantity,
			UnitPrice: &price,
			Notes:     initialStockNote,
			CreatedBy: userID,
		})
		if err != nil {
			uc.log.Error().Err(err).Str("item_id", item.ID).Msg("no se pudo contabilizar el saldo inicial")
			return nil, err
		}
	}
	return uc.GetByID(ctx, item.ID)
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToItemResponse(item), nil
}

// Update actualiza campos descriptivos y umbrales. Una etiqueta vacía de categoría o
// ubicación elimina la referencia.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	item := current.StockItem
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "es obligatorio")
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if !entity.ValidPrice(*in.UnitPrice) {
			return nil, domain.NewValidationError("unit_price", "no puede ser negativo ni tener más de 2 decimales")
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.MinQuantity != nil {
		item.MinQuantity = in.MinQuantity
	}
	if in.ClearMin {
		item.MinQuantity = nil
	}
	if in.MaxQuantity != nil {
		item.MaxQuantity = in.MaxQuantity
	}
	if in.ClearMax {
		item.MaxQuantity = nil
	}
	if err := validateThresholds(item.MinQuantity, item.MaxQuantity); err != nil {
		return nil, err
	}
	if in.Category != nil {
		if item.CategoryID, err = uc.refID(ctx, entity.ReferenceCategory, "", *in.Category); err != nil {
			return nil, err
		}
	}
	if in.Location != nil {
		if item.LocationID, err = uc.refID(ctx, entity.ReferenceLocation, "", *in.Location); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	item.UpdatedAt = &now
	if err := uc.repo.Update(ctx, &item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista artículos con filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter) (*dto.ItemListResponse, error) {
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}.Clamp()
	filter.Limit, filter.Offset = page.Limit, page.Offset
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *dto.ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Delete baja lógica: el artículo queda inactivo y conserva sus movimientos.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Deactivate(ctx, id)
}

// refID devuelve id si viene; si no, resuelve label. Una etiqueta no vacía sin coincidencia es
// error de validación: un artículo no se crea con una categoría o ubicación inexistente.
func (uc *ItemUseCase) refID(ctx context.Context, kind entity.ReferenceKind, id, label string) (*string, error) {
	if id != "" {
		return &id, nil
	}
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}
	resolved, err := uc.resolver.Resolve(ctx, kind, label)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, domain.NewValidationError(string(kind), "no existe: "+label)
	}
	return resolved, nil
}

func validateThresholds(minQty, maxQty *int) error {
	if minQty != nil && *minQty < 0 {
		return domain.NewValidationError("min_quantity", "no puede ser negativa")
	}
	if maxQty != nil && *maxQty < 0 {
		return domain.NewValidationError("max_quantity", "no puede ser negativa")
	}
	if minQty != nil && maxQty != nil && *minQty > *maxQty {
		return domain.NewValidationError("min_quantity", "no puede superar max_quantity")
	}
	return nil
}
