package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const replenishmentScanLimit = 200

// LowStockSource artículos en o bajo su mínimo (lo implementa AlertSourceRepository).
type LowStockSource interface {
	LowStockItems(ctx context.Context, limit int) ([]*entity.StockItem, error)
}

// ReplenishmentUseCase gestiona solicitudes de reposición y sugiere cantidades a pedir.
// Las solicitudes pendientes alimentan la fuente reorder_pending de las alertas.
type ReplenishmentUseCase struct {
	reorders repository.ReorderRepository
	items    repository.ItemRepository
	lowStock LowStockSource
	resolver ReferenceResolver
	now      func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	reorders repository.ReorderRepository,
	items repository.ItemRepository,
	lowStock LowStockSource,
	resolver ReferenceResolver,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		reorders: reorders,
		items:    items,
		lowStock: lowStock,
		resolver: resolver,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateReorder registra una solicitud en estado pending. El proveedor se resuelve por nombre;
// un nombre sin coincidencia deja la solicitud sin proveedor.
func (uc *ReplenishmentUseCase) CreateReorder(ctx context.Context, in dto.CreateReorderRequest, userID string) (*dto.ReorderResponse, error) {
	if in.ItemID == "" {
		return nil, domain.NewValidationError("item_id", "es obligatorio")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	item, err := uc.items.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	supplierID, err := uc.resolver.Resolve(ctx, entity.ReferenceSupplier, in.Supplier)
	if err != nil {
		return nil, err
	}
	r := &entity.ReorderRequest{
		ID:         uuid.New().String(),
		ItemID:     in.ItemID,
		SupplierID: supplierID,
		Quantity:   in.Quantity,
		Status:     entity.ReorderPending,
		Notes:      in.Notes,
		CreatedAt:  uc.now(),
	}
	if userID != "" {
		r.CreatedBy = &userID
	}
	if err := uc.reorders.Create(ctx, r); err != nil {
		return nil, err
	}
	return uc.GetReorder(ctx, r.ID)
}

// GetReorder obtiene una solicitud por id.
func (uc *ReplenishmentUseCase) GetReorder(ctx context.Context, id string) (*dto.ReorderResponse, error) {
	r, err := uc.reorders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toReorderResponse(r), nil
}

// ListReorders lista solicitudes; status vacío lista todas.
func (uc *ReplenishmentUseCase) ListReorders(ctx context.Context, status string, limit, offset int) ([]dto.ReorderResponse, error) {
	if status != "" && !entity.ValidReorderStatus(status) {
		return nil, domain.NewValidationError("status", "estado de reposición inválido")
	}
	page := dto.PageRequest{Limit: limit, Offset: offset}.Clamp()
	list, err := uc.reorders.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReorderResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReorderResponse(r))
	}
	return out, nil
}

// UpdateReorderStatus cambia el estado de una solicitud.
func (uc *ReplenishmentUseCase) UpdateReorderStatus(ctx context.Context, id, status string) (*dto.ReorderResponse, error) {
	if !entity.ValidReorderStatus(status) {
		return nil, domain.NewValidationError("status", "estado de reposición inválido")
	}
	if err := uc.reorders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return uc.GetReorder(ctx, id)
}

// GenerateReplenishmentList devuelve los artículos en o bajo su mínimo con la cantidad sugerida
// de pedido: hasta max_quantity si está definido, si no hasta 1.5 × min_quantity.
// Ordena por mayor faltante relativo (quantity / min_quantity ascendente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.lowStock.LowStockItems(ctx, replenishmentScanLimit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		if item.MinQuantity == nil {
			continue
		}
		minQty := *item.MinQuantity
		ideal := decimal.NewFromInt(int64(minQty)).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart()
		if item.MaxQuantity != nil {
			ideal = int64(*item.MaxQuantity)
		}
		suggested := int(ideal) - item.Quantity
		if suggested <= 0 {
			continue
		}
		coverage := decimal.Zero
		if minQty > 0 {
			coverage = decimal.NewFromInt(int64(item.Quantity)).Div(decimal.NewFromInt(int64(minQty))).Round(4)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:        item.ID,
			ItemName:      item.Name,
			CurrentStock:  item.Quantity,
			MinQuantity:   minQty,
			MaxQuantity:   item.MaxQuantity,
			SuggestedQty:  suggested,
			EstimatedCost: item.UnitPrice.Mul(decimal.NewFromInt(int64(suggested))).Round(2),
			Coverage:      coverage,
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Coverage.LessThan(suggestions[j].Coverage)
	})
	return suggestions, nil
}

func toReorderResponse(r *entity.ReorderDetail) *dto.ReorderResponse {
	return &dto.ReorderResponse{
		ID:           r.ID,
		ItemID:       r.ItemID,
		ItemName:     r.ItemName,
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		Quantity:     r.Quantity,
		Status:       r.Status,
		Notes:        r.Notes,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
