package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	exportMaxRows         = 10000
	correctionDefaultNote = "Corrección de inventario"
)

// MovementUpdate cambios a un movimiento ya contabilizado. Campos nil no se modifican.
// En Location, Supplier y Customer una etiqueta vacía elimina la referencia.
// El artículo no se puede cambiar.
type MovementUpdate struct {
	Type            *string
	Quantity        *int
	UnitPrice       *decimal.Decimal
	Notes           *string
	ReferenceNumber *string
	Location        *string
	Supplier        *string
	Customer        *string
	MovementDate    *time.Time
}

func (u MovementUpdate) validate() error {
	if u.Type != nil && !entity.ValidMovementType(*u.Type) {
		return domain.NewValidationError("movement_type", "debe ser IN u OUT")
	}
	if u.Quantity != nil && *u.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if u.UnitPrice != nil && !entity.ValidPrice(*u.UnitPrice) {
		return domain.NewValidationError("unit_price", "no puede ser negativo ni tener más de 2 decimales")
	}
	return nil
}

// UpdateMovement edita un movimiento y re-deriva su efecto en la existencia en la misma transacción:
// se bloquea el movimiento, se calcula la diferencia entre el efecto nuevo y el anterior y se aplica
// vía StockLedger. Una diferencia negativa usa el decremento con guarda y puede fallar con InsufficientStock.
func (e *MovementEngine) UpdateMovement(ctx context.Context, id string, upd MovementUpdate) (*entity.MovementDetail, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}
	var location, supplier, customer *string
	var err error
	if upd.Location != nil {
		if location, err = e.resolver.Resolve(ctx, entity.ReferenceLocation, *upd.Location); err != nil {
			return nil, err
		}
	}
	if upd.Supplier != nil {
		if supplier, err = e.resolver.Resolve(ctx, entity.ReferenceSupplier, *upd.Supplier); err != nil {
			return nil, err
		}
	}
	if upd.Customer != nil {
		if customer, err = e.resolver.Resolve(ctx, entity.ReferenceCustomer, *upd.Customer); err != nil {
			return nil, err
		}
	}

	var updated *entity.StockMovement
	err = e.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, ledger repository.StockLedger) error {
		mov, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		before := entity.SignedQuantity(mov.Type, mov.Quantity)

		if upd.Type != nil {
			mov.Type = *upd.Type
		}
		if upd.Quantity != nil {
			mov.Quantity = *upd.Quantity
		}
		if upd.UnitPrice != nil {
			price := *upd.UnitPrice
			mov.UnitPrice = &price
		}
		if upd.Notes != nil {
			mov.Notes = *upd.Notes
		}
		if upd.ReferenceNumber != nil {
			mov.ReferenceNumber = *upd.ReferenceNumber
		}
		if upd.Location != nil {
			mov.LocationID = location
		}
		if upd.Supplier != nil {
			mov.SupplierID = supplier
		}
		if upd.Customer != nil {
			mov.CustomerID = customer
		}
		if upd.MovementDate != nil {
			mov.MovementDate = upd.MovementDate.UTC()
		}
		mov.ComputeTotal()

		if diff := entity.SignedQuantity(mov.Type, mov.Quantity) - before; diff != 0 {
			if _, err := ledger.QuantityForUpdate(ctx, mov.ItemID); err != nil {
				return err
			}
			if err := applyDelta(ctx, ledger, mov.ItemID, diff); err != nil {
				return err
			}
		}
		if err := movRepo.Update(ctx, mov); err != nil {
			return err
		}
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Str("movement_id", id).Str("type", updated.Type).Int("quantity", updated.Quantity).Msg("movimiento editado")
	return e.readBack(ctx, updated), nil
}

// DeleteMovement elimina un movimiento revirtiendo su efecto en la existencia en la misma transacción.
// Borrar una entrada cuya existencia ya salió falla con InsufficientStock.
func (e *MovementEngine) DeleteMovement(ctx context.Context, id string) error {
	var deleted *entity.StockMovement
	err := e.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, ledger repository.StockLedger) error {
		mov, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if _, err := ledger.QuantityForUpdate(ctx, mov.ItemID); err != nil {
			return err
		}
		if err := applyDelta(ctx, ledger, mov.ItemID, -entity.SignedQuantity(mov.Type, mov.Quantity)); err != nil {
			return err
		}
		deleted = mov
		return movRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	e.log.Info().Str("movement_id", id).Str("item_id", deleted.ItemID).Msg("movimiento eliminado y revertido")
	return nil
}

// CorrectQuantity lleva la existencia de un artículo a target registrando un movimiento compensatorio
// (IN si sube, OUT si baja). Devuelve nil, nil si la existencia ya es target.
func (e *MovementEngine) CorrectQuantity(ctx context.Context, itemID string, target int, notes, userID string) (*entity.MovementDetail, error) {
	if itemID == "" {
		return nil, domain.NewValidationError("item_id", "es obligatorio")
	}
	if target < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if notes == "" {
		notes = correctionDefaultNote
	}

	var posted *entity.StockMovement
	err := e.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, ledger repository.StockLedger) error {
		current, err := ledger.QuantityForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		diff := target - current
		if diff == 0 {
			return nil
		}
		now := e.now()
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			ItemID:       itemID,
			Type:         entity.MovementTypeIN,
			Quantity:     diff,
			Notes:        notes,
			MovementDate: now,
			CreatedAt:    now,
		}
		if diff < 0 {
			mov.Type = entity.MovementTypeOUT
			mov.Quantity = -diff
		}
		if userID != "" {
			mov.CreatedBy = &userID
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := applyDelta(ctx, ledger, itemID, diff); err != nil {
			return err
		}
		posted = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	if posted == nil {
		return nil, nil
	}
	e.log.Info().Str("item_id", itemID).Int("target", target).Str("movement_id", posted.ID).Msg("existencia corregida")
	return e.readBack(ctx, posted), nil
}

// ExportMovements devuelve los movimientos del filtro sin paginar (hasta exportMaxRows) para reportes.
func (e *MovementEngine) ExportMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementDetail, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.NewValidationError("type", "debe ser IN u OUT")
	}
	filter.Limit = exportMaxRows
	filter.Offset = 0
	list, _, err := e.movements.List(ctx, filter)
	return list, err
}
