package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MovementEngine registra movimientos de inventario (IN, OUT) de forma transaccional:
// valida, resuelve referencias por nombre, inserta el movimiento y ajusta la existencia
// a través del StockLedger en la misma transacción.
type MovementEngine struct {
	txRunner  TxRunner
	resolver  ReferenceResolver
	movements repository.StockMovementRepository
	log       zerolog.Logger
	now       func() time.Time
}

// Option configura el motor.
type Option func(*MovementEngine)

// WithClock reemplaza el reloj (fecha por defecto del movimiento y de creación).
func WithClock(now func() time.Time) Option {
	return func(e *MovementEngine) { e.now = now }
}

// NewMovementEngine construye el motor. movements se usa para lecturas fuera de transacción.
func NewMovementEngine(
	txRunner TxRunner,
	resolver ReferenceResolver,
	movements repository.StockMovementRepository,
	log zerolog.Logger,
	opts ...Option,
) *MovementEngine {
	e := &MovementEngine{
		txRunner:  txRunner,
		resolver:  resolver,
		movements: movements,
		log:       log.With().Str("component", "movement_engine").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MovementInput datos para contabilizar un movimiento.
// Location, Supplier y Customer son etiquetas (nombres), no ids.
type MovementInput struct {
	ItemID          string
	Type            string
	Quantity        int
	UnitPrice       *decimal.Decimal
	Notes           string
	ReferenceNumber string
	Location        string
	Supplier        string
	Customer        string
	MovementDate    *time.Time
	CreatedBy       string
}

func (in MovementInput) validate() error {
	if in.ItemID == "" {
		return domain.NewValidationError("item_id", "es obligatorio")
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.NewValidationError("movement_type", "debe ser IN u OUT")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if in.UnitPrice != nil && !entity.ValidPrice(*in.UnitPrice) {
		return domain.NewValidationError("unit_price", "no puede ser negativo ni tener más de 2 decimales")
	}
	return nil
}

type resolvedRefs struct {
	location *string
	supplier *string
	customer *string
}

// resolveRefs resuelve las tres etiquetas antes de abrir la transacción.
// Una etiqueta sin coincidencia queda en nil; solo un fallo del almacenamiento es error.
func (e *MovementEngine) resolveRefs(ctx context.Context, location, supplier, customer string) (resolvedRefs, error) {
	var refs resolvedRefs
	var err error
	if refs.location, err = e.resolver.Resolve(ctx, entity.ReferenceLocation, location); err != nil {
		return refs, fmt.Errorf("resolver ubicación: %w", err)
	}
	if refs.supplier, err = e.resolver.Resolve(ctx, entity.ReferenceSupplier, supplier); err != nil {
		return refs, fmt.Errorf("resolver proveedor: %w", err)
	}
	if refs.customer, err = e.resolver.Resolve(ctx, entity.ReferenceCustomer, customer); err != nil {
		return refs, fmt.Errorf("resolver cliente: %w", err)
	}
	return refs, nil
}

// PostMovement contabiliza un movimiento. Dentro de una sola transacción:
// bloquea la fila del artículo, verifica existencia suficiente en OUT, inserta el movimiento
// y aplica el efecto en la existencia. Cualquier fallo hace Rollback completo.
// Devuelve el movimiento enriquecido leído después del Commit; si esa lectura falla,
// devuelve el movimiento sin los nombres (el movimiento ya quedó contabilizado).
func (e *MovementEngine) PostMovement(ctx context.Context, in MovementInput) (*entity.MovementDetail, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	refs, err := e.resolveRefs(ctx, in.Location, in.Supplier, in.Customer)
	if err != nil {
		return nil, err
	}

	now := e.now()
	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ItemID:          in.ItemID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		Notes:           in.Notes,
		ReferenceNumber: in.ReferenceNumber,
		LocationID:      refs.location,
		SupplierID:      refs.supplier,
		CustomerID:      refs.customer,
		MovementDate:    now,
		CreatedAt:       now,
	}
	if in.MovementDate != nil {
		mov.MovementDate = in.MovementDate.UTC()
	}
	if in.CreatedBy != "" {
		createdBy := in.CreatedBy
		mov.CreatedBy = &createdBy
	}
	mov.ComputeTotal()

	err = e.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, ledger repository.StockLedger) error {
		current, err := ledger.QuantityForUpdate(ctx, mov.ItemID)
		if err != nil {
			return err
		}
		if mov.Type == entity.MovementTypeOUT && current < mov.Quantity {
			return &domain.InsufficientStockError{ItemID: mov.ItemID, Available: current, Requested: mov.Quantity}
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return applyDelta(ctx, ledger, mov.ItemID, entity.SignedQuantity(mov.Type, mov.Quantity))
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("movement_id", mov.ID).
		Str("item_id", mov.ItemID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Msg("movimiento contabilizado")

	return e.readBack(ctx, mov), nil
}

// readBack lee el movimiento enriquecido después del Commit.
func (e *MovementEngine) readBack(ctx context.Context, mov *entity.StockMovement) *entity.MovementDetail {
	detail, err := e.movements.GetDetail(ctx, mov.ID)
	if err != nil || detail == nil {
		e.log.Warn().Err(err).Str("movement_id", mov.ID).Msg("lectura posterior al commit falló; se devuelve el movimiento sin nombres")
		return &entity.MovementDetail{StockMovement: *mov}
	}
	return detail
}

// applyDelta aplica un efecto con signo sobre la existencia: positivo suma, negativo usa el
// decremento con guarda (puede fallar con InsufficientStock), cero no escribe.
func applyDelta(ctx context.Context, ledger repository.StockLedger, itemID string, delta int) error {
	switch {
	case delta > 0:
		return ledger.Increase(ctx, itemID, delta)
	case delta < 0:
		return ledger.Decrease(ctx, itemID, -delta)
	}
	return nil
}

// GetMovement obtiene un movimiento enriquecido por id.
func (e *MovementEngine) GetMovement(ctx context.Context, id string) (*entity.MovementDetail, error) {
	detail, err := e.movements.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return detail, nil
}

// ListMovements lista movimientos con filtros y devuelve también el total sin paginar.
func (e *MovementEngine) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, 0, domain.NewValidationError("type", "debe ser IN u OUT")
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, domain.NewValidationError("from", "debe ser anterior a to")
	}
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}.Clamp()
	filter.Limit, filter.Offset = page.Limit, page.Offset
	return e.movements.List(ctx, filter)
}
