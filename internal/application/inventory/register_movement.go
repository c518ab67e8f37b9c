package inventory

import (
	"math"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/shopspring/decimal"
)

// MovementInputFromRequest traduce el body HTTP a MovementInput.
// quantity llega como número JSON y debe ser un entero positivo.
func MovementInputFromRequest(req dto.PostMovementRequest, userID string) (MovementInput, error) {
	if req.Quantity == nil {
		return MovementInput{}, domain.NewValidationError("quantity", "es obligatorio")
	}
	qty, err := integerQuantity(*req.Quantity)
	if err != nil {
		return MovementInput{}, err
	}
	return MovementInput{
		ItemID:          req.ItemID,
		Type:            req.MovementType,
		Quantity:        qty,
		UnitPrice:       req.UnitPrice,
		Notes:           req.Notes,
		ReferenceNumber: req.ReferenceNumber,
		Location:        req.Location,
		Supplier:        req.Supplier,
		Customer:        req.Customer,
		MovementDate:    req.MovementDate,
		CreatedBy:       userID,
	}, nil
}

// MovementUpdateFromRequest traduce el body de PUT /api/movements/:id.
func MovementUpdateFromRequest(req dto.UpdateMovementRequest) (MovementUpdate, error) {
	upd := MovementUpdate{
		Type:            req.MovementType,
		UnitPrice:       req.UnitPrice,
		Notes:           req.Notes,
		ReferenceNumber: req.ReferenceNumber,
		Location:        req.Location,
		Supplier:        req.Supplier,
		Customer:        req.Customer,
		MovementDate:    req.MovementDate,
	}
	if req.Quantity != nil {
		qty, err := integerQuantity(*req.Quantity)
		if err != nil {
			return MovementUpdate{}, err
		}
		upd.Quantity = &qty
	}
	return upd, nil
}

func integerQuantity(q decimal.Decimal) (int, error) {
	if !q.IsInteger() || !q.IsPositive() {
		return 0, domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if q.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, domain.NewValidationError("quantity", "excede el máximo permitido")
	}
	return int(q.IntPart()), nil
}
