package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func postIN(t *testing.T, engine *inventory.MovementEngine, itemID string, qty int) *entity.MovementDetail {
	t.Helper()
	mov, err := engine.PostMovement(context.Background(), inventory.MovementInput{ItemID: itemID, Type: entity.MovementTypeIN, Quantity: qty})
	require.NoError(t, err)
	return mov
}

func TestUpdateMovement_ReDerivesQuantityDelta(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 0)
	engine := newEngine(store, newResolver())
	mov := postIN(t, engine, "X", 10)

	updated, err := engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{Quantity: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, 4, store.quantity("X"))

	// IN 4 → OUT 1: efecto pasa de +4 a −1
	_, err = engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{
		Type: ptr(entity.MovementTypeOUT), Quantity: ptr(1),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "la existencia quedaría en −1")
	assert.Equal(t, 4, store.quantity("X"), "rollback completo")

	postIN(t, engine, "X", 6) // existencia 10
	_, err = engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{
		Type: ptr(entity.MovementTypeOUT), Quantity: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, store.quantity("X"))
}

func TestUpdateMovement_NonStructuralFieldsLeaveQuantity(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 0)
	engine := newEngine(store, newResolver())
	mov := postIN(t, engine, "X", 3)

	updated, err := engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{
		Notes: ptr("factura 77"), UnitPrice: dec("2"), Supplier: ptr("Acme"),
	})
	require.NoError(t, err)
	assert.Equal(t, "factura 77", updated.Notes)
	require.NotNil(t, updated.SupplierID)
	assert.Equal(t, "sup-1", *updated.SupplierID)
	require.NotNil(t, updated.TotalValue)
	assert.Equal(t, "6", updated.TotalValue.String())
	assert.Equal(t, 3, store.quantity("X"))

	cleared, err := engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{Supplier: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.SupplierID)
}

func TestUpdateMovement_Errors(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 0)
	engine := newEngine(store, newResolver())
	mov := postIN(t, engine, "X", 3)

	_, err := engine.UpdateMovement(context.Background(), "missing", inventory.MovementUpdate{Quantity: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{Quantity: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{Type: ptr("MOVE")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = engine.UpdateMovement(context.Background(), mov.ID, inventory.MovementUpdate{UnitPrice: dec("0.125")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 3, store.quantity("X"))
}

func TestDeleteMovement_RevertsEffect(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 2)
	engine := newEngine(store, newResolver())

	in := postIN(t, engine, "X", 5) // 7
	out, err := engine.PostMovement(context.Background(), inventory.MovementInput{ItemID: "X", Type: entity.MovementTypeOUT, Quantity: 4})
	require.NoError(t, err) // 3

	require.NoError(t, engine.DeleteMovement(context.Background(), out.ID))
	assert.Equal(t, 7, store.quantity("X"))

	require.NoError(t, engine.DeleteMovement(context.Background(), in.ID))
	assert.Equal(t, 2, store.quantity("X"))
	assert.Zero(t, store.movementCount())

	assert.ErrorIs(t, engine.DeleteMovement(context.Background(), in.ID), domain.ErrNotFound)
}

func TestDeleteMovement_ConsumedEntryIsRejected(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 0)
	engine := newEngine(store, newResolver())

	in := postIN(t, engine, "X", 5)
	_, err := engine.PostMovement(context.Background(), inventory.MovementInput{ItemID: "X", Type: entity.MovementTypeOUT, Quantity: 4})
	require.NoError(t, err)

	err = engine.DeleteMovement(context.Background(), in.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, store.quantity("X"))
	assert.Equal(t, 2, store.movementCount())
}

func TestCorrectQuantity_PostsCompensatingMovement(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 10)
	engine := newEngine(store, newResolver())

	up, err := engine.CorrectQuantity(context.Background(), "X", 14, "", "admin-1")
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, entity.MovementTypeIN, up.Type)
	assert.Equal(t, 4, up.Quantity)
	assert.Equal(t, "Corrección de inventario", up.Notes)
	assert.Equal(t, 14, store.quantity("X"))

	down, err := engine.CorrectQuantity(context.Background(), "X", 0, "conteo físico", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, down.Type)
	assert.Equal(t, 14, down.Quantity)
	assert.Zero(t, store.quantity("X"))

	none, err := engine.CorrectQuantity(context.Background(), "X", 0, "", "")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Equal(t, 2, store.movementCount())
}

func TestCorrectQuantity_Errors(t *testing.T) {
	store := newMemStore()
	store.addItem("X", "Tornillo", 1)
	engine := newEngine(store, newResolver())

	_, err := engine.CorrectQuantity(context.Background(), "X", -1, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = engine.CorrectQuantity(context.Background(), "nope", 3, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
