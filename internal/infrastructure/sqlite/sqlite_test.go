package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/alerts"
	"github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/reference"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlite"
)

type fixture struct {
	db     *sqlx.DB
	items  *sqlite.ItemRepo
	refs   *sqlite.ReferenceRepo
	engine *inventory.MovementEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "bodega.db"), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	refs := sqlite.NewReferenceRepository(db)
	return &fixture{
		db:    db,
		items: sqlite.NewItemRepository(db),
		refs:  refs,
		engine: inventory.NewMovementEngine(
			sqlite.NewTxRunner(db),
			reference.NewResolver(refs),
			sqlite.NewStockMovementRepository(db),
			zerolog.Nop(),
		),
	}
}

func intPtr(v int) *int { return &v }

// seedItem crea un artículo y le da existencia inicial directamente por el ledger.
func (f *fixture) seedItem(t *testing.T, name string, qty int, minQ, maxQ *int) string {
	t.Helper()
	ctx := context.Background()
	it := &entity.StockItem{
		ID: uuid.NewString(), Name: name, UnitPrice: decimal.RequireFromString("2.50"),
		MinQuantity: minQ, MaxQuantity: maxQ, Active: true, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.items.Create(ctx, it))
	if qty > 0 {
		require.NoError(t, sqlite.NewStockLedger(f.db).Increase(ctx, it.ID, qty))
	}
	return it.ID
}

func (f *fixture) seedRef(t *testing.T, kind entity.ReferenceKind, name string, createdAt time.Time) string {
	t.Helper()
	ref := &entity.Reference{ID: uuid.NewString(), Kind: kind, Name: name, CreatedAt: createdAt}
	require.NoError(t, f.refs.Create(context.Background(), ref))
	return ref.ID
}

func (f *fixture) quantity(t *testing.T, itemID string) int {
	t.Helper()
	it, err := f.items.GetByID(context.Background(), itemID)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func TestPostMovement_INComputesTotalAndResolvesNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.seedItem(t, "Tornillo", 5, nil, nil)
	locID := f.seedRef(t, entity.ReferenceLocation, "Bodega Norte", time.Now().UTC())

	price := decimal.RequireFromString("1.25")
	mov, err := f.engine.PostMovement(ctx, inventory.MovementInput{
		ItemID: itemID, Type: entity.MovementTypeIN, Quantity: 20, UnitPrice: &price,
		Location: "Bodega Norte", Supplier: "Desconocido",
	})
	require.NoError(t, err)

	assert.Equal(t, 25, f.quantity(t, itemID))
	require.NotNil(t, mov.TotalValue)
	assert.True(t, decimal.RequireFromString("25").Equal(*mov.TotalValue))
	assert.Equal(t, "Tornillo", mov.ItemName)
	require.NotNil(t, mov.LocationID)
	assert.Equal(t, locID, *mov.LocationID)
	require.NotNil(t, mov.LocationName)
	assert.Equal(t, "Bodega Norte", *mov.LocationName)
	assert.Nil(t, mov.SupplierID, "etiqueta sin coincidencia queda en null")
}

func TestPostMovement_WithoutPriceHasNoTotal(t *testing.T) {
	f := newFixture(t)
	itemID := f.seedItem(t, "Arandela", 0, nil, nil)

	mov, err := f.engine.PostMovement(context.Background(), inventory.MovementInput{
		ItemID: itemID, Type: entity.MovementTypeIN, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Nil(t, mov.TotalValue)
	assert.Nil(t, mov.UnitPrice)
}

func TestPostMovement_InsufficientStockWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.seedItem(t, "Tuerca", 4, nil, nil)

	_, err := f.engine.PostMovement(ctx, inventory.MovementInput{ItemID: itemID, Type: entity.MovementTypeOUT, Quantity: 5})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 4, f.quantity(t, itemID))

	_, total, err := f.engine.ListMovements(ctx, repository.MovementFilter{ItemID: itemID})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPostMovement_UnknownItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.PostMovement(context.Background(), inventory.MovementInput{
		ItemID: "no-existe", Type: entity.MovementTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostMovement_ConcurrentOUTOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	itemID := f.seedItem(t, "Martillo", 5, nil, nil)

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.PostMovement(context.Background(), inventory.MovementInput{
				ItemID: itemID, Type: entity.MovementTypeOUT, Quantity: 5,
			})
		}(i)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 0, f.quantity(t, itemID))
}

func TestDeleteAndUpdateMovement_RederiveLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.seedItem(t, "Broca", 10, nil, nil)

	in, err := f.engine.PostMovement(ctx, inventory.MovementInput{ItemID: itemID, Type: entity.MovementTypeIN, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, 16, f.quantity(t, itemID))

	qty := 2
	_, err = f.engine.UpdateMovement(ctx, in.ID, inventory.MovementUpdate{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 12, f.quantity(t, itemID))

	require.NoError(t, f.engine.DeleteMovement(ctx, in.ID))
	assert.Equal(t, 10, f.quantity(t, itemID))

	_, err = f.engine.GetMovement(ctx, in.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedItem(t, "Cable rojo", 50, nil, nil)
	b := f.seedItem(t, "Cinta", 50, nil, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	post := func(item, typ string, qty int, notes string, day int) {
		d := base.AddDate(0, 0, day)
		_, err := f.engine.PostMovement(ctx, inventory.MovementInput{
			ItemID: item, Type: typ, Quantity: qty, Notes: notes, MovementDate: &d,
		})
		require.NoError(t, err)
	}
	post(a, entity.MovementTypeIN, 1, "compra 100%", 0)
	post(a, entity.MovementTypeOUT, 2, "venta", 1)
	post(b, entity.MovementTypeOUT, 3, "venta", 2)
	post(b, entity.MovementTypeIN, 4, "ajuste", 3)

	list, total, err := f.engine.ListMovements(ctx, repository.MovementFilter{Type: entity.MovementTypeOUT})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].Quantity, "más reciente primero")

	_, total, err = f.engine.ListMovements(ctx, repository.MovementFilter{Search: "cable"})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "busca también por nombre del artículo")

	_, total, err = f.engine.ListMovements(ctx, repository.MovementFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "el % se busca literal")

	from, to := base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)
	list, total, err = f.engine.ListMovements(ctx, repository.MovementFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, m := range list {
		assert.False(t, m.MovementDate.Before(from))
		assert.False(t, m.MovementDate.After(to))
	}

	list, total, err = f.engine.ListMovements(ctx, repository.MovementFilter{ItemID: b, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Quantity)
}

func TestAlerts_BrokenSourceDegradesToWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedItem(t, "Bajo", 5, intPtr(10), nil)
	f.seedItem(t, "Alto", 12, nil, intPtr(10))
	f.seedItem(t, "Normal", 7, intPtr(2), intPtr(20))

	_, err := f.db.ExecContext(ctx, `DROP TABLE reorder_requests`)
	require.NoError(t, err)

	feed := alerts.NewAggregator(sqlite.NewReadModel(f.db), alerts.Options{}, zerolog.Nop()).ListAlerts(ctx)

	byCategory := map[string][]entity.Alert{}
	for _, a := range feed {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	require.Len(t, byCategory[entity.AlertLowStock], 1)
	assert.Contains(t, byCategory[entity.AlertLowStock][0].Message, "Bajo")
	require.Len(t, byCategory[entity.AlertOverstock], 1)
	assert.Contains(t, byCategory[entity.AlertOverstock][0].Message, "Alto")
	require.Len(t, byCategory[entity.AlertInternalWarning], 1)
	assert.Equal(t, "internal_warning-reorders", byCategory[entity.AlertInternalWarning][0].ID)
}

func TestReadModel_RecentAndPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.seedItem(t, "Lija", 1, nil, nil)
	supID := f.seedRef(t, entity.ReferenceSupplier, "Acme", time.Now().UTC())
	f.seedRef(t, entity.ReferenceSupplier, "Viejo", time.Now().UTC().AddDate(0, 0, -30))

	_, err := f.engine.PostMovement(ctx, inventory.MovementInput{ItemID: itemID, Type: entity.MovementTypeIN, Quantity: 2})
	require.NoError(t, err)
	reorders := sqlite.NewReorderRepository(f.db)
	require.NoError(t, reorders.Create(ctx, &entity.ReorderRequest{
		ID: uuid.NewString(), ItemID: itemID, SupplierID: &supID, Quantity: 5,
		Status: entity.ReorderPending, CreatedAt: time.Now().UTC(),
	}))

	rm := sqlite.NewReadModel(f.db)
	recent, err := rm.RecentMovements(ctx, time.Now().Add(-time.Hour), 50)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Lija", recent[0].ItemName)

	suppliers, err := rm.NewSuppliers(ctx, time.Now().AddDate(0, 0, -7), 20)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Acme", suppliers[0].Name)

	pending, err := rm.PendingReorders(ctx, 50)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].SupplierName)
	assert.Equal(t, "Acme", *pending[0].SupplierName)
}

func TestStats_ThroughDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedItem(t, "A", 4, intPtr(5), nil)
	f.seedItem(t, "B", 10, intPtr(5), nil)
	_, err := f.engine.PostMovement(ctx, inventory.MovementInput{ItemID: a, Type: entity.MovementTypeIN, Quantity: 1})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(sqlite.NewReadModel(f.db))
	first, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalItems)
	assert.Equal(t, 1, first.LowStockItems, "A queda en 5 = mínimo")
	assert.True(t, decimal.RequireFromString("37.5").Equal(first.TotalValue), first.TotalValue.String())
	assert.Equal(t, 1, first.RecentMovements)

	second, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReferences_DuplicateAndCaseSensitiveLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedRef(t, entity.ReferenceCustomer, "Ferretería Sur", time.Now().UTC())

	err := f.refs.Create(ctx, &entity.Reference{
		ID: uuid.NewString(), Kind: entity.ReferenceCustomer, Name: "Ferretería Sur", CreatedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.refs.LookupID(ctx, entity.ReferenceCustomer, "Ferretería Sur")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	got, err = f.refs.LookupID(ctx, entity.ReferenceCustomer, "ferretería sur")
	require.NoError(t, err)
	assert.Nil(t, got)

	f.seedRef(t, entity.ReferenceCustomer, "Almacén Centro", time.Now().UTC())
	list, total, err := f.refs.List(ctx, entity.ReferenceCustomer, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Almacén Centro", list[0].Name)

	list, total, err = f.refs.List(ctx, entity.ReferenceSupplier, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestReorders_UpdateStatusNotFound(t *testing.T) {
	f := newFixture(t)
	err := sqlite.NewReorderRepository(f.db).UpdateStatus(context.Background(), "nada", entity.ReorderOrdered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := sqlite.NewUserRepository(f.db)
	now := time.Now().UTC()
	u := &entity.User{ID: uuid.NewString(), Email: "ana@bodega.test", PasswordHash: "x", Name: "Ana",
		Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(ctx, u))

	dup := *u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := users.FindByEmail(ctx, "ana@bodega.test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.WithinDuration(t, now, got.CreatedAt, time.Millisecond)
}
