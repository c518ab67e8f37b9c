package alerts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/alerts"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeSources struct {
	low, over     []*entity.StockItem
	movs          []*entity.MovementDetail
	suppliers     []*entity.Reference
	reorders      []*entity.ReorderDetail
	failReorders  error
	panicOverflow bool

	movSince, supSince time.Time
	mu                 sync.Mutex
	caps               map[string]int
}

func (f *fakeSources) record(name string, limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caps[name] = limit
}

func (f *fakeSources) LowStockItems(_ context.Context, limit int) ([]*entity.StockItem, error) {
	f.record("low", limit)
	return f.low, nil
}

func (f *fakeSources) OverstockItems(_ context.Context, limit int) ([]*entity.StockItem, error) {
	f.record("over", limit)
	if f.panicOverflow {
		panic("nil map")
	}
	return f.over, nil
}

func (f *fakeSources) RecentMovements(_ context.Context, since time.Time, limit int) ([]*entity.MovementDetail, error) {
	f.record("mov", limit)
	f.movSince = since
	return f.movs, nil
}

func (f *fakeSources) NewSuppliers(_ context.Context, since time.Time, limit int) ([]*entity.Reference, error) {
	f.record("sup", limit)
	f.supSince = since
	return f.suppliers, nil
}

func (f *fakeSources) PendingReorders(_ context.Context, limit int) ([]*entity.ReorderDetail, error) {
	f.record("reo", limit)
	if f.failReorders != nil {
		return nil, f.failReorders
	}
	return f.reorders, nil
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(i int) *int              { return &i }

func sampleSources() *fakeSources {
	return &fakeSources{
		caps: map[string]int{},
		low: []*entity.StockItem{{
			ID: "i1", Name: "Tornillo", Quantity: 5, MinQuantity: ptrInt(10),
			UnitPrice: decimal.NewFromInt(1), UpdatedAt: ptrTime(base.Add(-3 * time.Hour)),
		}},
		over: []*entity.StockItem{{
			ID: "i2", Name: "Tuerca", Quantity: 12, MaxQuantity: ptrInt(10),
			UpdatedAt: ptrTime(base.Add(-1 * time.Hour)),
		}},
		movs: []*entity.MovementDetail{{
			StockMovement: entity.StockMovement{ID: "m1", ItemID: "i1", Type: entity.MovementTypeOUT, Quantity: 3, MovementDate: base.Add(-30 * time.Minute)},
			ItemName:      "Tornillo",
		}},
		suppliers: []*entity.Reference{{ID: "s1", Kind: entity.ReferenceSupplier, Name: "Acme", CreatedAt: base.Add(-48 * time.Hour)}},
		reorders: []*entity.ReorderDetail{{
			ReorderRequest: entity.ReorderRequest{ID: "r1", ItemID: "i1", Quantity: 20, Status: entity.ReorderPending, CreatedAt: base.Add(-2 * time.Hour)},
			ItemName:       "Tornillo",
		}},
	}
}

func newAggregator(src *fakeSources) *alerts.Aggregator {
	return alerts.NewAggregator(src, alerts.Options{}, zerolog.Nop()).WithClock(func() time.Time { return base })
}

func ids(list []entity.Alert) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestListAlerts_MergesAndSortsByTimestampDesc(t *testing.T) {
	got := newAggregator(sampleSources()).ListAlerts(context.Background())

	assert.Equal(t, []string{
		"movement-m1",        // -30m
		"overstock-i2",       // -1h
		"reorder_pending-r1", // -2h
		"low_stock-i1",       // -3h
		"supplier_new-s1",    // -48h
	}, ids(got))

	byID := map[string]entity.Alert{}
	for _, a := range got {
		byID[a.ID] = a
	}
	assert.Equal(t, entity.SeverityWarning, byID["low_stock-i1"].Severity)
	assert.Equal(t, entity.SeverityInfo, byID["overstock-i2"].Severity)
	assert.Equal(t, entity.SeverityInfo, byID["movement-m1"].Severity)
	assert.Equal(t, entity.SeveritySuccess, byID["supplier_new-s1"].Severity)
	assert.Equal(t, entity.SeverityInfo, byID["reorder_pending-r1"].Severity)
	assert.Equal(t, "Salida registrada", byID["movement-m1"].Title)
}

func TestListAlerts_AppliesCapsAndWindows(t *testing.T) {
	src := sampleSources()
	newAggregator(src).ListAlerts(context.Background())

	assert.Equal(t, map[string]int{"low": 50, "over": 50, "mov": 50, "sup": 20, "reo": 50}, src.caps)
	assert.Equal(t, base.Add(-24*time.Hour), src.movSince)
	assert.Equal(t, base.Add(-7*24*time.Hour), src.supSince)
}

func TestListAlerts_BrokenSourceBecomesInternalWarning(t *testing.T) {
	src := sampleSources()
	src.failReorders = errors.New(`relation "reorder_requests" does not exist`)

	got := newAggregator(src).ListAlerts(context.Background())

	require.Len(t, got, 5)
	var warnings []entity.Alert
	for _, a := range got {
		if a.Category == entity.AlertInternalWarning {
			warnings = append(warnings, a)
		}
		assert.NotEqual(t, entity.AlertReorderPending, a.Category)
	}
	require.Len(t, warnings, 1)
	assert.Equal(t, "internal_warning-reorders", warnings[0].ID)
	assert.Equal(t, entity.SeverityWarning, warnings[0].Severity)
	assert.Equal(t, "reorders", warnings[0].Metadata["source"])
	// timestamp = ahora: encabeza el feed
	assert.Equal(t, warnings[0].ID, got[0].ID)
}

func TestListAlerts_PanickingSourceIsIsolated(t *testing.T) {
	src := sampleSources()
	src.panicOverflow = true

	got := newAggregator(src).ListAlerts(context.Background())

	assert.Contains(t, ids(got), "internal_warning-overstock")
	assert.Contains(t, ids(got), "low_stock-i1")
	assert.NotContains(t, ids(got), "overstock-i2")
}

func TestListAlerts_MissingTimestampSortsOldestAndTiesKeepSourceOrder(t *testing.T) {
	src := &fakeSources{
		caps: map[string]int{},
		low: []*entity.StockItem{
			{ID: "a", Name: "A", MinQuantity: ptrInt(1)},
			{ID: "b", Name: "B", MinQuantity: ptrInt(1)},
		},
		over:      []*entity.StockItem{{ID: "c", Name: "C", MaxQuantity: ptrInt(0)}},
		suppliers: []*entity.Reference{{ID: "s", Name: "S", CreatedAt: base.Add(-time.Hour)}},
	}

	got := newAggregator(src).ListAlerts(context.Background())

	assert.Equal(t, []string{"supplier_new-s", "low_stock-a", "low_stock-b", "overstock-c"}, ids(got))
}

func TestListAlerts_EmptyFeedIsNotNil(t *testing.T) {
	got := newAggregator(&fakeSources{caps: map[string]int{}}).ListAlerts(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByCategory(t *testing.T) {
	got := newAggregator(sampleSources()).ListAlerts(context.Background())

	low := alerts.FilterByCategory(got, entity.AlertLowStock)
	assert.Equal(t, []string{"low_stock-i1"}, ids(low))
	assert.Len(t, alerts.FilterByCategory(got, ""), len(got))
	assert.True(t, alerts.ValidCategory("supplier_new"))
	assert.False(t, alerts.ValidCategory("weather"))
}
