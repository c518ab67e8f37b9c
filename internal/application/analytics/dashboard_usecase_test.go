package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

type fakeStats struct {
	active, low, recent int
	value               decimal.Decimal
	since               time.Time
	failValue           error
}

func (f *fakeStats) CountActiveItems(context.Context) (int, error)   { return f.active, nil }
func (f *fakeStats) CountLowStockItems(context.Context) (int, error) { return f.low, nil }
func (f *fakeStats) TotalInventoryValue(context.Context) (decimal.Decimal, error) {
	if f.failValue != nil {
		return decimal.Zero, f.failValue
	}
	return f.value, nil
}
func (f *fakeStats) CountMovementsSince(_ context.Context, since time.Time) (int, error) {
	f.since = since
	return f.recent, nil
}

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func TestGetStats(t *testing.T) {
	repo := &fakeStats{active: 12, low: 3, recent: 41, value: decimal.RequireFromString("1534.5050")}
	uc := analytics.NewDashboardUseCase(repo).WithClock(func() time.Time { return now })

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalItems)
	assert.Equal(t, 3, stats.LowStockItems)
	assert.Equal(t, 41, stats.RecentMovements)
	assert.True(t, decimal.RequireFromString("1534.51").Equal(stats.TotalValue), "got %s", stats.TotalValue)
	assert.Equal(t, now.Add(-7*24*time.Hour), repo.since)
}

func TestGetStats_IdempotentWithoutWrites(t *testing.T) {
	repo := &fakeStats{active: 2, low: 1, recent: 0, value: decimal.NewFromInt(10)}
	uc := analytics.NewDashboardUseCase(repo).WithClock(func() time.Time { return now })

	first, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	second, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetStats_SingleFailureFailsCall(t *testing.T) {
	repo := &fakeStats{failValue: domain.ErrTransient}
	uc := analytics.NewDashboardUseCase(repo)

	stats, err := uc.GetStats(context.Background())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrTransient)
}
