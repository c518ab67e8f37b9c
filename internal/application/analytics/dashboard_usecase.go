// Package analytics contiene los casos de uso de lectura para el dashboard del almacén.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const recentMovementsWindow = 7 * 24 * time.Hour

// DashboardUseCase genera las cuatro cifras del dashboard.
//
// Fuente de datos: StatsRepository (consultas read-only).
// Las cifras no comparten snapshot; un fallo en cualquiera falla toda la llamada.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{
		statsRepo: statsRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (para pruebas).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats ejecuta las cuatro agregaciones en paralelo:
//  1. CountActiveItems           → TotalItems
//  2. CountLowStockItems         → LowStockItems
//  3. TotalInventoryValue        → TotalValue
//  4. CountMovementsSince(7 días) → RecentMovements
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	since := uc.now().Add(-recentMovementsWindow)

	var (
		totalItems, lowStock, recent int
		totalValue                   decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.statsRepo.CountActiveItems(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: artículos activos: %w", err)
		}
		totalItems = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.statsRepo.CountLowStockItems(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		lowStock = n
		return nil
	})
	g.Go(func() error {
		v, err := uc.statsRepo.TotalInventoryValue(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: valor de inventario: %w", err)
		}
		totalValue = v
		return nil
	})
	g.Go(func() error {
		n, err := uc.statsRepo.CountMovementsSince(gctx, since)
		if err != nil {
			return fmt.Errorf("dashboard: movimientos recientes: %w", err)
		}
		recent = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		TotalItems:      totalItems,
		LowStockItems:   lowStock,
		TotalValue:      totalValue.Round(2),
		RecentMovements: recent,
	}, nil
}
