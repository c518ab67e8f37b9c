// Package reports arma los reportes descargables: existencias en PDF y movimientos en XLSX.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

const reportItemsLimit = 100

// StockReportData datos del reporte de existencias.
type StockReportData struct {
	GeneratedAt time.Time
	Stats       dto.DashboardStatsDTO
	LowStock    []*entity.StockItem
	Overstock   []*entity.StockItem
}

// StockReportGenerator genera el PDF de existencias (puerto; implementado en infrastructure/pdf).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data StockReportData) ([]byte, error)
}

// MovementSheetWriter escribe movimientos como hoja de cálculo (puerto; implementado en infrastructure/xlsx).
type MovementSheetWriter interface {
	WriteMovements(ctx context.Context, movements []*entity.MovementDetail) ([]byte, error)
}

// StatsProvider entrega las cifras del dashboard.
type StatsProvider interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

// ThresholdSource artículos fuera de umbral.
type ThresholdSource interface {
	LowStockItems(ctx context.Context, limit int) ([]*entity.StockItem, error)
	OverstockItems(ctx context.Context, limit int) ([]*entity.StockItem, error)
}

// MovementExporter lista movimientos sin paginar.
type MovementExporter interface {
	ExportMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementDetail, error)
}

// ReportUseCase genera los reportes inyectando sus fuentes y generadores.
type ReportUseCase struct {
	stats     StatsProvider
	items     ThresholdSource
	movements MovementExporter
	pdf       StockReportGenerator
	sheet     MovementSheetWriter
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	stats StatsProvider,
	items ThresholdSource,
	movements MovementExporter,
	pdf StockReportGenerator,
	sheet MovementSheetWriter,
) *ReportUseCase {
	return &ReportUseCase{
		stats:     stats,
		items:     items,
		movements: movements,
		pdf:       pdf,
		sheet:     sheet,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// StockReportPDF devuelve (pdfBytes, filename, error) con las cifras del dashboard y las tablas
// de stock bajo y sobrestock.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	stats, err := uc.stats.GetStats(ctx)
	if err != nil {
		return nil, "", err
	}
	low, err := uc.items.LowStockItems(ctx, reportItemsLimit)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: stock bajo: %w", err)
	}
	over, err := uc.items.OverstockItems(ctx, reportItemsLimit)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: sobrestock: %w", err)
	}
	now := uc.now()
	doc, err := uc.pdf.GenerateStockReport(ctx, StockReportData{
		GeneratedAt: now,
		Stats:       *stats,
		LowStock:    low,
		Overstock:   over,
	})
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("existencias-%s.pdf", now.Format("20060102")), nil
}

// MovementsXLSX devuelve los movimientos del filtro como libro XLSX.
func (uc *ReportUseCase) MovementsXLSX(ctx context.Context, filter repository.MovementFilter) ([]byte, string, error) {
	list, err := uc.movements.ExportMovements(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.sheet.WriteMovements(ctx, list)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("movimientos-%s.xlsx", uc.now().Format("20060102")), nil
}
