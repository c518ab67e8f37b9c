package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/reports"
)

const pdfContentType = "application/pdf"

// DashboardHandler maneja cifras del dashboard, feed de alertas y reporte PDF.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	alerts  *alerts.Aggregator
	reports *reports.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, agg *alerts.Aggregator, reportUC *reports.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, alerts: agg, reports: reportUC}
}

// GetStats godoc
// @Summary      Cifras del dashboard
// @Description  totalItems, lowStockItems, totalValue y recentMovements (últimos 7 días).
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetAlerts godoc
// @Summary      Feed de alertas
// @Description  Fusión de stock bajo, sobrestock, movimientos recientes, proveedores nuevos y
//
//	reposiciones pendientes, de más reciente a más antigua. Una fuente caída aparece como
//	internal_warning y no interrumpe el resto.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "low_stock | overstock | movement | supplier_new | reorder_pending | internal_warning"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" && !alerts.ValidCategory(category) {
		return badQuery(c, "categoría de alerta desconocida")
	}
	feed := alerts.FilterByCategory(h.alerts.ListAlerts(c.UserContext()), category)
	return c.JSON(dto.ToAlertList(feed))
}

// StockReport godoc
// @Summary      Reporte PDF de existencias
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *DashboardHandler) StockReport(c *fiber.Ctx) error {
	doc, filename, err := h.reports.StockReportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, pdfContentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}
