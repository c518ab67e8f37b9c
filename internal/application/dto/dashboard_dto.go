package dto

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Las cuatro cifras se calculan de forma independiente (sin snapshot común).
type DashboardStatsDTO struct {
	TotalItems      int             `json:"totalItems"`      // artículos activos
	LowStockItems   int             `json:"lowStockItems"`   // activos con quantity <= min_quantity
	TotalValue      decimal.Decimal `json:"totalValue"`      // Σ quantity × unit_price (activos)
	RecentMovements int             `json:"recentMovements"` // movimientos de los últimos 7 días
}

// AlertDTO alerta sintetizada para el feed.
type AlertDTO struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Level     string         `json:"level"`
	Timestamp *time.Time     `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AlertListResponse respuesta de GET /api/alerts.
type AlertListResponse struct {
	Total  int        `json:"total"`
	Alerts []AlertDTO `json:"alerts"`
}

// ToAlertList convierte las alertas de dominio conservando el orden.
func ToAlertList(alerts []entity.Alert) *AlertListResponse {
	out := make([]AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, AlertDTO{
			ID:        a.ID,
			Type:      a.Category,
			Title:     a.Title,
			Message:   a.Message,
			Level:     a.Severity,
			Timestamp: a.Timestamp,
			Metadata:  a.Metadata,
		})
	}
	return &AlertListResponse{Total: len(out), Alerts: out}
}
