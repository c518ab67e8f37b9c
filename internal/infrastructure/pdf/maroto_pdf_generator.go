// Package pdf genera el reporte de existencias del almacén con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Artículos | Stock bajo | Valor | Movimientos 7d   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA STOCK BAJO: Artículo | Existencia | Mínimo | Valor   │
//	│  TABLA SOBRESTOCK: Artículo | Existencia | Máximo | Valor   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/reports"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

var _ reports.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning = &props.Color{Red: 176, Green: 96, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador; title encabeza el reporte (nombre de la app).
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Bodega"
	}
	return &MarotoPDFGenerator{title: title}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, data reports.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("ARTÍCULOS EN O BAJO EL MÍNIMO", len(data.LowStock)))
	m.AddRows(tableHeaderRow("Mínimo"))
	m.AddRows(itemRows(data.LowStock, func(it *entity.StockItem) *int { return it.MinQuantity })...)

	m.AddRows(row.New(4))
	m.AddRows(sectionTitleRow("ARTÍCULOS EN O SOBRE EL MÁXIMO", len(data.Overstock)))
	m.AddRows(tableHeaderRow("Máximo"))
	m.AddRows(itemRows(data.Overstock, func(it *entity.StockItem) *int { return it.MaxQuantity })...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(data reports.StockReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Reporte de existencias", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: las cuatro cifras del dashboard.
func summaryRow(data reports.StockReportData) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		cell("Artículos activos", strconv.Itoa(data.Stats.TotalItems)),
		cell("En stock bajo", strconv.Itoa(data.Stats.LowStockItems)),
		cell("Valor inventario", "$"+formatMoney(data.Stats.TotalValue)),
		cell("Movimientos 7 días", strconv.Itoa(data.Stats.RecentMovements)),
	)
}

func sectionTitleRow(title string, count int) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s (%d)", title, count), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func tableHeaderRow(thresholdLabel string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Artículo", 6, align.Left),
		h("Existencia", 2, align.Center),
		h(thresholdLabel, 2, align.Center),
		h("Valor", 2, align.Right),
	)
}

// itemRows: una fila por artículo; threshold elige el umbral a mostrar.
func itemRows(items []*entity.StockItem, threshold func(*entity.StockItem) *int) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin artículos.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		limit := "—"
		if v := threshold(it); v != nil {
			limit = strconv.Itoa(*v)
		}
		value := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorWarning,
			})),
			col.New(2).Add(text.New(limit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a entero e inserta puntos de miles.
// Ej: 25000 → "25.000", 1000000.4 → "1.000.000"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
