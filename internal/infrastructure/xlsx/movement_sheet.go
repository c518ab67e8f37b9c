// Package xlsx exporta movimientos de inventario como libro de Excel (excelize).
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Bodega-api/internal/application/reports"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

var _ reports.MovementSheetWriter = (*MovementSheet)(nil)

const sheetName = "Movimientos"

var headers = []string{
	"Fecha", "Tipo", "Artículo", "Cantidad", "Precio unitario", "Valor total",
	"Ubicación", "Proveedor", "Cliente", "Referencia", "Notas", "Registrado por", "ID",
}

// MovementSheet escribe movimientos en una hoja con encabezado estilizado.
type MovementSheet struct{}

// NewMovementSheet construye el escritor.
func NewMovementSheet() *MovementSheet { return &MovementSheet{} }

// WriteMovements devuelve el libro XLSX con una fila por movimiento en el orden recibido.
func (w *MovementSheet) WriteMovements(_ context.Context, movements []*entity.MovementDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, colName, colName, 18)
	}

	for r, m := range movements {
		values := []any{
			m.MovementDate.Format("2006-01-02 15:04:05"),
			m.Type,
			m.ItemName,
			m.Quantity,
			decimalCell(m.UnitPrice),
			decimalCell(m.TotalValue),
			deref(m.LocationName),
			deref(m.SupplierName),
			deref(m.CustomerName),
			m.ReferenceNumber,
			m.Notes,
			deref(m.CreatedByName),
			m.ID,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("xlsx: congelar encabezado: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// decimalCell escribe precios como número para que Excel pueda sumarlos; vacío si no hay.
func decimalCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
