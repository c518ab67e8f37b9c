package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/xlsx"
)

// seedRow fila kind,name,code,email,phone.
type seedRow struct {
	line int
	kind entity.ReferenceKind
	req  dto.CreateReferenceRequest
}

// summary resultado de una importación.
type summary struct {
	Created    int
	Duplicates int
	Invalid    int
}

// referenceCreator lo implementa usecase.ReferenceUseCase.
type referenceCreator interface {
	Create(ctx context.Context, kind entity.ReferenceKind, in dto.CreateReferenceRequest) (*dto.ReferenceResponse, error)
}

var kindAliases = map[string]entity.ReferenceKind{
	"location":   entity.ReferenceLocation,
	"locations":  entity.ReferenceLocation,
	"ubicacion":  entity.ReferenceLocation,
	"supplier":   entity.ReferenceSupplier,
	"suppliers":  entity.ReferenceSupplier,
	"proveedor":  entity.ReferenceSupplier,
	"customer":   entity.ReferenceCustomer,
	"customers":  entity.ReferenceCustomer,
	"cliente":    entity.ReferenceCustomer,
	"category":   entity.ReferenceCategory,
	"categories": entity.ReferenceCategory,
	"categoria":  entity.ReferenceCategory,
}

// readRecords lee CSV o XLSX según la extensión. latin1 solo aplica a CSV.
func readRecords(path string, r io.Reader, latin1 bool) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsx.ReadRows(r)
	}
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	return records, nil
}

// parseRows convierte registros en filas; omite la cabecera y las líneas vacías.
// Devuelve también las líneas con tipo desconocido o sin nombre.
func parseRows(records [][]string) (rows []seedRow, invalid []int) {
	for i, rec := range records {
		line := i + 1
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		first := strings.ToLower(strings.TrimSpace(rec[0]))
		if i == 0 && first == "kind" {
			continue
		}
		kind, ok := kindAliases[first]
		if !ok || strings.TrimSpace(field(rec, 1)) == "" {
			invalid = append(invalid, line)
			continue
		}
		rows = append(rows, seedRow{
			line: line,
			kind: kind,
			req: dto.CreateReferenceRequest{
				Name:  strings.TrimSpace(field(rec, 1)),
				Code:  strings.TrimSpace(field(rec, 2)),
				Email: strings.TrimSpace(field(rec, 3)),
				Phone: strings.TrimSpace(field(rec, 4)),
			},
		})
	}
	return rows, invalid
}

// importRows crea cada fila; los duplicados y las filas rechazadas por validación se cuentan y
// se omiten. Cualquier otro error detiene la importación.
func importRows(ctx context.Context, uc referenceCreator, rows []seedRow, onSkip func(seedRow, error)) (summary, error) {
	var s summary
	for _, row := range rows {
		_, err := uc.Create(ctx, row.kind, row.req)
		switch {
		case err == nil:
			s.Created++
		case errors.Is(err, domain.ErrDuplicate):
			s.Duplicates++
			onSkip(row, err)
		case errors.Is(err, domain.ErrInvalidInput):
			s.Invalid++
			onSkip(row, err)
		default:
			return s, fmt.Errorf("línea %d: %w", row.line, err)
		}
	}
	return s, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
