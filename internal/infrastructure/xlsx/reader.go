package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadRows lee todas las filas de la primera hoja del libro.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheets[0], err)
	}
	return rows, nil
}
