// Package xlsx genera los libros de Excel de saldos y registro de documentos.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

var _ documents.SpreadsheetExporter = (*Exporter)(nil)

const timeLayout = "2006-01-02 15:04"

// Exporter implementa documents.SpreadsheetExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// BalancesWorkbook una fila por saldo (producto, ubicación).
func (e *Exporter) BalancesWorkbook(rows []dto.ProductBalanceView) ([]byte, error) {
	header := []interface{}{
		"Bodega", "Ubicación", "Artículo", "Producto", "Cantidad", "Actualizado",
	}
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{
			r.WarehouseName,
			r.LocationCode,
			r.ArticleNumber,
			r.ProductName,
			r.Quantity.InexactFloat64(),
			r.UpdatedAt.Format(timeLayout),
		})
	}
	return write("Saldos", header, data)
}

// DocumentsWorkbook registro de documentos.
func (e *Exporter) DocumentsWorkbook(docs []dto.DocumentSummary) ([]byte, error) {
	header := []interface{}{
		"Número", "Tipo", "Estado", "Autor", "Creado",
	}
	data := make([][]interface{}, 0, len(docs))
	for _, d := range docs {
		data = append(data, []interface{}{
			d.Number,
			d.Kind,
			d.Status,
			d.AuthorID,
			d.CreatedAt.Format(timeLayout),
		})
	}
	return write("Documentos", header, data)
}

func write(sheetName string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, fmt.Errorf("xlsx: celdas: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celdas: %w", err)
		}
		row := r
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
