package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// ExportUseCase genera archivos descargables a partir de las consultas del motor.
type ExportUseCase struct {
	documents *DocumentUseCase
	reports   *ReportUseCase
	sheets    SpreadsheetExporter
	renderer  DocumentRenderer
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(documents *DocumentUseCase, reports *ReportUseCase, sheets SpreadsheetExporter, renderer DocumentRenderer) *ExportUseCase {
	return &ExportUseCase{documents: documents, reports: reports, sheets: sheets, renderer: renderer}
}

const exportPageSize = 1000

// BalancesWorkbook libro de Excel con los saldos vigentes.
func (uc *ExportUseCase) BalancesWorkbook(ctx context.Context) ([]byte, error) {
	rows, err := uc.reports.SnapshotInventory(ctx)
	if err != nil {
		return nil, err
	}
	return uc.sheets.BalancesWorkbook(rows)
}

// DocumentsWorkbook libro de Excel con el registro de documentos del tipo indicado.
func (uc *ExportUseCase) DocumentsWorkbook(ctx context.Context, kind string) ([]byte, error) {
	var all []dto.DocumentSummary
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.documents.List(ctx, kind, dto.PageRequest{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	return uc.sheets.DocumentsWorkbook(all)
}

// DocumentPDF representación imprimible de un documento.
func (uc *ExportUseCase) DocumentPDF(ctx context.Context, documentID int64) ([]byte, error) {
	doc, err := uc.documents.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	b, err := uc.renderer.RenderDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render documento %s: %w", doc.Number, err)
	}
	return b, nil
}
