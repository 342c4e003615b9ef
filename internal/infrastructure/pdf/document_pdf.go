// Package pdf implementa la representación imprimible de los documentos de almacén.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento    │  N° Documento + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Estado / Autor / Fecha de entrega o venta            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas según el tipo de documento                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el número + firmas                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

var _ documents.DocumentRenderer = (*MarotoRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var kindTitles = map[string]string{
	"goods_receipt":  "ENTRADA DE MERCANCÍA",
	"goods_issue":    "SALIDA DE MERCANCÍA",
	"inventory":      "INVENTARIO",
	"storage_report": "REPORTE DE OCUPACIÓN",
}

var statusLabels = map[string]string{
	"new":        "Nuevo",
	"lines_open": "Con líneas",
	"located":    "Ubicado",
	"issued":     "Emitido",
	"closed":     "Cerrado",
}

// MarotoRenderer implementa documents.DocumentRenderer usando Maroto v2.
type MarotoRenderer struct {
	company string
}

// NewMarotoRenderer construye el generador; company aparece como autor del PDF.
func NewMarotoRenderer(company string) *MarotoRenderer {
	return &MarotoRenderer{company: company}
}

// RenderDocument genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) RenderDocument(_ context.Context, doc *dto.DocumentResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Number, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	header, body := table(doc)
	m.AddRows(header)
	m.AddRows(body...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *dto.DocumentResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(kindTitles[doc.Kind], doc.Kind), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+doc.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func detailsRow(doc *dto.DocumentResponse) core.Row {
	info := fmt.Sprintf("Estado: %s   |   Autor: %s",
		nonEmpty(statusLabels[doc.Status], doc.Status),
		nonEmpty(doc.AuthorName, fmt.Sprintf("#%d", doc.AuthorID)),
	)
	if doc.DeliveryDate != nil {
		info += "   |   Entrega: " + doc.DeliveryDate.Format("02/01/2006")
	}
	if doc.SaleDate != nil {
		info += "   |   Venta: " + doc.SaleDate.Format("02/01/2006")
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(info, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

func table(doc *dto.DocumentResponse) (core.Row, []core.Row) {
	var cols []column
	var cells [][]string
	switch {
	case len(doc.InventoryLines) > 0 || doc.Kind == "inventory":
		cols = []column{{"Artículo", 2, align.Left}, {"Producto", 5, align.Left}, {"Ubicación", 3, align.Left}, {"Cantidad", 2, align.Right}}
		for _, l := range doc.InventoryLines {
			cells = append(cells, []string{l.ArticleNumber, l.ProductName, l.LocationCode, l.Quantity.String()})
		}
	case len(doc.StorageLines) > 0 || doc.Kind == "storage_report":
		cols = []column{{"Ubicación", 3, align.Left}, {"Peso", 2, align.Right}, {"Peso en stock", 3, align.Right}, {"Límite", 2, align.Right}, {"Uso %", 2, align.Right}}
		for _, l := range doc.StorageLines {
			cells = append(cells, []string{l.LocationCode, l.CurrentWeight.String(), l.StockWeight.String(), l.Ceiling.String(), l.Utilization.StringFixed(2)})
		}
	default:
		cols = []column{{"Artículo", 2, align.Left}, {"Producto", 4, align.Left}, {"Lote", 2, align.Left}, {"Ubicación", 2, align.Left}, {"Cantidad", 2, align.Right}}
		for _, l := range doc.Lines {
			cells = append(cells, []string{l.ArticleNumber, l.ProductName, nonEmpty(l.BatchNumber, "-"), nonEmpty(l.LocationCode, "-"), l.Quantity.String()})
		}
	}

	header := row.New(8)
	for _, c := range cols {
		header.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	body := make([]core.Row, 0, len(cells))
	for _, values := range cells {
		r := row.New(7)
		for i, c := range cols {
			r.Add(col.New(c.size).Add(text.New(values[i], props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		body = append(body, r)
	}
	if len(body) == 0 {
		body = append(body, row.New(8).Add(col.New(12).Add(
			text.New("Sin líneas", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	return header, body
}

func footerRow(doc *dto.DocumentResponse) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(doc.Number, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Entregó: ______________________", props.Text{Size: 9, Top: 8, Left: 3}),
			text.New("Recibió: ______________________", props.Text{Size: 9, Top: 18, Left: 3}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
