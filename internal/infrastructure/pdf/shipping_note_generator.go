// Package pdf genera la nota de entrega (manifiesto de despacho) de un envío.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor                  │  N° Documento + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + estado del envío                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Unidad | Cantidad                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Líneas / Unidades despachadas                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del documento + firma de recibido     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoShippingNoteGenerator implementa usecase.ShippingNoteGenerator usando Maroto v2.
type MarotoShippingNoteGenerator struct {
	issuer string
}

// NewMarotoShippingNoteGenerator construye el generador. issuer es el nombre impreso en el encabezado.
func NewMarotoShippingNoteGenerator(issuer string) *MarotoShippingNoteGenerator {
	return &MarotoShippingNoteGenerator{issuer: nonEmpty(issuer, "Stock Ledger")}
}

// GenerateShippingNote genera el PDF y devuelve sus bytes.
func (g *MarotoShippingNoteGenerator) GenerateShippingNote(
	_ context.Context,
	doc *entity.ShippingDocument,
	lines []usecase.ShippingLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de entrega "+doc.DocNumber, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.issuer, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

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

func headerRow(issuer string, doc *entity.ShippingDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Despacho de producto terminado", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("NOTA DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.DocNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(doc *entity.ShippingDocument) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Estado: "+nonEmpty(doc.Status, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Unidad", 2, align.Center),
		h("Cantidad", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea del envío.
func tableDetailRows(lines []usecase.ShippingLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(l.UnitType, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatQuantity(l.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(lines []usecase.ShippingLineForPDF) core.Row {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Líneas:"),
			text.New("TOTAL DESPACHADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(len(lines)), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(formatQuantity(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// footerRow: QR con el id del documento y espacio para la firma del receptor.
func footerRow(doc *entity.ShippingDocument) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(doc.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Documento "+doc.ID, props.Text{
				Size: 7, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Recibido por: ______________________________", props.Text{
				Size: 9, Top: 20, Left: 3,
			}),
			text.New("Firma y fecha", props.Text{
				Size: 7, Top: 27, Left: 40, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// formatQuantity formatea con puntos de miles y coma decimal. Ej: 1250.5 → "1.250,5"
func formatQuantity(q decimal.Decimal) string {
	s := q.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatMoney(intPart)
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
