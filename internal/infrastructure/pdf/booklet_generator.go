// Package pdf implementa la generación del carné de pagos: el PDF imprimible
// del plan de cuotas de una venta, para entregar al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Fecha de venta             │
//	│  CLIENTE: Nombre + total de la venta                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cuota | Vence | Valor | Estado | Firma              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: leyenda de conservación del carné                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/Vitrina-api/internal/application/sales"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ sales.BookletGenerator = (*MarotoBookletGenerator)(nil)

// MarotoBookletGenerator implementa sales.BookletGenerator usando Maroto v2.
type MarotoBookletGenerator struct{}

// NewMarotoBookletGenerator construye el generador.
func NewMarotoBookletGenerator() *MarotoBookletGenerator { return &MarotoBookletGenerator{} }

// Generate genera el PDF del carné y devuelve sus bytes.
func (g *MarotoBookletGenerator) Generate(data sales.BookletData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Carné de Pagos", true).
		WithAuthor(data.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(data.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar carné: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y fecha de la venta (der).
func headerRow(data sales.BookletData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(data.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CARNÉ DE PAGOS", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha de venta", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.SaleDate.Format("02/01/2006"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// customerRow: datos del cliente + total de la venta.
func customerRow(data sales.BookletData) core.Row {
	name := data.CustomerName
	if name == "" {
		name = "—"
	}
	return row.New(12).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(4).Add(
			text.New("Total de la venta", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("$"+formatMoney(data.Total.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de cuotas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cuota", 2, align.Center),
		h("Vence", 3, align.Left),
		h("Valor", 3, align.Right),
		h("Estado", 2, align.Center),
		h("Firma", 2, align.Center),
	)
}

// tableRows: una fila por cuota, con espacio para firmar al recibir el pago.
func tableRows(rows []sales.BookletRow) []core.Row {
	total := len(rows)
	result := make([]core.Row, 0, total)
	for _, r := range rows {
		result = append(result, row.New(10).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d / %d", r.Number, total),
				props.Text{Size: 8, Align: align.Center, Top: 2},
			)),
			col.New(3).Add(text.New(
				r.DueDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 2, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(r.Amount.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 2, Right: 1},
			)),
			col.New(2).Add(text.New(
				r.Status,
				props.Text{Size: 8, Align: align.Center, Top: 2},
			)),
			col.New(2).Add(text.New(
				"__________",
				props.Text{Size: 8, Align: align.Center, Top: 3, Color: colorGray},
			)),
		))
	}
	return result
}

// footerRow: leyenda de conservación.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Conserve este carné y preséntelo al realizar cada pago. "+
				"El vendedor firmará la cuota correspondiente al recibirlo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

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
