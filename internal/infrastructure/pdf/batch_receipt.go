// Package pdf genera el comprobante imprimible de un lote de ubicación (putaway).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante + N° lote  │  Estado + Fecha            │
//	│  UBICACIÓN: etiqueta + código de barras (Code128)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Cant. | Estado                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL unidades  │  QR con el ID del lote                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

var _ usecase.BatchReceiptGenerator = (*BatchReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorUndone  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// BatchReceiptGenerator implementa usecase.BatchReceiptGenerator con Maroto v2.
type BatchReceiptGenerator struct {
	author string
}

// NewBatchReceiptGenerator construye el generador; author aparece en los metadatos del PDF.
func NewBatchReceiptGenerator(author string) *BatchReceiptGenerator {
	return &BatchReceiptGenerator{author: author}
}

// GenerateBatchReceipt genera el PDF y devuelve sus bytes.
func (g *BatchReceiptGenerator) GenerateBatchReceipt(_ context.Context, r usecase.BatchReceipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de ubicación "+r.BatchID, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationRow(r.Location))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, lr := range tableRows(r.Lines) {
		m.AddRows(lr)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r usecase.BatchReceipt) core.Row {
	statusColor := colorPrimary
	if r.Status == "UNDONE" {
		statusColor = colorUndone
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE UBICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lote: "+r.BatchID, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(r.Status, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: statusColor, Top: 1,
			}),
			text.New("Fecha: "+r.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Operador: "+nonEmpty(r.CreatedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// locationRow etiqueta destino en texto y como Code128 para escanear en el pasillo.
func locationRow(label string) core.Row {
	return row.New(24).Add(
		col.New(5).Add(
			text.New("UBICACIÓN DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 16, Top: 8}),
		),
		col.New(7).Add(code.NewBar(label, props.Barcode{Percent: 80, Center: true})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Descripción", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

func tableRows(lines []usecase.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(nonEmpty(l.ItemName, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatThousands(l.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(l.Status, props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray})),
		))
	}
	return result
}

// footerRow total de unidades vigentes y QR con el ID del lote para reimprimir o revertir.
func footerRow(r usecase.BatchReceipt) core.Row {
	total := 0
	for _, l := range r.Lines {
		if l.Status != "UNDONE" {
			total += l.Quantity
		}
	}
	return row.New(40).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Líneas: %d", len(r.Lines)), props.Text{Size: 9, Top: 4}),
			text.New("Total unidades: "+formatThousands(total), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 11, Color: colorPrimary,
			}),
		),
		col.New(4).Add(code.NewQr(r.BatchID, props.Rect{Percent: 90, Center: true})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		buf := make([]byte, 0, len(s)+len(s)/3)
		for i, c := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
