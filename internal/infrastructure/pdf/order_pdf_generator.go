// Package pdf genera el documento imprimible de órdenes de venta, trabajo y compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de orden + N°  │  Estado + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE / PROVEEDOR + Notas                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Repuesto | Unit. | Casco | Subtotal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var kindTitles = map[string]string{
	string(entity.OrderKindSales):    "ORDEN DE VENTA",
	string(entity.OrderKindWork):     "ORDEN DE TRABAJO",
	string(entity.OrderKindPurchase): "ORDEN DE COMPRA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.OrderPDFGenerator = (*MarotoOrderPDF)(nil)

// MarotoOrderPDF implementa usecase.OrderPDFGenerator usando Maroto v2.
type MarotoOrderPDF struct {
	shopName string
}

// NewMarotoOrderPDF construye el generador. shopName va en el encabezado y como autor.
func NewMarotoOrderPDF(shopName string) *MarotoOrderPDF {
	return &MarotoOrderPDF{shopName: shopName}
}

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoOrderPDF) GenerateOrderPDF(_ context.Context, doc usecase.OrderDocument) ([]byte, error) {
	o := doc.Order
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(o.Kind)+" "+o.Number, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.shopName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	purchase := o.Kind == string(entity.OrderKindPurchase)
	m.AddRows(tableHeaderRow(purchase))
	for _, r := range tableDetailRows(o.Lines, doc.PartNames, purchase) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o))

	d, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return d.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(shopName string, doc usecase.OrderDocument) core.Row {
	o := doc.Order
	status := o.Status
	if o.DerivedStatus != "" && o.DerivedStatus != o.Status {
		status += " (" + o.DerivedStatus + ")"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title(o.Kind), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+o.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Estado: "+status, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fecha: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func partyRow(o dto.OrderResponse) core.Row {
	label, id := "CLIENTE", o.CustomerID
	if o.Kind == string(entity.OrderKindPurchase) {
		label, id = "PROVEEDOR", o.VendorID
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(id, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Notas: "+nonEmpty(o.Notes, "—"), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow(purchase bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if purchase {
		return row.New(8).Add(
			h("Pedido", 1, align.Center),
			h("Recibido", 1, align.Center),
			h("Repuesto", 5, align.Left),
			h("Costo Unit.", 2, align.Right),
			h("Subtotal", 3, align.Right),
		)
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Repuesto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Casco", 1, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRows(lines []dto.OrderLineResponse, names map[string]string, purchase bool) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		desc := names[l.PartID]
		if l.Description != "" {
			desc += " · " + l.Description
		}
		if l.Warranty {
			desc += " [GARANTÍA]"
		}
		qty := fmt.Sprintf("%d", l.Quantity)
		if purchase {
			result = append(result, row.New(7).Add(
				cell(qty, 1, align.Center),
				cell(fmt.Sprintf("%d", l.ReceivedQuantity), 1, align.Center),
				cell(desc, 5, align.Left),
				cell(formatMoney(l.UnitCost.StringFixed(2)), 2, align.Right),
				cell(formatMoney(l.ExtendedAmount.StringFixed(2)), 3, align.Right),
			))
			continue
		}
		coreText := "—"
		if l.CoreCharge.IsPositive() {
			coreText = formatMoney(l.CoreCharge.StringFixed(2))
			if l.CoreReturned {
				coreText += " dev."
			}
		}
		result = append(result, row.New(7).Add(
			cell(qty, 1, align.Center),
			cell(desc, 5, align.Left),
			cell(formatMoney(l.UnitPrice.StringFixed(2)), 2, align.Right),
			cell(coreText, 1, align.Right),
			cell(formatMoney(l.ExtendedAmount.StringFixed(2)), 3, align.Right),
		))
	}
	return result
}

func totalRow(o dto.OrderResponse) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(o.Total.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func title(kind string) string {
	if t, ok := kindTitles[kind]; ok {
		return t
	}
	return "ORDEN"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney agrega separador de miles a un monto con dos decimales.
// Ej: "25000.50" → "$25,000.50", "-1234.00" → "-$1,234.00"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + frac
}
