// Package pdf genera los reportes imprimibles del ledger (cuenta comercial y arqueo) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte       │  Período + fecha emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUERPO: tabla de conceptos o de productos                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES alineados a la derecha                              │
//	│  FOOTER: leyenda de valoración                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	businessName string
	now          func() time.Time
}

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador. businessName se imprime como autor.
func NewMarotoReportGenerator(businessName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{businessName: businessName, now: time.Now}
}

// TradeAccountPDF cuenta comercial: ventas, stock inicial, compras, stock final, costo de ventas y resultado.
func (g *MarotoReportGenerator) TradeAccountPDF(_ context.Context, r *dto.TradeAccountDTO) ([]byte, error) {
	m := maroto.New(g.config("Cuenta comercial"))

	m.AddRows(g.headerRow("CUENTA COMERCIAL", r.Start, r.End))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(4))

	m.AddRows(conceptRow("Ventas del período", r.Sales, false))
	m.AddRows(conceptRow("Stock inicial (antes del inicio)", r.OpeningStock, false))
	m.AddRows(conceptRow("(+) Compras del período", r.NewStock, false))
	m.AddRows(conceptRow("(−) Stock final (al cierre)", r.ClosingStock, false))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(conceptRow("Costo de ventas", r.CostOfSales, true))

	label := "GANANCIA BRUTA"
	if r.GrossProfitOrLoss.IsNegative() {
		label = "PÉRDIDA BRUTA"
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(grandTotalRow(label, r.GrossProfitOrLoss))
	m.AddRows(footerRow())

	return generate(m)
}

// CashUpPDF arqueo por producto con totales por columna.
func (g *MarotoReportGenerator) CashUpPDF(_ context.Context, r *dto.CashUpDTO) ([]byte, error) {
	m := maroto.New(g.config("Arqueo"))

	m.AddRows(g.headerRow("ARQUEO DE CAJA", r.Start, r.End))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cashUpHeaderRow())
	for _, l := range r.Lines {
		m.AddRows(cashUpDetailRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(cashUpTotalsRow(r))
	m.AddRows(grandTotalRow("SALDO DE CAJA", r.CashBalance))
	m.AddRows(footerRow())

	return generate(m)
}

func (g *MarotoReportGenerator) config(title string) *entity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.businessName, "Stock Ledger"), true).
		Build()
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + fecha de emisión (der).
func (g *MarotoReportGenerator) headerRow(title string, start, end time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.businessName, "Stock Ledger"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s – %s", start.Format("02/01/2006"), end.Format("02/01/2006")), props.Text{
				Size: 8, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// conceptRow: concepto a la izquierda, monto a la derecha.
func conceptRow(label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Style: style, Top: 1, Left: 2})),
		col.New(4).Add(text.New(formatMoney(amount), props.Text{
			Size: 9, Style: style, Align: align.Right, Top: 1, Right: 1, Color: amountColor(amount),
		})),
	)
}

// grandTotalRow: total destacado.
func grandTotalRow(label string, amount decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(formatMoney(amount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: amountColor(amount), Top: 2, Right: 1,
		})),
	)
}

// cashUpHeaderRow: cabecera de la tabla del arqueo.
func cashUpHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Ventas", 2, align.Right),
		h("P. compra", 1, align.Right),
		h("P. venta", 1, align.Right),
		h("Cant. est.", 1, align.Right),
		h("Caja", 2, align.Right),
		h("Utilidad", 2, align.Right),
	)
}

// cashUpDetailRow: una fila por producto vendido.
func cashUpDetailRow(l dto.CashUpLineDTO) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(nonEmpty(l.Name, l.ProductID), 3, align.Left),
		cell(formatMoney(l.SalesAmount), 2, align.Right),
		cell(formatMoney(l.BuyPrice), 1, align.Right),
		cell(formatMoney(l.SellPrice), 1, align.Right),
		cell(l.EstimatedQty.StringFixed(2), 1, align.Right),
		cell(formatMoney(l.Cash), 2, align.Right),
		cell(formatMoney(l.Profit), 2, align.Right),
	)
}

// cashUpTotalsRow: totales por columna.
func cashUpTotalsRow(r *dto.CashUpDTO) core.Row {
	bold := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		bold("Totales", 3, align.Left),
		bold(formatMoney(r.TotalSales), 2, align.Right),
		col.New(3),
		bold(formatMoney(r.TotalCash), 2, align.Right),
		bold(formatMoney(r.TotalProfit), 2, align.Right),
	)
}

// footerRow: leyenda sobre la base de valoración.
func footerRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(
			"Valores calculados a precio de compra actual. Las cantidades por producto se toman del "+
				"registro de movimientos; los saldos negativos se valoran en cero.",
			props.Text{Size: 6.5, Color: colorGray, Top: 5},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func amountColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorLoss
	}
	return nil
}

// formatMoney "$" + miles con punto + dos decimales con coma. Ej: -1234567.5 → "-$1.234.567,50".
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin signo.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
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
