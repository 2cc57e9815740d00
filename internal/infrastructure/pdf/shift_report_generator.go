// Package pdf genera el reporte de cierre de turno (reporte Z) en A4.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la óptica    │  REPORTE Z + N° turno      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TURNO: Operador / Inicio / Fin / Estado                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medio de pago | Total                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJA: Apertura / Ingresos / Gastos / Esperado / Declarado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del turno + notas de cierre            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var methodLabels = map[string]string{
	"CASH":          "Efectivo",
	"CARD":          "Tarjeta",
	"BANK_TRANSFER": "Transferencia",
	"CHEQUE":        "Cheque",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ShiftReportGenerator = (*ShiftReportGenerator)(nil)

// ShiftReportGenerator implementa ports.ShiftReportGenerator usando Maroto v2.
type ShiftReportGenerator struct {
	storeName string
}

// NewShiftReportGenerator construye el generador; storeName encabeza el reporte.
func NewShiftReportGenerator(storeName string) *ShiftReportGenerator {
	return &ShiftReportGenerator{storeName: storeName}
}

// GenerateShiftReport genera el PDF y devuelve sus bytes.
func (g *ShiftReportGenerator) GenerateShiftReport(_ context.Context, s *dto.ShiftSummaryResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte Z "+s.Shift.ID, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shiftRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range methodRows(s.PaymentsByMethod) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(cashRow(s))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte z: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ShiftReportGenerator) headerRow(s *dto.ShiftSummaryResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.storeName, "Óptica"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE Z / CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(s.Shift.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+s.Shift.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func shiftRow(s *dto.ShiftSummaryResponse) core.Row {
	end := "turno abierto"
	if s.Shift.EndTime != nil {
		end = s.Shift.EndTime.Format("02/01/2006 15:04")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TURNO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Operador: %s   |   Inicio: %s   |   Fin: %s   |   Órdenes: %d",
				s.OperatorName,
				s.Shift.StartTime.Format("02/01/2006 15:04"),
				end,
				s.OrderCount,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medio de pago", 8, align.Left),
		h("Total recaudado", 4, align.Right),
	)
}

func methodRows(totals []dto.MethodTotal) []core.Row {
	result := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		result = append(result, row.New(7).Add(
			col.New(8).Add(text.New(nonEmpty(methodLabels[t.Method], t.Method),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(money(t.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// cashRow bloque de conciliación de efectivo.
func cashRow(s *dto.ShiftSummaryResponse) core.Row {
	type entry struct {
		label, value string
		style        fontstyle.Type
		color        *props.Color
	}
	entries := []entry{
		{label: "Fondo de apertura:", value: money(s.Shift.OpeningFloat)},
		{label: "Ingresos en efectivo:", value: money(s.CashIn)},
		{label: "Gastos en efectivo:", value: "-" + money(s.CashExpenses)},
		{label: "EFECTIVO ESPERADO:", value: money(s.ExpectedCash), style: fontstyle.Bold, color: colorPrimary},
	}
	if s.Shift.ClosingFloat != nil && s.Discrepancy != nil {
		diffColor := colorPrimary
		if !s.Discrepancy.IsZero() {
			diffColor = colorAlert
		}
		entries = append(entries,
			entry{label: "Efectivo declarado:", value: money(*s.Shift.ClosingFloat)},
			entry{label: "Diferencia:", value: money(*s.Discrepancy), style: fontstyle.Bold, color: diffColor},
		)
	}

	labels := make([]core.Component, 0, len(entries))
	values := make([]core.Component, 0, len(entries))
	for i, e := range entries {
		top := float64(i * 7)
		labels = append(labels, text.New(e.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = append(values, text.New(e.value, props.Text{
			Style: e.style, Size: 9, Align: align.Right, Color: e.color, Right: 1, Top: top,
		}))
	}
	return row.New(float64(7 * len(entries))).Add(
		col.New(3),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
		col.New(2),
	)
}

func footerRow(s *dto.ShiftSummaryResponse) core.Row {
	notes := "Sin observaciones."
	if strings.TrimSpace(s.Shift.Notes) != "" {
		notes = s.Shift.Notes
	}
	if s.Shift.Forced {
		notes = "CIERRE FORZADO. " + notes
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(s.Shift.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Observaciones de cierre", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3, Color: colorPrimary}),
			text.New(notes, props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			text.New("Firma del operador: ______________________", props.Text{Size: 8, Top: 30, Left: 3}),
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

func shortID(id string) string {
	if len(id) > 8 {
		return "N° " + strings.ToUpper(id[:8])
	}
	return "N° " + id
}

// money formatea con separador de miles y dos decimales: 1234567.5 -> "$1.234.567,50".
func money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + formatThousands(intPart) + "," + frac
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
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
