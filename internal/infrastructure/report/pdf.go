// Package report implementa los renderers de saldos (PDF y Excel) del puerto inventory.BalanceRenderer.
//
// Layout del PDF (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de saldos  │  Fecha de generación          │
//	│  FILTROS: estados / rango de fechas                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Nodo | Código ítem | Ítem | Und | Cantidad    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: filas del reporte                                    │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
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

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var _ inventory.BalanceRenderer = (*PDFRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFRenderer genera el reporte de saldos con Maroto v2.
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) Extension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (PDFRenderer) Render(rep inventory.BalanceReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de saldos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(filtersRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rep.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de filas: %d", len(rep.Rows)), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep inventory.BalanceReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE SALDOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Organización: "+rep.OrganizationID, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func filtersRow(rep inventory.BalanceReport) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(filterSummary(rep), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2, align.Left),
		h("Nodo", 3, align.Left),
		h("Código", 2, align.Left),
		h("Ítem", 3, align.Left),
		h("Und", 1, align.Center),
		h("Cantidad", 1, align.Right),
	)
}

func tableRows(rows []*entity.BalanceRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			cell(string(r.NodeType), 2, align.Left),
			cell(r.NodeName, 3, align.Left),
			cell(r.ItemCode, 2, align.Left),
			cell(r.ItemName, 3, align.Left),
			cell(nonEmpty(r.UnitCode, "-"), 1, align.Center),
			cell(r.Quantity.StringFixed(3), 1, align.Right),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// filterSummary describe los filtros aplicados en una línea.
func filterSummary(rep inventory.BalanceReport) string {
	statuses := "POSTED"
	if len(rep.Statuses) > 0 {
		statuses = strings.Join(rep.Statuses, ", ")
	}
	from, to := "inicio", "hoy"
	if rep.From != nil {
		from = rep.From.Format("02/01/2006")
	}
	if rep.To != nil {
		to = rep.To.Format("02/01/2006")
	}
	return fmt.Sprintf("Estados: %s   |   Período: %s a %s", statuses, from, to)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
