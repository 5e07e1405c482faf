// Package pdf genera el reporte de stock imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app + título  │  Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / en alerta / tasa de pedidos            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA por familia: Ref | Nombre | Inicial | Real | Mín | St │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorOK       = &props.Color{Red: 30, Green: 130, Blue: 76}
)

// StockReportInput datos del reporte ya calculados por el motor.
type StockReportInput struct {
	Rows        []inventory.ReportRow
	KPIs        inventory.KPIs
	GeneratedAt time.Time
}

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator genera el reporte de stock con Maroto v2.
type StockReportGenerator struct {
	appName string
	printer *message.Printer
}

// NewStockReportGenerator construye el generador. Los números se formatean con separadores franceses.
func NewStockReportGenerator(appName string) *StockReportGenerator {
	return &StockReportGenerator{appName: appName, printer: message.NewPrinter(language.French)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) Generate(_ context.Context, in StockReportInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport de stock", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(in.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, kind := range entity.Kinds() {
		var rows []inventory.ReportRow
		for _, r := range in.Rows {
			if r.Kind == kind {
				rows = append(rows, r)
			}
		}
		m.AddRows(sectionRow(kind.Label()))
		m.AddRows(tableHeaderRow())
		if len(rows) == 0 {
			m.AddRows(row.New(7).Add(col.New(12).Add(
				text.New("Aucun produit", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
			)))
			continue
		}
		for _, r := range rows {
			m.AddRows(g.detailRow(r))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Stock réel = stock initial − consommation cumulée. "+
			"Un produit est critique lorsque son stock réel est inférieur au stock minimum.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StockReportGenerator) headerRow(at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.appName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Rapport de stock", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Généré le "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *StockReportGenerator) summaryRow(in StockReportInput) core.Row {
	critical := 0
	for _, r := range in.Rows {
		if r.Critical() {
			critical++
		}
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center, Color: c}),
		)
	}
	alertColor := colorOK
	if critical > 0 {
		alertColor = colorCritical
	}
	return row.New(14).Add(
		cell("Produits", g.printer.Sprintf("%d", len(in.Rows)), colorPrimary),
		cell("En alerte", g.printer.Sprintf("%d", critical), alertColor),
		cell("Commandes traitées", g.printer.Sprintf("%d / %d (%s %%)",
			in.KPIs.Processed, in.KPIs.Total, g.number(in.KPIs.RatePercent, 1)), colorPrimary),
	)
}

func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Référence", 2, align.Left),
		h("Nom", 4, align.Left),
		h("Initial", 1, align.Right),
		h("Réel", 2, align.Right),
		h("Minimum", 1, align.Right),
		h("Statut", 2, align.Center),
	)
}

func (g *StockReportGenerator) detailRow(r inventory.ReportRow) core.Row {
	statusColor, label := colorOK, "OK"
	if r.Critical() {
		statusColor, label = colorCritical, "CRITIQUE"
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(r.Reference, 2, align.Left),
		cell(r.Name, 4, align.Left),
		cell(g.number(r.StockInitial, 2), 1, align.Right),
		col.New(2).Add(text.New(g.number(r.StockReal, 2)+" kg", props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: statusColor,
		})),
		cell(g.number(r.StockMin, 2), 1, align.Right),
		col.New(2).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// number formatea con separador de miles y coma decimal: 1234.5 → "1 234,50".
func (g *StockReportGenerator) number(d decimal.Decimal, places int32) string {
	return g.printer.Sprint(number.Decimal(d.Round(places).InexactFloat64(), number.Scale(int(places))))
}
