// Package spreadsheet exporta el inventario como libro SpreadsheetML 2003 (XML),
// que Excel y LibreOffice abren sin librerías binarias.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"

	styleHeader   = "header"
	styleCritical = "critical"
)

// Nombres de hoja del libro completo.
const (
	SheetColorants   = "colorants"
	SheetAuxiliaries = "produits auxiliaires"
	SheetConsumption = "consommation"
	SheetOrders      = "commandes"
	SheetReport      = "rapport"
)

// Workbook documento SpreadsheetML en construcción.
type Workbook struct {
	doc  *etree.Document
	root *etree.Element
}

// NewWorkbook crea el documento con la declaración XML y los estilos.
func NewWorkbook() *Workbook {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	root := doc.CreateElement("Workbook")
	root.CreateAttr("xmlns", nsSpreadsheet)
	root.CreateAttr("xmlns:o", nsOffice)
	root.CreateAttr("xmlns:x", nsExcel)
	root.CreateAttr("xmlns:ss", nsSpreadsheet)

	styles := root.CreateElement("Styles")
	header := styles.CreateElement("Style")
	header.CreateAttr("ss:ID", styleHeader)
	header.CreateElement("Font").CreateAttr("ss:Bold", "1")
	critical := styles.CreateElement("Style")
	critical.CreateAttr("ss:ID", styleCritical)
	font := critical.CreateElement("Font")
	font.CreateAttr("ss:Color", "#BE1E2D")
	font.CreateAttr("ss:Bold", "1")

	return &Workbook{doc: doc, root: root}
}

// sheet agrega una hoja con su fila de encabezados.
func (w *Workbook) sheet(name string, headers ...string) *etree.Element {
	ws := w.root.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", name)
	table := ws.CreateElement("Table")
	r := table.CreateElement("Row")
	for _, h := range headers {
		stringCell(r, h).CreateAttr("ss:StyleID", styleHeader)
	}
	return table
}

// WriteTo serializa el libro con sangría.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	w.doc.Indent(2)
	n, err := w.doc.WriteTo(out)
	if err != nil {
		return n, fmt.Errorf("spreadsheet: escribir libro: %w", err)
	}
	return n, nil
}

// Bytes serializa el libro en memoria.
func (w *Workbook) Bytes() ([]byte, error) {
	w.doc.Indent(2)
	b, err := w.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: escribir libro: %w", err)
	}
	return b, nil
}

// StockReport libro de una hoja con el reporte de stock; filas críticas resaltadas.
func StockReport(rows []inventory.ReportRow) *Workbook {
	w := NewWorkbook()
	table := w.sheet(SheetReport, "Type", "Référence", "Nom", "Stock Initial", "Stock Réel", "Stock Min", "Statut")
	for _, r := range rows {
		row := table.CreateElement("Row")
		if r.Critical() {
			row.CreateAttr("ss:StyleID", styleCritical)
		}
		stringCell(row, r.Kind.Label())
		stringCell(row, r.Reference)
		stringCell(row, r.Name)
		numberCell(row, r.StockInitial)
		numberCell(row, r.StockReal)
		numberCell(row, r.StockMin)
		status := "OK"
		if r.Critical() {
			status = "CRITIQUE"
		}
		stringCell(row, status)
	}
	return w
}

// FullWorkbook libro con las cuatro hojas del inventario en el orden de columnas canónico.
// Las columnas derivadas se escriben ya calculadas.
func FullWorkbook(snap *entity.Snapshot) *Workbook {
	w := NewWorkbook()

	consumed := make(map[entity.ProductKey]decimal.Decimal)
	for _, c := range snap.Consumption {
		consumed[c.ProductKey()] = consumed[c.ProductKey()].Add(c.Qty)
	}
	productHeaders := []string{"Référence", "Nom", "Stock Initial", "Stock Min", "Consommation", "Stock Réel", "Date d'entrée", "Alerte"}
	sheets := map[entity.ProductKind]*etree.Element{
		entity.KindColorant:  w.sheet(SheetColorants, productHeaders...),
		entity.KindAuxiliary: w.sheet(SheetAuxiliaries, productHeaders...),
	}
	for _, p := range snap.Products {
		table, ok := sheets[p.Kind]
		if !ok {
			continue
		}
		alert := stock.IsAlert(p.StockReal, p.StockMin)
		row := table.CreateElement("Row")
		if alert {
			row.CreateAttr("ss:StyleID", styleCritical)
		}
		stringCell(row, p.Reference)
		stringCell(row, p.Name)
		numberCell(row, p.StockInitial)
		numberCell(row, p.StockMin)
		numberCell(row, consumed[p.Key()])
		numberCell(row, p.StockReal)
		stringCell(row, entity.FormatDate(p.DateEntered))
		stringCell(row, strconv.FormatBool(alert))
	}

	table := w.sheet(SheetConsumption, "Référence", "Date", "Quantité/jour", "Quantité/semaine", "Type", "ID")
	for _, c := range snap.Consumption {
		row := table.CreateElement("Row")
		stringCell(row, c.ProductRef)
		stringCell(row, entity.FormatDate(c.Date))
		numberCell(row, c.Qty)
		stringCell(row, "")
		stringCell(row, c.Kind.Label())
		stringCell(row, strconv.FormatInt(c.ID, 10))
	}

	table = w.sheet(SheetOrders, "Référence", "Code couleur", "Date d'entrée", "Date de sortie", "Délai (jours)", "Délai de traitement", "Statut", "Remarque")
	for _, o := range snap.Orders {
		row := table.CreateElement("Row")
		stringCell(row, o.Reference)
		stringCell(row, o.ColorCode)
		stringCell(row, entity.FormatDate(o.DateIn))
		if o.DateOut != nil {
			stringCell(row, entity.FormatDate(*o.DateOut))
		} else {
			stringCell(row, "")
		}
		if o.DelayDays != nil {
			intCell(row, *o.DelayDays)
		} else {
			stringCell(row, "")
		}
		stringCell(row, "")
		stringCell(row, o.Status.Label())
		stringCell(row, o.Note)
	}
	return w
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stringCell(row *etree.Element, v string) *etree.Element {
	cell := row.CreateElement("Cell")
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", "String")
	data.SetText(v)
	return cell
}

func numberCell(row *etree.Element, v decimal.Decimal) *etree.Element {
	cell := row.CreateElement("Cell")
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", "Number")
	data.SetText(v.String())
	return cell
}

func intCell(row *etree.Element, v int) *etree.Element {
	cell := row.CreateElement("Cell")
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", "Number")
	data.SetText(strconv.Itoa(v))
	return cell
}
