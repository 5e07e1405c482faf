// Package legacy lee las hojas del libro de inventario exportadas como CSV
// (colorants, produits auxiliaires, consommation, commandes) y arma un Snapshot.
package legacy

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/colorstock/internal/domain/entity"
)

// Encoding de los archivos de entrada.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "iso-8859-1"
)

// ParseEncoding acepta utf-8/utf8 y iso-8859-1/latin1.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "iso-8859-1", "latin1", "latin-1":
		return Latin1, nil
	}
	return "", fmt.Errorf("codificación %q no soportada (utf-8 | iso-8859-1)", s)
}

// Files rutas de las hojas exportadas. Una ruta vacía omite la hoja.
type Files struct {
	Colorants   string
	Auxiliaries string
	Consumption string
	Orders      string
}

// Reader configuración de lectura.
type Reader struct {
	Encoding Encoding
	Comma    rune // separador; 0 = ','
}

// dateLayouts formatos aceptados en las celdas de fecha.
var dateLayouts = []string{
	entity.DateLayout,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
}

// ReadFiles lee todas las hojas indicadas. El primer renglón de cada archivo es encabezado.
func (r Reader) ReadFiles(files Files) (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	for _, sheet := range []struct {
		path string
		kind entity.ProductKind
	}{
		{files.Colorants, entity.KindColorant},
		{files.Auxiliaries, entity.KindAuxiliary},
	} {
		if sheet.path == "" {
			continue
		}
		err := r.withFile(sheet.path, func(in io.Reader) error {
			products, err := r.ReadProducts(in, sheet.kind)
			snap.Products = append(snap.Products, products...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	if files.Consumption != "" {
		err := r.withFile(files.Consumption, func(in io.Reader) error {
			var err error
			snap.Consumption, err = r.ReadConsumption(in, snap.Products)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	if files.Orders != "" {
		err := r.withFile(files.Orders, func(in io.Reader) error {
			var err error
			snap.Orders, err = r.ReadOrders(in)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return snap, nil
}

func (r Reader) withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadProducts columnas: reference, name, stock_initial, stock_min,
// consumption, stock_real, date_entered, alert_flag. Solo las cuatro primeras son obligatorias;
// los derivados se ignoran.
func (r Reader) ReadProducts(in io.Reader, kind entity.ProductKind) ([]*entity.Product, error) {
	rows, err := r.rows(in)
	if err != nil {
		return nil, err
	}
	var out []*entity.Product
	for _, row := range rows {
		if len(row.cells) < 4 {
			return nil, row.errorf("se esperaban al menos 4 columnas, hay %d", len(row.cells))
		}
		p := &entity.Product{
			Kind:      kind,
			Reference: row.cell(0),
			Name:      row.cell(1),
		}
		if p.StockInitial, err = parseNumber(row.cell(2)); err != nil {
			return nil, row.errorf("stock inicial: %v", err)
		}
		if p.StockMin, err = parseNumber(row.cell(3)); err != nil {
			return nil, row.errorf("stock mínimo: %v", err)
		}
		if raw := row.cell(6); raw != "" {
			if p.DateEntered, err = parseDate(raw); err != nil {
				return nil, row.errorf("fecha de entrada: %v", err)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// ReadConsumption columnas: product_ref, date, qty_day, qty_week, kind, id.
// Sin columna kind, la familia se resuelve por referencia (colorante primero).
func (r Reader) ReadConsumption(in io.Reader, products []*entity.Product) ([]*entity.ConsumptionRecord, error) {
	rows, err := r.rows(in)
	if err != nil {
		return nil, err
	}
	known := make(map[entity.ProductKey]bool, len(products))
	for _, p := range products {
		known[p.Key()] = true
	}
	var out []*entity.ConsumptionRecord
	for _, row := range rows {
		if len(row.cells) < 3 {
			return nil, row.errorf("se esperaban al menos 3 columnas, hay %d", len(row.cells))
		}
		rec := &entity.ConsumptionRecord{ProductRef: row.cell(0)}
		if rec.Date, err = parseDate(row.cell(1)); err != nil {
			return nil, row.errorf("fecha: %v", err)
		}
		if rec.Qty, err = parseNumber(row.cell(2)); err != nil {
			return nil, row.errorf("cantidad: %v", err)
		}
		if raw := row.cell(4); raw != "" {
			kind, ok := entity.ParseProductKind(raw)
			if !ok {
				return nil, row.errorf("familia %q desconocida", raw)
			}
			rec.Kind = kind
		} else {
			rec.Kind = resolveKind(known, rec.ProductRef)
		}
		if raw := row.cell(5); raw != "" {
			if _, err := fmt.Sscan(raw, &rec.ID); err != nil {
				return nil, row.errorf("id %q inválido", raw)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadOrders columnas: reference, color_code, date_in, date_out, delay_days,
// processing_delay, status, note. delay_days y processing_delay se ignoran.
func (r Reader) ReadOrders(in io.Reader) ([]*entity.Order, error) {
	rows, err := r.rows(in)
	if err != nil {
		return nil, err
	}
	var out []*entity.Order
	for _, row := range rows {
		if len(row.cells) < 3 {
			return nil, row.errorf("se esperaban al menos 3 columnas, hay %d", len(row.cells))
		}
		o := &entity.Order{Reference: row.cell(0), ColorCode: row.cell(1), Note: row.cell(7)}
		if o.DateIn, err = parseDate(row.cell(2)); err != nil {
			return nil, row.errorf("fecha de entrada: %v", err)
		}
		if raw := row.cell(3); raw != "" {
			d, err := parseDate(raw)
			if err != nil {
				return nil, row.errorf("fecha de salida: %v", err)
			}
			o.DateOut = &d
		}
		status, ok := entity.ParseOrderStatus(row.cell(6))
		if !ok {
			return nil, row.errorf("estado %q desconocido", row.cell(6))
		}
		o.Status = status
		out = append(out, o)
	}
	return out, nil
}

type row struct {
	line  int
	cells []string
}

func (r row) cell(i int) string {
	if i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) errorf(format string, args ...any) error {
	return fmt.Errorf("línea %d: %s", r.line, fmt.Sprintf(format, args...))
}

// rows decodifica, salta el encabezado y descarta filas vacías.
func (r Reader) rows(in io.Reader) ([]row, error) {
	if r.Encoding == Latin1 {
		in = charmap.ISO8859_1.NewDecoder().Reader(in)
	}
	br := bufio.NewReader(in)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("archivo vacío: falta el encabezado")
	}
	var out []row
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		out = append(out, row{line: i + 2, cells: rec})
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber acepta coma decimal ("12,5"); vacío = 0.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q no reconocida", s)
}

func resolveKind(known map[entity.ProductKey]bool, ref string) entity.ProductKind {
	if !known[entity.ProductKey{Kind: entity.KindColorant, Reference: ref}] &&
		known[entity.ProductKey{Kind: entity.KindAuxiliary, Reference: ref}] {
		return entity.KindAuxiliary
	}
	return entity.KindColorant
}
