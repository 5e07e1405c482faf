package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain/entity"
)

// Estados del reporte de stock.
const (
	ReportStatusOK       = "OK"
	ReportStatusCritical = "CRITICAL"
)

// ReportRow fila del reporte de stock, consumida por los exportadores (PDF, hoja de cálculo).
type ReportRow struct {
	Reference    string
	Name         string
	StockInitial decimal.Decimal
	StockReal    decimal.Decimal
	StockMin     decimal.Decimal
	Status       string // OK | CRITICAL
	Kind         entity.ProductKind
}

// Critical indica si la fila está en alerta.
func (r ReportRow) Critical() bool { return r.Status == ReportStatusCritical }

// BuildReport una fila por producto de ambas familias (colorantes primero).
func BuildReport(catalog *ProductCatalog) []ReportRow {
	rows := make([]ReportRow, 0, catalog.Len())
	catalog.each(func(p *entity.Product) {
		status := ReportStatusOK
		if Evaluate(*p) {
			status = ReportStatusCritical
		}
		rows = append(rows, ReportRow{
			Reference:    p.Reference,
			Name:         p.Name,
			StockInitial: p.StockInitial,
			StockReal:    p.StockReal,
			StockMin:     p.StockMin,
			Status:       status,
			Kind:         p.Kind,
		})
	})
	return rows
}
