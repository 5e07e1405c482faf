package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

// Alert producto cuyo stock real está por debajo del mínimo.
type Alert struct {
	Kind      entity.ProductKind
	Reference string
	Name      string
	Current   decimal.Decimal
	Min       decimal.Decimal
}

// Evaluate devuelve la alerta del producto: StockReal < StockMin.
func Evaluate(p entity.Product) bool {
	return stock.IsAlert(p.StockReal, p.StockMin)
}

// ActiveAlerts recorre ambas familias (colorantes primero) y devuelve las alertas activas.
// Una lista vacía significa "sin alertas".
func ActiveAlerts(catalog *ProductCatalog) []Alert {
	alerts := []Alert{}
	catalog.each(func(p *entity.Product) {
		if !Evaluate(*p) {
			return
		}
		alerts = append(alerts, Alert{
			Kind:      p.Kind,
			Reference: p.Reference,
			Name:      p.Name,
			Current:   p.StockReal,
			Min:       p.StockMin,
		})
	})
	return alerts
}
