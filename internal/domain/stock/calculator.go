// Package stock contiene los cálculos puros de stock: stock real, alerta,
// tasa de pedidos y prioridad por ranking. Sin estado ni dependencias de infraestructura.
package stock

import "github.com/shopspring/decimal"

// RealStock implementa StockReal = StockInicial − ConsumoTotal (servicio de dominio).
func RealStock(initial, consumed decimal.Decimal) decimal.Decimal {
	return initial.Sub(consumed)
}

// IsAlert indica que el stock real está por debajo del mínimo (estrictamente menor).
func IsAlert(real, min decimal.Decimal) bool {
	return real.LessThan(min)
}

// Sufficient indica si se pueden consumir qty unidades con el stock real actual.
func Sufficient(real, qty decimal.Decimal) bool {
	return qty.LessThanOrEqual(real)
}

// Rate devuelve processed/total, 0 cuando total es 0.
func Rate(processed, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(processed)).Div(decimal.NewFromInt(int64(total)))
}
