package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionRecord consumo diario de un producto.
// ID es asignado por el ledger de forma creciente y no depende de la fila donde se almacena.
type ConsumptionRecord struct {
	ID         int64
	Kind       ProductKind
	ProductRef string
	Date       time.Time // fecha calendario, sin hora
	Qty        decimal.Decimal
}

// ProductKey producto al que pertenece el consumo.
func (r *ConsumptionRecord) ProductKey() ProductKey {
	return ProductKey{Kind: r.Kind, Reference: r.ProductRef}
}
