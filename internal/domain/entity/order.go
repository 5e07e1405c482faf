package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido de reposición.
type OrderStatus string

// Estados de pedido. PROCESSED y CANCELLED son terminales.
const (
	OrderPending   OrderStatus = "PENDING"
	OrderProcessed OrderStatus = "PROCESSED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid indica si el estado es conocido.
func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderProcessed || s == OrderCancelled
}

// Terminal indica que no hay transición definida desde este estado.
func (s OrderStatus) Terminal() bool {
	return s == OrderProcessed || s == OrderCancelled
}

// Label etiqueta usada en la hoja "commandes".
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "En Attente"
	case OrderProcessed:
		return "Traitée"
	case OrderCancelled:
		return "Annulée"
	}
	return string(s)
}

// ParseOrderStatus acepta el código o las etiquetas de la hoja de cálculo.
// Vacío se interpreta como PENDING.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "pending", "en attente", "non traité", "non traitée":
		return OrderPending, true
	case "processed", "traitée", "traité", "traitee", "traite":
		return OrderProcessed, true
	case "cancelled", "canceled", "annulée", "annulee", "annulé":
		return OrderCancelled, true
	}
	return "", false
}

// Order pedido de reposición con fechas de entrada/salida.
// DelayDays = DateOut − DateIn en días; nil mientras DateOut no esté definido.
type Order struct {
	Reference string
	ColorCode string
	DateIn    time.Time
	DateOut   *time.Time
	DelayDays *int
	Status    OrderStatus
	Note      string
}

// RecomputeDelay recalcula DelayDays a partir de las fechas actuales.
func (o *Order) RecomputeDelay() {
	if o.DateOut == nil || o.DateIn.IsZero() {
		o.DelayDays = nil
		return
	}
	d := DaysBetween(o.DateIn, *o.DateOut)
	o.DelayDays = &d
}

// Clone copia profunda (punteros incluidos).
func (o *Order) Clone() *Order {
	c := *o
	if o.DateOut != nil {
		t := *o.DateOut
		c.DateOut = &t
	}
	if o.DelayDays != nil {
		d := *o.DelayDays
		c.DelayDays = &d
	}
	return &c
}

// OrderStatistics agregados derivados del conjunto de pedidos.
type OrderStatistics struct {
	Total     int
	Processed int
	Rate      decimal.Decimal // Processed/Total, 0 si no hay pedidos
}
