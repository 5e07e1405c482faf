package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest entrada para crear un pedido. Status vacío = PENDING.
type CreateOrderRequest struct {
	Reference string `json:"reference"`
	ColorCode string `json:"color_code"`
	DateIn    string `json:"date_in" example:"2024-01-01"`
	Status    string `json:"status,omitempty" example:"PENDING"`
	Note      string `json:"note"`
}

// UpdateOrderRequest campos opcionales; date_out "" borra la fecha de salida.
type UpdateOrderRequest struct {
	ColorCode *string `json:"color_code"`
	DateIn    *string `json:"date_in"`
	DateOut   *string `json:"date_out"`
	Status    *string `json:"status"`
	Note      *string `json:"note"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	Reference   string  `json:"reference"`
	ColorCode   string  `json:"color_code"`
	DateIn      string  `json:"date_in"`
	DateOut     *string `json:"date_out"`
	DelayDays   *int    `json:"delay_days"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	Note        string  `json:"note"`
}

// OrderTransitionResponse resultado de procesar o anular; already=true si no hubo cambio.
type OrderTransitionResponse struct {
	Order   OrderResponse `json:"order"`
	Already bool          `json:"already"`
}

// OrderStatisticsResponse estadísticas de pedidos.
type OrderStatisticsResponse struct {
	Total     int             `json:"total"`
	Processed int             `json:"processed"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string"`
}

// KPIResponse indicadores del tablero.
type KPIResponse struct {
	Total       int             `json:"total"`
	Processed   int             `json:"processed"`
	Rate        decimal.Decimal `json:"rate" swaggertype:"string"`
	RatePercent decimal.Decimal `json:"rate_percent" swaggertype:"string"`
}
