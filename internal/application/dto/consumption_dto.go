package dto

import "github.com/shopspring/decimal"

// RecordConsumptionRequest entrada para registrar un consumo.
type RecordConsumptionRequest struct {
	Kind       string          `json:"kind" example:"COLORANT"`
	ProductRef string          `json:"product_ref"`
	Date       string          `json:"date" example:"2024-01-15"`
	Qty        decimal.Decimal `json:"qty" swaggertype:"string" example:"12.5"`
}

// UpdateConsumptionRequest nueva fecha y cantidad de un consumo existente.
type UpdateConsumptionRequest struct {
	Date string          `json:"date" example:"2024-01-15"`
	Qty  decimal.Decimal `json:"qty" swaggertype:"string"`
}

// ConsumptionResponse registro de consumo; Name es el nombre resuelto del producto.
type ConsumptionResponse struct {
	ID         int64           `json:"id"`
	Kind       string          `json:"kind"`
	KindLabel  string          `json:"kind_label"`
	ProductRef string          `json:"product_ref"`
	Name       string          `json:"name,omitempty"`
	Date       string          `json:"date"`
	Qty        decimal.Decimal `json:"qty" swaggertype:"string"`
}

// ConsumptionResultResponse resultado de registrar, modificar o eliminar un consumo.
type ConsumptionResultResponse struct {
	Consumption ConsumptionResponse `json:"consumption"`
	Product     *ProductResponse    `json:"product,omitempty"`
	Alert       bool                `json:"alert"`
}

// ConsumptionRankResponse puesto en el ranking de consumo.
type ConsumptionRankResponse struct {
	Rank          int             `json:"rank"`
	Kind          string          `json:"kind"`
	Reference     string          `json:"reference"`
	Name          string          `json:"name"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	Priority      string          `json:"priority"`
	PriorityLabel string          `json:"priority_label"`
}
