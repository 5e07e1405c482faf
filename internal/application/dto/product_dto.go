package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para dar de alta un colorante o producto auxiliar.
// La familia viene en la ruta (/api/products/:kind).
type CreateProductRequest struct {
	Reference    string          `json:"reference" validate:"required,max=64"`
	Name         string          `json:"name" validate:"required,max=200"`
	StockInitial decimal.Decimal `json:"stock_initial" swaggertype:"string" example:"100.00"`
	StockMin     decimal.Decimal `json:"stock_min" swaggertype:"string" example:"20.00"`
}

// StockValueRequest nuevo valor de stock inicial o mínimo.
type StockValueRequest struct {
	Value decimal.Decimal `json:"value" swaggertype:"string" example:"150.00"`
}

// ProductResponse salida de un producto con sus valores derivados.
type ProductResponse struct {
	Kind         string          `json:"kind"`
	KindLabel    string          `json:"kind_label"`
	Reference    string          `json:"reference"`
	Name         string          `json:"name"`
	StockInitial decimal.Decimal `json:"stock_initial" swaggertype:"string"`
	StockMin     decimal.Decimal `json:"stock_min" swaggertype:"string"`
	StockReal    decimal.Decimal `json:"stock_real" swaggertype:"string"`
	DateEntered  string          `json:"date_entered,omitempty"`
	Alert        bool            `json:"alert"`
}

// AlertResponse producto bajo su stock mínimo.
type AlertResponse struct {
	Kind      string          `json:"kind"`
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	Current   decimal.Decimal `json:"current" swaggertype:"string"`
	Min       decimal.Decimal `json:"min" swaggertype:"string"`
}

// ReportRowResponse fila del reporte de stock.
type ReportRowResponse struct {
	Kind         string          `json:"kind"`
	Reference    string          `json:"reference"`
	Name         string          `json:"name"`
	StockInitial decimal.Decimal `json:"stock_initial" swaggertype:"string"`
	StockReal    decimal.Decimal `json:"stock_real" swaggertype:"string"`
	StockMin     decimal.Decimal `json:"stock_min" swaggertype:"string"`
	Status       string          `json:"status"` // OK | CRITICAL
}
