package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductKind familia de producto: colorante o producto auxiliar.
type ProductKind string

// Familias de producto.
const (
	KindColorant  ProductKind = "COLORANT"
	KindAuxiliary ProductKind = "AUXILIARY"
)

// Kinds devuelve las familias en el orden en que se listan en reportes y alertas.
func Kinds() []ProductKind {
	return []ProductKind{KindColorant, KindAuxiliary}
}

// Valid indica si la familia es conocida.
func (k ProductKind) Valid() bool {
	return k == KindColorant || k == KindAuxiliary
}

// Label etiqueta de la familia tal como aparece en la hoja de cálculo.
func (k ProductKind) Label() string {
	switch k {
	case KindColorant:
		return "Colorant"
	case KindAuxiliary:
		return "Produit auxiliaire"
	}
	return string(k)
}

// ParseProductKind acepta el código (COLORANT/AUXILIARY), la etiqueta o alias cortos.
func ParseProductKind(s string) (ProductKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "colorant", "colorants", "colorante":
		return KindColorant, true
	case "auxiliary", "aux", "produit auxiliaire", "produits auxiliaires", "auxiliar":
		return KindAuxiliary, true
	}
	return "", false
}

// Product materia prima del inventario (colorante o auxiliar).
// StockReal es derivado: StockInitial menos la suma de consumos registrados.
type Product struct {
	Kind         ProductKind
	Reference    string // única dentro de su familia
	Name         string
	StockInitial decimal.Decimal // kg
	StockMin     decimal.Decimal // umbral de alerta
	StockReal    decimal.Decimal // derivado, nunca se confía en el valor almacenado
	DateEntered  time.Time       // opcional
}

// Key identidad del producto en el catálogo.
func (p *Product) Key() ProductKey {
	return ProductKey{Kind: p.Kind, Reference: p.Reference}
}

// ProductKey identifica un producto por familia y referencia.
type ProductKey struct {
	Kind      ProductKind
	Reference string
}
