package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

// consumptionTotals fuente de los totales consumidos por producto (el ledger).
type consumptionTotals interface {
	TotalConsumed(kind entity.ProductKind, reference string) decimal.Decimal
}

// ProductCatalog es dueño de las definiciones de producto de ambas familias.
// Mantiene el orden de inserción por familia para los listados.
type ProductCatalog struct {
	items map[entity.ProductKey]*entity.Product
	order map[entity.ProductKind][]string
}

// NewProductCatalog construye un catálogo vacío.
func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{
		items: make(map[entity.ProductKey]*entity.Product),
		order: make(map[entity.ProductKind][]string),
	}
}

// AddProduct valida e inserta un producto nuevo. StockReal = StockInitial (sin consumos aún).
func (c *ProductCatalog) AddProduct(kind entity.ProductKind, reference, name string, stockInitial, stockMin decimal.Decimal, today time.Time) (*entity.Product, error) {
	reference = strings.TrimSpace(reference)
	name = strings.TrimSpace(name)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: familia %q desconocida", domain.ErrValidation, kind)
	}
	if reference == "" || name == "" {
		return nil, fmt.Errorf("%w: referencia y nombre son obligatorios", domain.ErrValidation)
	}
	if stockInitial.IsNegative() || stockMin.IsNegative() {
		return nil, fmt.Errorf("%w: los valores de stock deben ser ≥ 0", domain.ErrValidation)
	}
	key := entity.ProductKey{Kind: kind, Reference: reference}
	if _, ok := c.items[key]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateReference, reference)
	}
	p := &entity.Product{
		Kind:         kind,
		Reference:    reference,
		Name:         name,
		StockInitial: stockInitial,
		StockMin:     stockMin,
		StockReal:    stockInitial,
		DateEntered:  entity.DateOf(today),
	}
	c.insert(p)
	return p, nil
}

// UpdateInitialStock reemplaza el stock inicial y recalcula StockReal con el total consumido.
func (c *ProductCatalog) UpdateInitialStock(kind entity.ProductKind, reference string, newStockInitial decimal.Decimal, totals consumptionTotals) (*entity.Product, error) {
	p, err := c.lookup(kind, reference)
	if err != nil {
		return nil, err
	}
	if newStockInitial.IsNegative() {
		return nil, fmt.Errorf("%w: el stock inicial debe ser ≥ 0", domain.ErrValidation)
	}
	p.StockInitial = newStockInitial
	p.StockReal = stock.RealStock(newStockInitial, totals.TotalConsumed(kind, p.Reference))
	return p, nil
}

// UpdateMinStock reemplaza el umbral de alerta.
func (c *ProductCatalog) UpdateMinStock(kind entity.ProductKind, reference string, newStockMin decimal.Decimal) (*entity.Product, error) {
	p, err := c.lookup(kind, reference)
	if err != nil {
		return nil, err
	}
	if newStockMin.IsNegative() {
		return nil, fmt.Errorf("%w: el stock mínimo debe ser ≥ 0", domain.ErrValidation)
	}
	p.StockMin = newStockMin
	return p, nil
}

// Get devuelve una copia del producto o ErrNotFound.
func (c *ProductCatalog) Get(kind entity.ProductKind, reference string) (entity.Product, error) {
	p, err := c.lookup(kind, reference)
	if err != nil {
		return entity.Product{}, err
	}
	return *p, nil
}

// ListAll devuelve copias de los productos de la familia en orden de inserción.
func (c *ProductCatalog) ListAll(kind entity.ProductKind) []entity.Product {
	refs := c.order[kind]
	out := make([]entity.Product, 0, len(refs))
	for _, ref := range refs {
		out = append(out, *c.items[entity.ProductKey{Kind: kind, Reference: ref}])
	}
	return out
}

// Len cantidad total de productos (ambas familias).
func (c *ProductCatalog) Len() int { return len(c.items) }

func (c *ProductCatalog) lookup(kind entity.ProductKind, reference string) (*entity.Product, error) {
	p, ok := c.items[entity.ProductKey{Kind: kind, Reference: strings.TrimSpace(reference)}]
	if !ok {
		return nil, fmt.Errorf("%w: producto %s %q", domain.ErrNotFound, kind.Label(), reference)
	}
	return p, nil
}

func (c *ProductCatalog) insert(p *entity.Product) {
	c.items[p.Key()] = p
	c.order[p.Kind] = append(c.order[p.Kind], p.Reference)
}

// each recorre todos los productos: colorantes primero, luego auxiliares.
func (c *ProductCatalog) each(fn func(p *entity.Product)) {
	for _, kind := range entity.Kinds() {
		for _, ref := range c.order[kind] {
			fn(c.items[entity.ProductKey{Kind: kind, Reference: ref}])
		}
	}
}
