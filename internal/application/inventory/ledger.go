package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

// ConsumptionLedger es dueño de los registros de consumo.
// Referencia productos del catálogo solo por (familia, referencia); no los posee.
type ConsumptionLedger struct {
	catalog *ProductCatalog
	records []*entity.ConsumptionRecord
	nextID  int64
}

// NewConsumptionLedger construye un ledger vacío asociado al catálogo.
func NewConsumptionLedger(catalog *ProductCatalog) *ConsumptionLedger {
	return &ConsumptionLedger{catalog: catalog, nextID: 1}
}

// HistoryEntry consumo con el nombre de producto resuelto para mostrar.
type HistoryEntry struct {
	entity.ConsumptionRecord
	Name string
}

// RecordConsumption valida y registra un consumo. Es el único camino por el que StockReal disminuye.
// Orden de validación: cantidad, fecha, producto, suficiencia.
func (l *ConsumptionLedger) RecordConsumption(kind entity.ProductKind, productRef, date string, qty decimal.Decimal) (*entity.ConsumptionRecord, *entity.Product, error) {
	if !qty.IsPositive() {
		return nil, nil, fmt.Errorf("%w: la cantidad debe ser > 0", domain.ErrValidation)
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, nil, err
	}
	p, err := l.catalog.lookup(kind, productRef)
	if err != nil {
		return nil, nil, err
	}
	if !stock.Sufficient(p.StockReal, qty) {
		return nil, nil, &domain.InsufficientStockError{Current: p.StockReal, Requested: qty}
	}

	rec := &entity.ConsumptionRecord{
		ID:         l.nextID,
		Kind:       p.Kind,
		ProductRef: p.Reference,
		Date:       day,
		Qty:        qty,
	}
	l.nextID++
	l.records = append(l.records, rec)
	p.StockReal = p.StockReal.Sub(qty)
	return rec, p, nil
}

// EditConsumption modifica fecha y cantidad de un registro y recalcula todo el stock desde el ledger.
// Rechaza la edición solo si aumenta la cantidad y deja el stock real en negativo;
// reducir un consumo siempre se permite aunque el stock ya sea negativo.
func (l *ConsumptionLedger) EditConsumption(id int64, date string, qty decimal.Decimal) (*entity.ConsumptionRecord, error) {
	rec, _, err := l.find(id)
	if err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser > 0", domain.ErrValidation)
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if p, err := l.catalog.lookup(rec.Kind, rec.ProductRef); err == nil {
		available := p.StockReal.Add(rec.Qty)
		if qty.GreaterThan(rec.Qty) && !stock.Sufficient(available, qty) {
			return nil, &domain.InsufficientStockError{Current: available, Requested: qty}
		}
	}

	rec.Date = day
	rec.Qty = qty
	l.Recompute()
	return rec, nil
}

// DeleteConsumption elimina un registro y recalcula todo el stock desde el ledger.
func (l *ConsumptionLedger) DeleteConsumption(id int64) (*entity.ConsumptionRecord, error) {
	rec, idx, err := l.find(id)
	if err != nil {
		return nil, err
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	l.Recompute()
	return rec, nil
}

// Recompute recalcula StockReal de cada producto una sola vez:
// StockReal = StockInitial − Σ qty de los registros actuales del producto.
// Es idempotente e independiente del orden de los registros.
func (l *ConsumptionLedger) Recompute() {
	totals := l.totals()
	l.catalog.each(func(p *entity.Product) {
		p.StockReal = stock.RealStock(p.StockInitial, totals[p.Key()])
	})
}

// TotalConsumed suma las cantidades registradas para el producto.
func (l *ConsumptionLedger) TotalConsumed(kind entity.ProductKind, reference string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		if r.Kind == kind && r.ProductRef == reference {
			total = total.Add(r.Qty)
		}
	}
	return total
}

// RecentHistory devuelve los consumos por fecha descendente (empates en orden de inserción),
// truncados a limit. limit ≤ 0 devuelve todo. No modifica el ledger.
func (l *ConsumptionLedger) RecentHistory(limit int) []HistoryEntry {
	sorted := make([]*entity.ConsumptionRecord, len(l.records))
	copy(sorted, l.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]HistoryEntry, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, HistoryEntry{ConsumptionRecord: *r, Name: l.displayName(r.Kind, r.ProductRef)})
	}
	return out
}

// Records copias de los registros en orden de inserción.
func (l *ConsumptionLedger) Records() []entity.ConsumptionRecord {
	out := make([]entity.ConsumptionRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, *r)
	}
	return out
}

// load agrega un registro ya persistido respetando su ID; IDs ausentes o repetidos se reasignan.
func (l *ConsumptionLedger) load(recs []*entity.ConsumptionRecord) error {
	seen := make(map[int64]bool, len(recs))
	var pending []*entity.ConsumptionRecord
	for _, r := range recs {
		if !r.Kind.Valid() || r.ProductRef == "" || !r.Qty.IsPositive() || r.Date.IsZero() {
			return fmt.Errorf("consumo inválido en almacenamiento (producto %q, id %d)", r.ProductRef, r.ID)
		}
		c := *r
		c.Date = entity.DateOf(c.Date)
		if c.ID <= 0 || seen[c.ID] {
			pending = append(pending, &c)
		} else {
			seen[c.ID] = true
			if c.ID >= l.nextID {
				l.nextID = c.ID + 1
			}
		}
		l.records = append(l.records, &c)
	}
	for _, r := range pending {
		r.ID = l.nextID
		l.nextID++
	}
	return nil
}

func (l *ConsumptionLedger) find(id int64) (*entity.ConsumptionRecord, int, error) {
	for i, r := range l.records {
		if r.ID == id {
			return r, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: consumo %d", domain.ErrNotFound, id)
}

func (l *ConsumptionLedger) totals() map[entity.ProductKey]decimal.Decimal {
	totals := make(map[entity.ProductKey]decimal.Decimal)
	for _, r := range l.records {
		k := r.ProductKey()
		totals[k] = totals[k].Add(r.Qty)
	}
	return totals
}

// displayName nombre del producto; si no se puede resolver, la referencia.
func (l *ConsumptionLedger) displayName(kind entity.ProductKind, ref string) string {
	if p, err := l.catalog.lookup(kind, ref); err == nil && p.Name != "" {
		return p.Name
	}
	return ref
}
