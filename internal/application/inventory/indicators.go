package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

// DefaultTopConsumption tamaño del ranking del tablero de indicadores.
const DefaultTopConsumption = 10

// ConsumptionRank puesto de un producto en el ranking de consumo total.
type ConsumptionRank struct {
	Rank      int
	Kind      entity.ProductKind
	Reference string
	Name      string
	Total     decimal.Decimal
	Priority  stock.Priority
}

// KPIs indicadores de pedidos para el tablero.
type KPIs struct {
	Total       int
	Processed   int
	Rate        decimal.Decimal // fracción 0..1
	RatePercent decimal.Decimal // Rate × 100, redondeado a 1 decimal
}

// TopConsumption agrupa consumos por producto, ordena por total descendente
// (empates por referencia ascendente) y devuelve los primeros n con su prioridad.
// n ≤ 0 usa DefaultTopConsumption. Productos no resueltos usan la referencia como nombre.
func TopConsumption(catalog *ProductCatalog, ledger *ConsumptionLedger, n int) []ConsumptionRank {
	if n <= 0 {
		n = DefaultTopConsumption
	}
	totals := ledger.totals()
	ranks := make([]ConsumptionRank, 0, len(totals))
	for key, total := range totals {
		r := ConsumptionRank{Kind: key.Kind, Reference: key.Reference, Name: key.Reference, Total: total}
		if p, err := catalog.lookup(key.Kind, key.Reference); err == nil && p.Name != "" {
			r.Name = p.Name
		}
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		if a.Reference != b.Reference {
			return a.Reference < b.Reference
		}
		return a.Kind < b.Kind
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	for i := range ranks {
		ranks[i].Rank = i + 1
		ranks[i].Priority = stock.PriorityForRank(i + 1)
	}
	return ranks
}

// KPIsFrom delega en las estadísticas del tracker; no hay cálculo adicional salvo el porcentaje.
func KPIsFrom(tracker *OrderTracker) KPIs {
	s := tracker.Statistics()
	return KPIs{
		Total:       s.Total,
		Processed:   s.Processed,
		Rate:        s.Rate,
		RatePercent: s.Rate.Mul(decimal.NewFromInt(100)).Round(1),
	}
}
