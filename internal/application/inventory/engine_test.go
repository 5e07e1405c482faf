package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
	"github.com/jhoicas/colorstock/internal/infrastructure/memory"
)

// ─── helpers ─────────────────────────────────────────────────────────────────

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newEngine(t *testing.T) (*inventory.Engine, *memory.SnapshotStore, *fixedClock) {
	t.Helper()
	store := memory.NewSnapshotStore(nil)
	clock := &fixedClock{now: day("2024-01-01")}
	eng, err := inventory.Open(context.Background(), store, inventory.WithClock(clock.Now))
	require.NoError(t, err)
	return eng, store, clock
}

func addColorant(t *testing.T, eng *inventory.Engine, ref string, initial, min int64) {
	t.Helper()
	_, err := eng.AddProduct(context.Background(), inventory.ProductInput{
		Kind: entity.KindColorant, Reference: ref, Name: "Colorante " + ref,
		StockInitial: dec(initial), StockMin: dec(min),
	})
	require.NoError(t, err)
}

func consume(t *testing.T, eng *inventory.Engine, ref, date string, qty int64) inventory.ConsumptionResult {
	t.Helper()
	res, err := eng.RecordConsumption(context.Background(), inventory.ConsumptionInput{
		Kind: entity.KindColorant, ProductRef: ref, Date: date, Qty: dec(qty),
	})
	require.NoError(t, err)
	return res
}

// ─── escenarios de consumo ───────────────────────────────────────────────────

func TestEngine_ConsumoYAlerta(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)

	res := consume(t, eng, "C1", "2024-01-01", 30)
	assert.True(t, res.Product.StockReal.Equal(dec(70)))
	assert.False(t, res.Alert)

	res = consume(t, eng, "C1", "2024-01-02", 60)
	assert.True(t, res.Product.StockReal.Equal(dec(10)))
	assert.True(t, res.Alert)

	alerts := eng.ActiveAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "C1", alerts[0].Reference)
	assert.True(t, alerts[0].Current.Equal(dec(10)))
}

func TestEngine_StockInsuficiente_NoMuta(t *testing.T) {
	eng, store, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	consume(t, eng, "C1", "2024-01-01", 90)
	saves := store.Saves()

	_, err := eng.RecordConsumption(context.Background(), inventory.ConsumptionInput{
		Kind: entity.KindColorant, ProductRef: "C1", Date: "2024-01-03", Qty: dec(50),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.True(t, ise.Current.Equal(dec(10)))
	assert.True(t, ise.Requested.Equal(dec(50)))

	p, err := eng.GetProduct(entity.KindColorant, "C1")
	require.NoError(t, err)
	assert.True(t, p.StockReal.Equal(dec(10)))
	assert.Len(t, eng.RecentHistory(0), 1)
	assert.Equal(t, saves, store.Saves(), "una operación rechazada no guarda")
}

func TestEngine_ConsumoExactoDejaCero(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 10, 0)

	res := consume(t, eng, "C1", "2024-01-01", 10)
	assert.True(t, res.Product.StockReal.IsZero())
	assert.False(t, res.Alert, "0 no es menor que 0")
}

func TestEngine_EliminarConsumoRecalcula(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	first := consume(t, eng, "C1", "2024-01-01", 30)
	consume(t, eng, "C1", "2024-01-02", 60)

	res, err := eng.DeleteConsumption(context.Background(), first.Record.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Product)
	assert.True(t, res.Product.StockReal.Equal(dec(40)))
	assert.True(t, res.Product.StockReal.Equal(res.Product.StockInitial.Sub(eng.TotalConsumed(entity.KindColorant, "C1"))))

	_, err = eng.DeleteConsumption(context.Background(), first.Record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEngine_EditarConsumo(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	rec := consume(t, eng, "C1", "2024-01-01", 30)
	consume(t, eng, "C1", "2024-01-02", 60)

	res, err := eng.EditConsumption(context.Background(), rec.Record.ID, "2024-01-05", dec(40))
	require.NoError(t, err)
	assert.True(t, res.Product.StockReal.Equal(dec(0)))
	assert.Equal(t, day("2024-01-05"), res.Record.Date)

	_, err = eng.EditConsumption(context.Background(), rec.Record.ID, "2024-01-05", dec(41))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = eng.EditConsumption(context.Background(), rec.Record.ID, "05/01/2024", dec(10))
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = eng.EditConsumption(context.Background(), 999, "2024-01-05", dec(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEngine_ValidacionDeConsumo(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	ctx := context.Background()

	_, err := eng.RecordConsumption(ctx, inventory.ConsumptionInput{Kind: entity.KindColorant, ProductRef: "C1", Date: "2024-01-01", Qty: dec(0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = eng.RecordConsumption(ctx, inventory.ConsumptionInput{Kind: entity.KindColorant, ProductRef: "C1", Date: "2024-13-01", Qty: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = eng.RecordConsumption(ctx, inventory.ConsumptionInput{Kind: entity.KindAuxiliary, ProductRef: "C1", Date: "2024-01-01", Qty: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la referencia es única por familia")
}

func TestEngine_ActualizarStockInicial(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	consume(t, eng, "C1", "2024-01-01", 30)

	res, err := eng.UpdateInitialStock(context.Background(), entity.KindColorant, "C1", dec(40))
	require.NoError(t, err)
	assert.True(t, res.Product.StockReal.Equal(dec(10)))
	assert.True(t, res.Alert)

	res, err = eng.UpdateMinStock(context.Background(), entity.KindColorant, "C1", dec(5))
	require.NoError(t, err)
	assert.False(t, res.Alert)
	assert.Empty(t, eng.ActiveAlerts())

	_, err = eng.UpdateInitialStock(context.Background(), entity.KindColorant, "C1", dec(-1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ─── pedidos ─────────────────────────────────────────────────────────────────

func TestEngine_PedidoProcesado(t *testing.T) {
	eng, _, clock := newEngine(t)
	ctx := context.Background()

	_, err := eng.CreateOrder(ctx, inventory.OrderInput{Reference: "O1", ColorCode: "RAL3020", DateIn: "2024-01-01"})
	require.NoError(t, err)

	clock.now = day("2024-01-10")
	tr, err := eng.MarkProcessed(ctx, "O1")
	require.NoError(t, err)
	assert.False(t, tr.Already)
	assert.Equal(t, entity.OrderProcessed, tr.Order.Status)
	require.NotNil(t, tr.Order.DateOut)
	assert.Equal(t, day("2024-01-10"), *tr.Order.DateOut)
	require.NotNil(t, tr.Order.DelayDays)
	assert.Equal(t, 9, *tr.Order.DelayDays)

	clock.now = day("2024-01-20")
	tr, err = eng.MarkProcessed(ctx, "O1")
	require.NoError(t, err)
	assert.True(t, tr.Already)
	assert.Equal(t, day("2024-01-10"), *tr.Order.DateOut, "segunda llamada no cambia la fecha")

	kpis := eng.KPIs()
	assert.Equal(t, 1, kpis.Total)
	assert.Equal(t, 1, kpis.Processed)
	assert.True(t, kpis.RatePercent.Equal(dec(100)))
}

func TestEngine_PedidoAnulado(t *testing.T) {
	eng, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := eng.CreateOrder(ctx, inventory.OrderInput{Reference: "O1", DateIn: "2024-01-01"})
	require.NoError(t, err)
	_, err = eng.CreateOrder(ctx, inventory.OrderInput{Reference: "O1", DateIn: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)

	tr, err := eng.CancelOrder(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, tr.Order.Status)
	assert.Nil(t, tr.Order.DateOut)

	_, err = eng.MarkProcessed(ctx, "O1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	s := eng.Statistics()
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 0, s.Processed)
	assert.True(t, s.Rate.IsZero())

	require.NoError(t, eng.DeleteOrder(ctx, "O1"))
	assert.Empty(t, eng.ListOrders())
	assert.True(t, eng.Statistics().Rate.IsZero())
}

func TestEngine_ModificarPedido(t *testing.T) {
	eng, _, _ := newEngine(t)
	ctx := context.Background()
	_, err := eng.CreateOrder(ctx, inventory.OrderInput{Reference: "O1", DateIn: "2024-01-10"})
	require.NoError(t, err)

	out := "2024-01-05"
	o, err := eng.UpdateOrder(ctx, "O1", inventory.OrderPatch{DateOut: &out})
	require.NoError(t, err)
	require.NotNil(t, o.DelayDays)
	assert.Equal(t, -5, *o.DelayDays, "retraso negativo se calcula, no se rechaza")

	bad := "no-es-fecha"
	_, err = eng.UpdateOrder(ctx, "O1", inventory.OrderPatch{DateIn: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	got, err := eng.GetOrder("O1")
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-10"), got.DateIn, "un patch inválido no muta")
}

// ─── indicadores ─────────────────────────────────────────────────────────────

func TestEngine_TopConsumo(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 0)
	addColorant(t, eng, "C2", 100, 0)
	consume(t, eng, "C1", "2024-01-01", 60)
	consume(t, eng, "C2", "2024-01-01", 50)
	consume(t, eng, "C2", "2024-01-02", 40)

	top := eng.TopConsumption(1)
	require.Len(t, top, 1)
	assert.Equal(t, "C2", top[0].Reference)
	assert.Equal(t, 1, top[0].Rank)
	assert.True(t, top[0].Total.Equal(dec(90)))
	assert.Equal(t, stock.PriorityHigh, top[0].Priority)

	assert.Len(t, eng.TopConsumption(0), 2)
}

func TestEngine_Reporte(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	_, err := eng.AddProduct(context.Background(), inventory.ProductInput{
		Kind: entity.KindAuxiliary, Reference: "A1", Name: "Fijador", StockInitial: dec(5), StockMin: dec(10),
	})
	require.NoError(t, err)

	rows := eng.BuildReport()
	require.Len(t, rows, 2)
	assert.Equal(t, "C1", rows[0].Reference)
	assert.Equal(t, inventory.ReportStatusOK, rows[0].Status)
	assert.Equal(t, "A1", rows[1].Reference)
	assert.True(t, rows[1].Critical())
}

// ─── persistencia ────────────────────────────────────────────────────────────

func TestEngine_FallaDeGuardado_QuedaEnMemoria(t *testing.T) {
	eng, store, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 20)
	store.FailSaves(true)

	res, err := eng.RecordConsumption(context.Background(), inventory.ConsumptionInput{
		Kind: entity.KindColorant, ProductRef: "C1", Date: "2024-01-01", Qty: dec(30),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, memory.ErrSaveFailed)

	var pe *domain.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.True(t, pe.Committed)
	assert.True(t, res.Product.StockReal.Equal(dec(70)))
	assert.True(t, eng.Dirty())

	store.FailSaves(false)
	require.NoError(t, eng.Flush(context.Background()))
	assert.False(t, eng.Dirty())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Consumption, 1)
}

func TestEngine_RecargaRecalculaDerivados(t *testing.T) {
	store := memory.NewSnapshotStore(&entity.Snapshot{
		Products: []*entity.Product{{
			Kind: entity.KindColorant, Reference: "C1", Name: "Rojo",
			StockInitial: dec(100), StockMin: dec(20), StockReal: dec(999),
		}},
		Consumption: []*entity.ConsumptionRecord{
			{ID: 4, Kind: entity.KindColorant, ProductRef: "C1", Date: day("2024-01-01"), Qty: dec(30)},
			{Kind: entity.KindColorant, ProductRef: "C1", Date: day("2024-01-02"), Qty: dec(60)},
		},
		Orders: []*entity.Order{{Reference: "O1", DateIn: day("2024-01-01"), DateOut: ptrTime(day("2024-01-04")), Status: entity.OrderProcessed}},
	})

	eng, err := inventory.Open(context.Background(), store)
	require.NoError(t, err)

	p, err := eng.GetProduct(entity.KindColorant, "C1")
	require.NoError(t, err)
	assert.True(t, p.StockReal.Equal(dec(10)), "el valor almacenado se ignora")

	hist := eng.RecentHistory(0)
	require.Len(t, hist, 2)
	assert.Equal(t, int64(5), hist[0].ID, "ID ausente recibe el siguiente libre")
	assert.Equal(t, "Rojo", hist[0].Name)

	o, err := eng.GetOrder("O1")
	require.NoError(t, err)
	require.NotNil(t, o.DelayDays)
	assert.Equal(t, 3, *o.DelayDays)

	// round-trip
	require.NoError(t, eng.Close(context.Background()))
	again, err := inventory.Open(context.Background(), store)
	require.NoError(t, err)
	rows := again.BuildReport()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].StockReal.Equal(dec(10)))
	assert.Len(t, again.RecentHistory(0), 2)
}

func TestEngine_SnapshotCorrupto(t *testing.T) {
	store := memory.NewSnapshotStore(&entity.Snapshot{
		Products: []*entity.Product{
			{Kind: entity.KindColorant, Reference: "C1", Name: "a", StockInitial: dec(1)},
			{Kind: entity.KindColorant, Reference: "C1", Name: "b", StockInitial: dec(1)},
		},
	})
	_, err := inventory.Open(context.Background(), store)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestEngine_HistorialReciente(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 0)
	consume(t, eng, "C1", "2024-01-02", 1)
	consume(t, eng, "C1", "2024-01-05", 1)
	consume(t, eng, "C1", "2024-01-01", 1)

	hist := eng.RecentHistory(2)
	require.Len(t, hist, 2)
	assert.Equal(t, day("2024-01-05"), hist[0].Date)
	assert.Equal(t, day("2024-01-02"), hist[1].Date)
	assert.Len(t, eng.RecentHistory(0), 3)
}

func TestEngine_ProcesarConservaFechaDeSalida(t *testing.T) {
	eng, _, clock := newEngine(t)
	ctx := context.Background()
	_, err := eng.CreateOrder(ctx, inventory.OrderInput{Reference: "O1", DateIn: "2024-01-01"})
	require.NoError(t, err)
	out := "2024-01-05"
	_, err = eng.UpdateOrder(ctx, "O1", inventory.OrderPatch{DateOut: &out})
	require.NoError(t, err)

	clock.now = day("2024-01-10")
	tr, err := eng.MarkProcessed(ctx, "O1")
	require.NoError(t, err)
	require.NotNil(t, tr.Order.DateOut)
	assert.Equal(t, day("2024-01-05"), *tr.Order.DateOut)
	require.NotNil(t, tr.Order.DelayDays)
	assert.Equal(t, 4, *tr.Order.DelayDays)
}

func TestEngine_PedidoSinFechaDeEntrada(t *testing.T) {
	_, err := inventory.NewEngine(&entity.Snapshot{
		Orders: []*entity.Order{{Reference: "O1", Status: entity.OrderPending}},
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	var pe *domain.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "load", pe.Op)
}

func TestEngine_EditarConStockNegativo(t *testing.T) {
	cases := []struct {
		name      string
		qty       int64
		wantErr   error
		wantStock int64
	}{
		{name: "reducir se permite", qty: 25, wantStock: -15},
		{name: "misma cantidad se permite", qty: 30, wantStock: -20},
		{name: "aumentar con stock negativo se rechaza", qty: 31, wantErr: domain.ErrInsufficientStock, wantStock: -20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _, _ := newEngine(t)
			ctx := context.Background()
			addColorant(t, eng, "C1", 100, 20)
			rec := consume(t, eng, "C1", "2024-01-01", 30)
			_, err := eng.UpdateInitialStock(ctx, entity.KindColorant, "C1", dec(10))
			require.NoError(t, err)

			_, err = eng.EditConsumption(ctx, rec.Record.ID, "2024-01-01", dec(tc.qty))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			p, err := eng.GetProduct(entity.KindColorant, "C1")
			require.NoError(t, err)
			assert.True(t, p.StockReal.Equal(dec(tc.wantStock)), "stock real %s", p.StockReal)
		})
	}
}

// ─── propiedades del ledger ──────────────────────────────────────────────────

func TestEngine_HistorialEmpatesEnOrdenDeInsercion(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 0)
	a := consume(t, eng, "C1", "2024-01-03", 1)
	b := consume(t, eng, "C1", "2024-01-03", 2)
	c := consume(t, eng, "C1", "2024-01-05", 3)
	d := consume(t, eng, "C1", "2024-01-03", 4)

	cases := []struct {
		name  string
		limit int
		want  []int64
	}{
		{name: "completo", limit: 0, want: []int64{c.Record.ID, a.Record.ID, b.Record.ID, d.Record.ID}},
		{name: "truncado", limit: 3, want: []int64{c.Record.ID, a.Record.ID, b.Record.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hist := eng.RecentHistory(tc.limit)
			ids := make([]int64, 0, len(hist))
			for _, h := range hist {
				ids = append(ids, h.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestEngine_TopConsumoEmpatesPorReferencia(t *testing.T) {
	eng, _, _ := newEngine(t)
	for _, ref := range []string{"C3", "C1", "C2"} {
		addColorant(t, eng, ref, 100, 0)
		consume(t, eng, ref, "2024-01-01", 10)
	}
	addColorant(t, eng, "C0", 100, 0)
	consume(t, eng, "C0", "2024-01-01", 5)

	top := eng.TopConsumption(0)
	want := []string{"C1", "C2", "C3", "C0"}
	require.Len(t, top, len(want))
	for i, ref := range want {
		assert.Equal(t, ref, top[i].Reference)
		assert.Equal(t, i+1, top[i].Rank)
	}
}

func TestEngine_PrioridadPorPuesto(t *testing.T) {
	eng, _, _ := newEngine(t)
	for i := 1; i <= 9; i++ {
		ref := fmt.Sprintf("P%02d", i)
		addColorant(t, eng, ref, 100, 0)
		consume(t, eng, ref, "2024-01-01", int64(10-i))
	}

	top := eng.TopConsumption(9)
	require.Len(t, top, 9)
	cases := []struct {
		rank int
		want stock.Priority
	}{
		{1, stock.PriorityHigh},
		{3, stock.PriorityHigh},
		{4, stock.PriorityMedium},
		{7, stock.PriorityMedium},
		{8, stock.PriorityLow},
		{9, stock.PriorityLow},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("puesto %d", tc.rank), func(t *testing.T) {
			r := top[tc.rank-1]
			assert.Equal(t, tc.rank, r.Rank)
			assert.Equal(t, fmt.Sprintf("P%02d", tc.rank), r.Reference)
			assert.Equal(t, tc.want, r.Priority)
		})
	}
}

func TestEngine_ConsultasIdempotentes(t *testing.T) {
	eng, _, _ := newEngine(t)
	addColorant(t, eng, "C1", 100, 0)
	addColorant(t, eng, "C2", 100, 0)
	consume(t, eng, "C1", "2024-01-02", 10)
	consume(t, eng, "C2", "2024-01-02", 10)
	consume(t, eng, "C2", "2024-01-01", 5)

	for _, n := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			assert.Equal(t, eng.RecentHistory(n), eng.RecentHistory(n))
			assert.Equal(t, eng.TopConsumption(n), eng.TopConsumption(n))
		})
	}
	p, err := eng.GetProduct(entity.KindColorant, "C2")
	require.NoError(t, err)
	assert.True(t, p.StockReal.Equal(dec(85)), "las consultas no modifican el stock")
}

func TestEngine_StockRealIgualInicialMenosConsumido(t *testing.T) {
	eng, _, _ := newEngine(t)
	ctx := context.Background()
	addColorant(t, eng, "C1", 100, 20)
	addColorant(t, eng, "C2", 50, 10)
	_, err := eng.AddProduct(ctx, inventory.ProductInput{
		Kind: entity.KindAuxiliary, Reference: "A1", Name: "Fijador", StockInitial: dec(40), StockMin: dec(5),
	})
	require.NoError(t, err)

	var first, second int64
	steps := []struct {
		name string
		run  func() error
	}{
		{"registrar C1", func() error { first = consume(t, eng, "C1", "2024-01-01", 30).Record.ID; return nil }},
		{"registrar C2", func() error { second = consume(t, eng, "C2", "2024-01-02", 20).Record.ID; return nil }},
		{"registrar A1", func() error {
			_, err := eng.RecordConsumption(ctx, inventory.ConsumptionInput{
				Kind: entity.KindAuxiliary, ProductRef: "A1", Date: "2024-01-02", Qty: dec(15),
			})
			return err
		}},
		{"registrar C1 otra vez", func() error { consume(t, eng, "C1", "2024-01-03", 10); return nil }},
		{"editar C1", func() error {
			_, err := eng.EditConsumption(ctx, first, "2024-01-04", dec(45))
			return err
		}},
		{"bajar stock inicial C1", func() error {
			_, err := eng.UpdateInitialStock(ctx, entity.KindColorant, "C1", dec(40))
			return err
		}},
		{"eliminar C2", func() error {
			_, err := eng.DeleteConsumption(ctx, second)
			return err
		}},
		{"subir stock inicial A1", func() error {
			_, err := eng.UpdateInitialStock(ctx, entity.KindAuxiliary, "A1", dec(60))
			return err
		}},
	}
	for _, step := range steps {
		require.NoError(t, step.run(), step.name)
		for _, kind := range entity.Kinds() {
			for _, p := range eng.ListProducts(kind) {
				want := p.StockInitial.Sub(eng.TotalConsumed(kind, p.Reference))
				assert.True(t, p.StockReal.Equal(want), "%s: %s real=%s esperado=%s", step.name, p.Reference, p.StockReal, want)
			}
		}
	}

	c1, err := eng.GetProduct(entity.KindColorant, "C1")
	require.NoError(t, err)
	assert.True(t, c1.StockReal.Equal(dec(-15)))
}

func ptrTime(t time.Time) *time.Time { return &t }
