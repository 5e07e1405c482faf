// Package inventory implementa el motor de inventario: catálogo de productos,
// ledger de consumos, alertas, pedidos de reposición e indicadores.
//
// Toda mutación sigue el mismo ciclo: validar → mutar en memoria → recalcular
// vistas derivadas → guardar el snapshot completo. Si el guardado falla, la
// mutación NO se revierte; el motor queda "dirty" y devuelve un
// *domain.PersistenceError con Committed=true para que el llamador reintente
// con Flush sin repetir la operación de negocio.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/repository"
	"github.com/jhoicas/colorstock/pkg/logger"
)

// Engine instancia única que posee catálogo, ledger y pedidos.
// Un mutex serializa las operaciones: una operación lógica a la vez.
type Engine struct {
	mu   sync.Mutex
	repo repository.SnapshotRepository
	log  *logger.Logger
	now  func() time.Time

	catalog *ProductCatalog
	ledger  *ConsumptionLedger
	orders  *OrderTracker

	topN  int
	dirty bool
}

// Option configura el motor.
type Option func(*Engine)

// WithClock fija el reloj usado para "hoy" (pedidos procesados, fecha de alta).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithTopConsumption tamaño por defecto del ranking de consumo.
func WithTopConsumption(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// ProductInput entrada para dar de alta un producto.
type ProductInput struct {
	Kind         entity.ProductKind
	Reference    string
	Name         string
	StockInitial decimal.Decimal
	StockMin     decimal.Decimal
}

// ConsumptionInput entrada para registrar un consumo. Date en formato AAAA-MM-DD.
type ConsumptionInput struct {
	Kind       entity.ProductKind
	ProductRef string
	Date       string
	Qty        decimal.Decimal
}

// ProductResult producto tras una mutación de stock y su estado de alerta.
type ProductResult struct {
	Product entity.Product
	Alert   bool
}

// ConsumptionResult registro afectado, producto recalculado y estado de alerta.
// Product es nil si el registro apunta a un producto inexistente (dato huérfano cargado).
type ConsumptionResult struct {
	Record  entity.ConsumptionRecord
	Product *entity.Product
	Alert   bool
}

// OrderTransition resultado de marcar/anular un pedido. Already=true indica que no hubo cambio.
type OrderTransition struct {
	Order   *entity.Order
	Already bool
}

// Open carga el snapshot desde el repositorio y construye el motor.
func Open(ctx context.Context, repo repository.SnapshotRepository, opts ...Option) (*Engine, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	return NewEngine(snap, repo, opts...)
}

// NewEngine construye el motor desde un snapshot. Los valores derivados almacenados
// (StockReal, DelayDays) se ignoran y se recalculan. repo puede ser nil (sin persistencia).
func NewEngine(snap *entity.Snapshot, repo repository.SnapshotRepository, opts ...Option) (*Engine, error) {
	catalog := NewProductCatalog()
	e := &Engine{
		repo:    repo,
		log:     logger.Nop(),
		now:     time.Now,
		catalog: catalog,
		ledger:  NewConsumptionLedger(catalog),
		orders:  NewOrderTracker(),
		topN:    DefaultTopConsumption,
	}
	for _, opt := range opts {
		opt(e)
	}
	if snap == nil {
		snap = &entity.Snapshot{}
	}
	if err := e.load(snap); err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	e.log.Info().
		Int("products", catalog.Len()).
		Int("consumptions", len(snap.Consumption)).
		Int("orders", len(snap.Orders)).
		Msg("inventario cargado")
	return e, nil
}

func (e *Engine) load(snap *entity.Snapshot) error {
	for _, p := range snap.Products {
		if !p.Kind.Valid() {
			return fmt.Errorf("producto %q con familia %q desconocida", p.Reference, p.Kind)
		}
		if p.Reference == "" {
			return fmt.Errorf("producto sin referencia en almacenamiento")
		}
		if p.StockInitial.IsNegative() || p.StockMin.IsNegative() {
			return fmt.Errorf("producto %q con stock negativo", p.Reference)
		}
		if _, err := e.catalog.lookup(p.Kind, p.Reference); err == nil {
			return fmt.Errorf("producto %s %q duplicado", p.Kind.Label(), p.Reference)
		}
		c := *p
		if c.Name == "" {
			c.Name = c.Reference
		}
		e.catalog.insert(&c)
	}
	if err := e.ledger.load(snap.Consumption); err != nil {
		return err
	}
	if err := e.orders.load(snap.Orders); err != nil {
		return err
	}
	e.ledger.Recompute()
	return nil
}

func (e *Engine) today() time.Time { return entity.DateOf(e.now()) }

// ── Catálogo ─────────────────────────────────────────────────────────────────

// AddProduct da de alta un producto en su familia.
func (e *Engine) AddProduct(ctx context.Context, in ProductInput) (entity.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.catalog.AddProduct(in.Kind, in.Reference, in.Name, in.StockInitial, in.StockMin, e.today())
	if err != nil {
		return entity.Product{}, err
	}
	e.log.Info().Str("kind", string(p.Kind)).Str("reference", p.Reference).
		Str("stock_initial", p.StockInitial.String()).Msg("producto agregado")
	return *p, e.persist(ctx)
}

// UpdateInitialStock reemplaza el stock inicial; StockReal = nuevo − total consumido.
func (e *Engine) UpdateInitialStock(ctx context.Context, kind entity.ProductKind, reference string, value decimal.Decimal) (ProductResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.catalog.UpdateInitialStock(kind, reference, value, e.ledger)
	if err != nil {
		return ProductResult{}, err
	}
	res := e.productResult(p)
	e.log.Info().Str("reference", p.Reference).Str("stock_initial", value.String()).
		Str("stock_real", p.StockReal.String()).Msg("stock inicial actualizado")
	return res, e.persist(ctx)
}

// UpdateMinStock reemplaza el stock mínimo del producto.
func (e *Engine) UpdateMinStock(ctx context.Context, kind entity.ProductKind, reference string, value decimal.Decimal) (ProductResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.catalog.UpdateMinStock(kind, reference, value)
	if err != nil {
		return ProductResult{}, err
	}
	res := e.productResult(p)
	e.log.Info().Str("reference", p.Reference).Str("stock_min", value.String()).Msg("stock mínimo actualizado")
	return res, e.persist(ctx)
}

// GetProduct devuelve el producto o ErrNotFound.
func (e *Engine) GetProduct(kind entity.ProductKind, reference string) (entity.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Get(kind, reference)
}

// ListProducts productos de la familia en orden de alta.
func (e *Engine) ListProducts(kind entity.ProductKind) []entity.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.ListAll(kind)
}

// ── Consumos ─────────────────────────────────────────────────────────────────

// RecordConsumption registra un consumo validando la suficiencia de stock.
func (e *Engine) RecordConsumption(ctx context.Context, in ConsumptionInput) (ConsumptionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, p, err := e.ledger.RecordConsumption(in.Kind, in.ProductRef, in.Date, in.Qty)
	if err != nil {
		return ConsumptionResult{}, err
	}
	pr := e.productResult(p)
	e.log.Info().Int64("id", rec.ID).Str("reference", rec.ProductRef).
		Str("qty", rec.Qty.String()).Str("stock_real", p.StockReal.String()).Msg("consumo registrado")
	return ConsumptionResult{Record: *rec, Product: &pr.Product, Alert: pr.Alert}, e.persist(ctx)
}

// EditConsumption modifica fecha/cantidad y recalcula el stock desde el ledger completo.
func (e *Engine) EditConsumption(ctx context.Context, id int64, date string, qty decimal.Decimal) (ConsumptionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.ledger.EditConsumption(id, date, qty)
	if err != nil {
		return ConsumptionResult{}, err
	}
	res := e.consumptionResult(rec)
	e.log.Info().Int64("id", rec.ID).Str("reference", rec.ProductRef).Str("qty", rec.Qty.String()).Msg("consumo modificado")
	return res, e.persist(ctx)
}

// DeleteConsumption elimina un consumo y recalcula el stock desde el ledger completo.
func (e *Engine) DeleteConsumption(ctx context.Context, id int64) (ConsumptionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.ledger.DeleteConsumption(id)
	if err != nil {
		return ConsumptionResult{}, err
	}
	res := e.consumptionResult(rec)
	e.log.Info().Int64("id", rec.ID).Str("reference", rec.ProductRef).Msg("consumo eliminado")
	return res, e.persist(ctx)
}

// RecentHistory consumos más recientes primero; limit ≤ 0 devuelve todos.
func (e *Engine) RecentHistory(limit int) []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.RecentHistory(limit)
}

// TotalConsumed total consumido por el producto.
func (e *Engine) TotalConsumed(kind entity.ProductKind, reference string) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.TotalConsumed(kind, reference)
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

// CreateOrder registra un pedido de reposición.
func (e *Engine) CreateOrder(ctx context.Context, in OrderInput) (*entity.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.orders.CreateOrder(in, e.today())
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("order", o.Reference).Str("status", string(o.Status)).Msg("pedido creado")
	return o.Clone(), e.persist(ctx)
}

// UpdateOrder aplica cambios a un pedido existente.
func (e *Engine) UpdateOrder(ctx context.Context, reference string, patch OrderPatch) (*entity.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.orders.UpdateOrder(reference, patch, e.today())
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("order", o.Reference).Str("status", string(o.Status)).Msg("pedido modificado")
	return o.Clone(), e.persist(ctx)
}

// MarkProcessed marca el pedido como procesado. Si ya lo estaba, Already=true y no se guarda nada.
func (e *Engine) MarkProcessed(ctx context.Context, reference string) (OrderTransition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, already, err := e.orders.MarkProcessed(reference, e.today())
	if err != nil {
		return OrderTransition{}, err
	}
	res := OrderTransition{Order: o.Clone(), Already: already}
	if already {
		return res, nil
	}
	ev := e.log.Info().Str("order", o.Reference)
	if o.DelayDays != nil {
		ev = ev.Int("delay_days", *o.DelayDays)
	}
	ev.Msg("pedido procesado")
	return res, e.persist(ctx)
}

// CancelOrder anula un pedido pendiente. Si ya estaba anulado, Already=true.
func (e *Engine) CancelOrder(ctx context.Context, reference string) (OrderTransition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, already, err := e.orders.CancelOrder(reference)
	if err != nil {
		return OrderTransition{}, err
	}
	res := OrderTransition{Order: o.Clone(), Already: already}
	if already {
		return res, nil
	}
	e.log.Info().Str("order", o.Reference).Msg("pedido anulado")
	return res, e.persist(ctx)
}

// DeleteOrder elimina un pedido.
func (e *Engine) DeleteOrder(ctx context.Context, reference string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.orders.DeleteOrder(reference); err != nil {
		return err
	}
	e.log.Info().Str("order", reference).Msg("pedido eliminado")
	return e.persist(ctx)
}

// GetOrder devuelve una copia del pedido.
func (e *Engine) GetOrder(reference string) (*entity.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.Get(reference)
}

// ListOrders pedidos en orden de alta.
func (e *Engine) ListOrders() []*entity.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.List()
}

// Statistics total, procesados y tasa de pedidos.
func (e *Engine) Statistics() entity.OrderStatistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.Statistics()
}

// ── Vistas derivadas ─────────────────────────────────────────────────────────

// ActiveAlerts productos bajo su stock mínimo.
func (e *Engine) ActiveAlerts() []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ActiveAlerts(e.catalog)
}

// TopConsumption ranking de consumo total; n ≤ 0 usa el tamaño configurado.
func (e *Engine) TopConsumption(n int) []ConsumptionRank {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n <= 0 {
		n = e.topN
	}
	return TopConsumption(e.catalog, e.ledger, n)
}

// KPIs indicadores de pedidos.
func (e *Engine) KPIs() KPIs {
	e.mu.Lock()
	defer e.mu.Unlock()
	return KPIsFrom(e.orders)
}

// BuildReport reporte de stock de ambas familias.
func (e *Engine) BuildReport() []ReportRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BuildReport(e.catalog)
}

// ── Persistencia ─────────────────────────────────────────────────────────────

// Snapshot copia del estado actual, con los derivados ya calculados.
func (e *Engine) Snapshot() *entity.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Dirty indica que hay cambios en memoria que no se pudieron persistir.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Flush reintenta el guardado del estado actual sin repetir ninguna mutación.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.persist(ctx)
}

// Close guarda el estado final antes del apagado.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.persist(ctx); err != nil {
		return err
	}
	e.log.Info().Msg("inventario guardado al cerrar")
	return nil
}

// persist guarda el snapshot completo. Debe llamarse con el mutex tomado.
func (e *Engine) persist(ctx context.Context) error {
	if e.repo == nil {
		return nil
	}
	if err := e.repo.Save(ctx, e.snapshot()); err != nil {
		e.dirty = true
		e.log.Error().Err(err).Msg("guardado en memoria pero no persistido")
		return &domain.PersistenceError{Op: "save", Committed: true, Err: err}
	}
	e.dirty = false
	return nil
}

func (e *Engine) snapshot() *entity.Snapshot {
	snap := &entity.Snapshot{}
	e.catalog.each(func(p *entity.Product) {
		c := *p
		snap.Products = append(snap.Products, &c)
	})
	for _, r := range e.ledger.records {
		c := *r
		snap.Consumption = append(snap.Consumption, &c)
	}
	snap.Orders = e.orders.List()
	return snap
}

func (e *Engine) productResult(p *entity.Product) ProductResult {
	alert := Evaluate(*p)
	if alert {
		e.log.Warn().Str("kind", string(p.Kind)).Str("reference", p.Reference).
			Str("stock_real", p.StockReal.StringFixed(2)).Str("stock_min", p.StockMin.StringFixed(2)).
			Msg("stock por debajo del mínimo")
	}
	return ProductResult{Product: *p, Alert: alert}
}

func (e *Engine) consumptionResult(rec *entity.ConsumptionRecord) ConsumptionResult {
	res := ConsumptionResult{Record: *rec}
	if p, err := e.catalog.lookup(rec.Kind, rec.ProductRef); err == nil {
		pr := e.productResult(p)
		res.Product = &pr.Product
		res.Alert = pr.Alert
	}
	return res
}
