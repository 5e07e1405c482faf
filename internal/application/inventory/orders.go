package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

// OrderInput entrada para crear un pedido. Status vacío = PENDING.
type OrderInput struct {
	Reference string
	ColorCode string
	DateIn    string
	Status    entity.OrderStatus
	Note      string
}

// OrderPatch campos opcionales para actualizar un pedido; nil = sin cambio.
// DateOut apuntando a "" borra la fecha de salida.
type OrderPatch struct {
	ColorCode *string
	DateIn    *string
	DateOut   *string
	Status    *entity.OrderStatus
	Note      *string
}

// OrderTracker es dueño de los pedidos y de su ciclo de vida.
type OrderTracker struct {
	orders []*entity.Order
	index  map[string]*entity.Order
}

// NewOrderTracker construye un tracker vacío.
func NewOrderTracker() *OrderTracker {
	return &OrderTracker{index: make(map[string]*entity.Order)}
}

// CreateOrder valida y registra un pedido. Si nace PROCESSED, DateOut = today y se calcula el retraso
// (negativo si DateIn está en el futuro; no se corrige).
func (t *OrderTracker) CreateOrder(in OrderInput, today time.Time) (*entity.Order, error) {
	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		return nil, fmt.Errorf("%w: la referencia del pedido es obligatoria", domain.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = entity.OrderPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, in.Status)
	}
	if _, ok := t.index[ref]; ok {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrDuplicateReference, ref)
	}
	dateIn, err := entity.ParseDate(in.DateIn)
	if err != nil {
		return nil, err
	}

	o := &entity.Order{
		Reference: ref,
		ColorCode: strings.TrimSpace(in.ColorCode),
		DateIn:    dateIn,
		Status:    status,
		Note:      strings.TrimSpace(in.Note),
	}
	if status == entity.OrderProcessed {
		out := entity.DateOf(today)
		o.DateOut = &out
		o.RecomputeDelay()
	}
	t.insert(o)
	return o, nil
}

// UpdateOrder aplica un patch. Valida todo antes de mutar; recalcula DelayDays si ambas fechas existen.
func (t *OrderTracker) UpdateOrder(reference string, patch OrderPatch, today time.Time) (*entity.Order, error) {
	o, err := t.lookup(reference)
	if err != nil {
		return nil, err
	}

	next := o.Clone()
	if patch.DateIn != nil {
		d, err := entity.ParseDate(*patch.DateIn)
		if err != nil {
			return nil, err
		}
		next.DateIn = d
	}
	if patch.DateOut != nil {
		if strings.TrimSpace(*patch.DateOut) == "" {
			next.DateOut = nil
		} else {
			d, err := entity.ParseDate(*patch.DateOut)
			if err != nil {
				return nil, err
			}
			next.DateOut = &d
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, *patch.Status)
		}
		if !canTransition(o.Status, *patch.Status) {
			return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, o.Status, *patch.Status)
		}
		next.Status = *patch.Status
	}
	if patch.ColorCode != nil {
		next.ColorCode = strings.TrimSpace(*patch.ColorCode)
	}
	if patch.Note != nil {
		next.Note = strings.TrimSpace(*patch.Note)
	}
	if next.Status == entity.OrderProcessed && next.DateOut == nil {
		out := entity.DateOf(today)
		next.DateOut = &out
	}
	next.RecomputeDelay()

	*o = *next
	return o, nil
}

// MarkProcessed pasa un pedido PENDING a PROCESSED; DateOut = today salvo que ya tuviera fecha de salida.
// Si ya estaba procesado no cambia nada y devuelve already=true (no es error).
func (t *OrderTracker) MarkProcessed(reference string, today time.Time) (o *entity.Order, already bool, err error) {
	o, err = t.lookup(reference)
	if err != nil {
		return nil, false, err
	}
	switch o.Status {
	case entity.OrderProcessed:
		return o, true, nil
	case entity.OrderCancelled:
		return nil, false, fmt.Errorf("%w: el pedido %s está anulado", domain.ErrInvalidTransition, o.Reference)
	}
	if o.DateOut == nil {
		out := entity.DateOf(today)
		o.DateOut = &out
	}
	o.Status = entity.OrderProcessed
	o.RecomputeDelay()
	return o, false, nil
}

// CancelOrder pasa un pedido PENDING a CANCELLED, sin efectos sobre fechas.
func (t *OrderTracker) CancelOrder(reference string) (o *entity.Order, already bool, err error) {
	o, err = t.lookup(reference)
	if err != nil {
		return nil, false, err
	}
	switch o.Status {
	case entity.OrderCancelled:
		return o, true, nil
	case entity.OrderProcessed:
		return nil, false, fmt.Errorf("%w: el pedido %s ya fue procesado", domain.ErrInvalidTransition, o.Reference)
	}
	o.Status = entity.OrderCancelled
	return o, false, nil
}

// DeleteOrder elimina el pedido.
func (t *OrderTracker) DeleteOrder(reference string) error {
	o, err := t.lookup(reference)
	if err != nil {
		return err
	}
	delete(t.index, o.Reference)
	for i, cur := range t.orders {
		if cur == o {
			t.orders = append(t.orders[:i], t.orders[i+1:]...)
			break
		}
	}
	return nil
}

// Get devuelve una copia del pedido o ErrNotFound.
func (t *OrderTracker) Get(reference string) (*entity.Order, error) {
	o, err := t.lookup(reference)
	if err != nil {
		return nil, err
	}
	return o.Clone(), nil
}

// List copias de los pedidos en orden de inserción.
func (t *OrderTracker) List() []*entity.Order {
	out := make([]*entity.Order, 0, len(t.orders))
	for _, o := range t.orders {
		out = append(out, o.Clone())
	}
	return out
}

// Statistics recalcula total, procesados y tasa desde los pedidos vivos.
func (t *OrderTracker) Statistics() entity.OrderStatistics {
	processed := 0
	for _, o := range t.orders {
		if o.Status == entity.OrderProcessed {
			processed++
		}
	}
	return entity.OrderStatistics{
		Total:     len(t.orders),
		Processed: processed,
		Rate:      stock.Rate(processed, len(t.orders)),
	}
}

func (t *OrderTracker) load(orders []*entity.Order) error {
	for _, o := range orders {
		c := o.Clone()
		c.Reference = strings.TrimSpace(c.Reference)
		if c.Reference == "" {
			return fmt.Errorf("pedido sin referencia en almacenamiento")
		}
		if c.DateIn.IsZero() {
			return fmt.Errorf("pedido %s sin fecha de entrada", c.Reference)
		}
		if c.Status == "" {
			c.Status = entity.OrderPending
		}
		if !c.Status.Valid() {
			return fmt.Errorf("pedido %s con estado %q desconocido", c.Reference, c.Status)
		}
		if _, ok := t.index[c.Reference]; ok {
			return fmt.Errorf("pedido %s duplicado", c.Reference)
		}
		c.RecomputeDelay()
		t.insert(c)
	}
	return nil
}

func (t *OrderTracker) lookup(reference string) (*entity.Order, error) {
	o, ok := t.index[strings.TrimSpace(reference)]
	if !ok {
		return nil, fmt.Errorf("%w: pedido %q", domain.ErrNotFound, reference)
	}
	return o, nil
}

func (t *OrderTracker) insert(o *entity.Order) {
	t.orders = append(t.orders, o)
	t.index[o.Reference] = o
}

// canTransition: mismo estado o PENDING → PROCESSED/CANCELLED.
func canTransition(from, to entity.OrderStatus) bool {
	if from == to {
		return true
	}
	return from == entity.OrderPending && (to == entity.OrderProcessed || to == entity.OrderCancelled)
}
