package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/repository"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo persiste el snapshot completo del inventario en PostgreSQL.
// Save reemplaza todas las filas dentro de una transacción: o se guarda todo o nada.
type SnapshotRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSnapshotRepository construye el adaptador y asegura el esquema.
func NewSnapshotRepository(ctx context.Context, pool *pgxpool.Pool) (*SnapshotRepo, error) {
	if err := EnsureSchema(ctx, pool); err != nil {
		return nil, err
	}
	return &SnapshotRepo{pool: pool, tx: NewTxRunner(pool)}, nil
}

func productTable(kind entity.ProductKind) string {
	if kind == entity.KindAuxiliary {
		return "auxiliary_products"
	}
	return "colorants"
}

// Load lee las cuatro tablas. Solo se toman las columnas fuente.
func (r *SnapshotRepo) Load(ctx context.Context) (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	for _, kind := range entity.Kinds() {
		products, err := loadProducts(ctx, r.pool, kind)
		if err != nil {
			return nil, err
		}
		snap.Products = append(snap.Products, products...)
	}

	rows, err := r.pool.Query(ctx, `SELECT product_ref, date, qty_day, kind, id FROM consumption ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("cargar consumos: %w", err)
	}
	for rows.Next() {
		var c entity.ConsumptionRecord
		var kind string
		if err := rows.Scan(&c.ProductRef, &c.Date, &c.Qty, &kind, &c.ID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("leer consumo: %w", err)
		}
		c.Kind = entity.ProductKind(kind)
		snap.Consumption = append(snap.Consumption, &c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cargar consumos: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT reference, COALESCE(color_code, ''), date_in, date_out, status, COALESCE(note, '')
		FROM orders ORDER BY ctid`)
	if err != nil {
		return nil, fmt.Errorf("cargar pedidos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o entity.Order
		var status string
		var dateOut *time.Time
		if err := rows.Scan(&o.Reference, &o.ColorCode, &o.DateIn, &dateOut, &status, &o.Note); err != nil {
			return nil, fmt.Errorf("leer pedido: %w", err)
		}
		o.DateOut = dateOut
		o.Status = entity.OrderStatus(status)
		snap.Orders = append(snap.Orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cargar pedidos: %w", err)
	}
	return snap, nil
}

func loadProducts(ctx context.Context, q Querier, kind entity.ProductKind) ([]*entity.Product, error) {
	query := fmt.Sprintf(`SELECT reference, name, stock_initial, stock_min, date_entered FROM %s ORDER BY ctid`, productTable(kind))
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", productTable(kind), err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p := &entity.Product{Kind: kind}
		var entered *time.Time
		if err := rows.Scan(&p.Reference, &p.Name, &p.StockInitial, &p.StockMin, &entered); err != nil {
			return nil, fmt.Errorf("leer producto: %w", err)
		}
		if entered != nil {
			p.DateEntered = *entered
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Save reemplaza el contenido de las tablas por el snapshot dado.
func (r *SnapshotRepo) Save(ctx context.Context, snap *entity.Snapshot) error {
	consumed := make(map[entity.ProductKey]decimal.Decimal)
	for _, c := range snap.Consumption {
		consumed[c.ProductKey()] = consumed[c.ProductKey()].Add(c.Qty)
	}

	return r.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `TRUNCATE colorants, auxiliary_products, consumption, orders`); err != nil {
			return fmt.Errorf("vaciar tablas: %w", err)
		}
		for _, p := range snap.Products {
			query := fmt.Sprintf(`
				INSERT INTO %s (reference, name, stock_initial, stock_min, consumption, stock_real, date_entered, alert_flag)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, productTable(p.Kind))
			var entered *time.Time
			if !p.DateEntered.IsZero() {
				entered = &p.DateEntered
			}
			_, err := q.Exec(ctx, query, p.Reference, p.Name, p.StockInitial, p.StockMin,
				consumed[p.Key()], p.StockReal, entered, stock.IsAlert(p.StockReal, p.StockMin))
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, p.Reference)
				}
				return fmt.Errorf("guardar producto %s: %w", p.Reference, err)
			}
		}
		for _, c := range snap.Consumption {
			_, err := q.Exec(ctx, `
				INSERT INTO consumption (product_ref, date, qty_day, qty_week, kind, id)
				VALUES ($1, $2, $3, NULL, $4, $5)`,
				c.ProductRef, c.Date, c.Qty, string(c.Kind), c.ID)
			if err != nil {
				return fmt.Errorf("guardar consumo %d: %w", c.ID, err)
			}
		}
		for _, o := range snap.Orders {
			_, err := q.Exec(ctx, `
				INSERT INTO orders (reference, color_code, date_in, date_out, delay_days, processing_delay, status, note)
				VALUES ($1, $2, $3, $4, $5, NULL, $6, $7)`,
				o.Reference, nullableText(o.ColorCode), o.DateIn, o.DateOut, o.DelayDays, string(o.Status), nullableText(o.Note))
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: pedido %s", domain.ErrDuplicateReference, o.Reference)
				}
				return fmt.Errorf("guardar pedido %s: %w", o.Reference, err)
			}
		}
		return nil
	})
}
