// Package sqlstore persiste el snapshot del inventario sobre database/sql
// (SQLite embebido con modernc.org/sqlite o MySQL con go-sql-driver/mysql).
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql" // driver "mysql"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // driver "sqlite", SQLite en Go puro

	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/repository"
	"github.com/jhoicas/colorstock/internal/domain/stock"
)

var _ repository.SnapshotRepository = (*Store)(nil)

// Store adaptador de snapshot sobre una conexión database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite abre (o crea) el archivo SQLite en modo WAL.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de la base: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open(SQLite.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// un único escritor; con :memory: cada conexión sería otra base
	db.SetMaxOpenConns(1)
	return New(ctx, db, SQLite)
}

// OpenMySQL abre la conexión MySQL con el DSN del driver (user:pass@tcp(host:3306)/db).
func OpenMySQL(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(MySQL.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir mysql: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	return New(ctx, db, MySQL)
}

// New verifica la conexión y crea el esquema.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}
	for _, stmt := range dialect.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("crear esquema %s: %w", dialect.Name, err)
		}
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error { return s.db.Close() }

func productTable(kind entity.ProductKind) string {
	if kind == entity.KindAuxiliary {
		return "auxiliary_products"
	}
	return "colorants"
}

// Load lee solo las columnas fuente; los derivados se recalculan en el motor.
func (s *Store) Load(ctx context.Context) (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	for _, kind := range entity.Kinds() {
		if err := s.loadProducts(ctx, kind, snap); err != nil {
			return nil, err
		}
	}
	if err := s.loadConsumption(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadOrders(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadProducts(ctx context.Context, kind entity.ProductKind, snap *entity.Snapshot) error {
	query := fmt.Sprintf(`SELECT reference, name, stock_initial, stock_min, date_entered FROM %s ORDER BY seq`, productTable(kind))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("cargar %s: %w", productTable(kind), err)
	}
	defer rows.Close()
	for rows.Next() {
		p := &entity.Product{Kind: kind}
		var entered sql.NullString
		if err := rows.Scan(&p.Reference, &p.Name, &p.StockInitial, &p.StockMin, &entered); err != nil {
			return fmt.Errorf("leer producto: %w", err)
		}
		if entered.Valid && entered.String != "" {
			d, err := entity.ParseDate(entered.String)
			if err != nil {
				return fmt.Errorf("producto %s: %w", p.Reference, err)
			}
			p.DateEntered = d
		}
		snap.Products = append(snap.Products, p)
	}
	return rows.Err()
}

func (s *Store) loadConsumption(ctx context.Context, snap *entity.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `SELECT product_ref, date, qty_day, kind, id FROM consumption ORDER BY id`)
	if err != nil {
		return fmt.Errorf("cargar consumos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c := &entity.ConsumptionRecord{}
		var date, kind string
		if err := rows.Scan(&c.ProductRef, &date, &c.Qty, &kind, &c.ID); err != nil {
			return fmt.Errorf("leer consumo: %w", err)
		}
		if c.Date, err = entity.ParseDate(date); err != nil {
			return fmt.Errorf("consumo %d: %w", c.ID, err)
		}
		c.Kind = entity.ProductKind(kind)
		snap.Consumption = append(snap.Consumption, c)
	}
	return rows.Err()
}

func (s *Store) loadOrders(ctx context.Context, snap *entity.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reference, color_code, date_in, date_out, status, note
		FROM orders ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("cargar pedidos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		o := &entity.Order{}
		var colorCode, dateOut, note sql.NullString
		var dateIn, status string
		if err := rows.Scan(&o.Reference, &colorCode, &dateIn, &dateOut, &status, &note); err != nil {
			return fmt.Errorf("leer pedido: %w", err)
		}
		if o.DateIn, err = entity.ParseDate(dateIn); err != nil {
			return fmt.Errorf("pedido %s: %w", o.Reference, err)
		}
		if dateOut.Valid && dateOut.String != "" {
			d, err := entity.ParseDate(dateOut.String)
			if err != nil {
				return fmt.Errorf("pedido %s: %w", o.Reference, err)
			}
			o.DateOut = &d
		}
		o.ColorCode = colorCode.String
		o.Note = note.String
		o.Status = entity.OrderStatus(status)
		snap.Orders = append(snap.Orders, o)
	}
	return rows.Err()
}

// Save reemplaza todas las filas en una transacción.
func (s *Store) Save(ctx context.Context, snap *entity.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"colorants", "auxiliary_products", "consumption", "orders"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("vaciar %s: %w", table, err)
		}
	}

	consumed := make(map[entity.ProductKey]decimal.Decimal)
	for _, c := range snap.Consumption {
		consumed[c.ProductKey()] = consumed[c.ProductKey()].Add(c.Qty)
	}
	for i, p := range snap.Products {
		query := fmt.Sprintf(`
			INSERT INTO %s (reference, name, stock_initial, stock_min, consumption, stock_real, date_entered, alert_flag, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, productTable(p.Kind))
		_, err := tx.ExecContext(ctx, query, p.Reference, p.Name, p.StockInitial, p.StockMin,
			consumed[p.Key()], p.StockReal, nullString(entity.FormatDate(p.DateEntered)),
			boolInt(stock.IsAlert(p.StockReal, p.StockMin)), i)
		if err != nil {
			return fmt.Errorf("guardar producto %s: %w", p.Reference, err)
		}
	}
	for _, c := range snap.Consumption {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO consumption (product_ref, date, qty_day, qty_week, kind, id)
			VALUES (?, ?, ?, NULL, ?, ?)`,
			c.ProductRef, entity.FormatDate(c.Date), c.Qty, string(c.Kind), c.ID)
		if err != nil {
			return fmt.Errorf("guardar consumo %d: %w", c.ID, err)
		}
	}
	for i, o := range snap.Orders {
		var dateOut sql.NullString
		if o.DateOut != nil {
			dateOut = nullString(entity.FormatDate(*o.DateOut))
		}
		var delay sql.NullInt64
		if o.DelayDays != nil {
			delay = sql.NullInt64{Int64: int64(*o.DelayDays), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (reference, color_code, date_in, date_out, delay_days, processing_delay, status, note, seq)
			VALUES (?, ?, ?, ?, ?, NULL, ?, ?, ?)`,
			o.Reference, nullString(o.ColorCode), entity.FormatDate(o.DateIn), dateOut, delay,
			string(o.Status), nullString(o.Note), i)
		if err != nil {
			return fmt.Errorf("guardar pedido %s: %w", o.Reference, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
