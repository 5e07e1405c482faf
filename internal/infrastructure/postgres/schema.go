package postgres

import (
	"context"
	"fmt"
)

// schema tablas del snapshot. Las columnas derivadas (stock_real, alert_flag, delay_days)
// se escriben para lectura externa pero nunca se leen de vuelta.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS colorants (
		reference     TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		stock_initial NUMERIC(14,3) NOT NULL,
		stock_min     NUMERIC(14,3) NOT NULL,
		consumption   NUMERIC(14,3) NOT NULL DEFAULT 0,
		stock_real    NUMERIC(14,3) NOT NULL,
		date_entered  DATE,
		alert_flag    BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS auxiliary_products (
		reference     TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		stock_initial NUMERIC(14,3) NOT NULL,
		stock_min     NUMERIC(14,3) NOT NULL,
		consumption   NUMERIC(14,3) NOT NULL DEFAULT 0,
		stock_real    NUMERIC(14,3) NOT NULL,
		date_entered  DATE,
		alert_flag    BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS consumption (
		product_ref TEXT NOT NULL,
		date        DATE NOT NULL,
		qty_day     NUMERIC(14,3) NOT NULL,
		qty_week    NUMERIC(14,3),
		kind        TEXT NOT NULL,
		id          BIGINT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		reference        TEXT PRIMARY KEY,
		color_code       TEXT,
		date_in          DATE NOT NULL,
		date_out         DATE,
		delay_days       INTEGER,
		processing_delay INTEGER,
		status           TEXT NOT NULL,
		note             TEXT
	)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}
