package sqlstore

import "fmt"

// Dialect diferencias de DDL entre motores. Ambos usan placeholders "?".
type Dialect struct {
	Name   string // nombre del driver database/sql
	text   string // tipo para claves de texto
	number string // tipo para cantidades
}

// Dialectos soportados.
var (
	SQLite = Dialect{Name: "sqlite", text: "TEXT", number: "TEXT"}
	MySQL  = Dialect{Name: "mysql", text: "VARCHAR(64)", number: "DECIMAL(14,3)"}
)

// DialectFor devuelve el dialecto del driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Name:
		return SQLite, nil
	case MySQL.Name:
		return MySQL, nil
	}
	return Dialect{}, fmt.Errorf("sqlstore: driver %q no soportado", driver)
}

// Fechas como texto AAAA-MM-DD en ambos motores; evita depender de parseTime en MySQL.
func (d Dialect) schema() []string {
	product := func(table string) string {
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			reference     %s NOT NULL PRIMARY KEY,
			name          %s NOT NULL,
			stock_initial %s NOT NULL,
			stock_min     %s NOT NULL,
			consumption   %s NOT NULL,
			stock_real    %s NOT NULL,
			date_entered  VARCHAR(10),
			alert_flag    INTEGER NOT NULL DEFAULT 0,
			seq           INTEGER NOT NULL
		)`, table, d.text, d.text, d.number, d.number, d.number, d.number)
	}
	return []string{
		product("colorants"),
		product("auxiliary_products"),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS consumption (
			product_ref %s NOT NULL,
			date        VARCHAR(10) NOT NULL,
			qty_day     %s NOT NULL,
			qty_week    %s,
			kind        VARCHAR(16) NOT NULL,
			id          BIGINT NOT NULL PRIMARY KEY
		)`, d.text, d.number, d.number),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS orders (
			reference        %s NOT NULL PRIMARY KEY,
			color_code       %s,
			date_in          VARCHAR(10) NOT NULL,
			date_out         VARCHAR(10),
			delay_days       INTEGER,
			processing_delay INTEGER,
			status           VARCHAR(16) NOT NULL,
			note             %s,
			seq              INTEGER NOT NULL
		)`, d.text, d.text, d.text),
	}
}
