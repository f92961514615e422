package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema. Statements are idempotent; the binary
// runs them on every start.
func Migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            sku TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL DEFAULT '',
            currency TEXT NOT NULL,
            price TEXT NOT NULL,
            stock_on_hand INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            label TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS cashiers (
            id TEXT PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL,
            cashier_id TEXT NOT NULL DEFAULT '',
            payment_method TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            currency TEXT NOT NULL,
            subtotal TEXT NOT NULL,
            total_discount TEXT NOT NULL,
            total_tax TEXT NOT NULL,
            grand_total TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            FOREIGN KEY(customer_id) REFERENCES customers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS sale_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sale_id TEXT NOT NULL,
            product_id TEXT NOT NULL,
            name TEXT NOT NULL,
            sku TEXT NOT NULL,
            unit_price TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            discount_percent TEXT NOT NULL,
            tax_percent TEXT NOT NULL,
            line_total TEXT NOT NULL,
            position INTEGER NOT NULL DEFAULT 0,
            FOREIGN KEY(sale_id) REFERENCES sales(id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items(sale_id);`,
	}

	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
