// Package seed loads reference data (catalog, customer directory, a
// bootstrap cashier) into an empty database. All loaders are idempotent
// so they can run on every start.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// LoadProducts ingests a CSV with columns sku,name,description,price,stock.
// Rows whose SKU already exists are skipped. Returns the number of rows
// inserted.
func LoadProducts(db *sqlx.DB, csvPath, currency string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open product csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil { // header
		return 0, fmt.Errorf("read product header: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin product seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO products
		(id, name, sku, description, currency, price, stock_on_hand, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare product insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read product row: %w", err)
		}
		if len(record) < 5 {
			continue
		}

		sku := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		desc := strings.TrimSpace(record[2])
		price, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil || price.IsNegative() {
			continue
		}
		stock, err := strconv.Atoi(strings.TrimSpace(record[4]))
		if err != nil || stock < 0 {
			continue
		}
		if sku == "" || name == "" {
			continue
		}

		now := time.Now().UTC()
		if _, err := stmt.Exec(uuid.NewString(), name, sku, desc, currency, price, stock, now, now); err != nil {
			return 0, fmt.Errorf("insert product %s: %w", sku, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product seed: %w", err)
	}
	return rows, nil
}

// LoadCustomers ingests a CSV with columns id,label.
func LoadCustomers(db *sqlx.DB, csvPath string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open customer csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil { // header
		return 0, fmt.Errorf("read customer header: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin customer seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO customers (id, label) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare customer insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read customer row: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		id := strings.TrimSpace(record[0])
		label := strings.TrimSpace(record[1])
		if id == "" || label == "" {
			continue
		}

		if _, err := stmt.Exec(id, label); err != nil {
			return 0, fmt.Errorf("insert customer %s: %w", id, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit customer seed: %w", err)
	}
	return rows, nil
}

// EnsureCashier creates the named cashier if it does not exist yet.
func EnsureCashier(db *sqlx.DB, username, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash cashier password: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO cashiers (id, username, password) VALUES (?, ?, ?)`,
		uuid.NewString(), username, hashed)
	if err != nil {
		return fmt.Errorf("insert cashier %s: %w", username, err)
	}
	return nil
}
