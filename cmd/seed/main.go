// Command seed loads catalog and customer CSVs into the database and
// bootstraps a cashier account.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dwikikusuma/kasir-pos/internal/database"
	"github.com/dwikikusuma/kasir-pos/internal/seed"
	"github.com/dwikikusuma/kasir-pos/pkg/config"
	"github.com/dwikikusuma/kasir-pos/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "seed", Env: cfg.AppEnv, Level: cfg.LogLevel})

	products := flag.String("products", "", "CSV of products (sku,name,description,price,stock)")
	customers := flag.String("customers", "", "CSV of customers (id,label)")
	cashierUser := flag.String("cashier-user", "", "bootstrap cashier username")
	cashierPass := flag.String("cashier-pass", "", "bootstrap cashier password")
	flag.Parse()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Error("migration failed", slog.Any("err", err))
		os.Exit(1)
	}

	if *products != "" {
		n, err := seed.LoadProducts(db, *products, cfg.Currency)
		if err != nil {
			log.Error("product seed failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("products loaded", slog.Int("rows", n))
	}

	if *customers != "" {
		n, err := seed.LoadCustomers(db, *customers)
		if err != nil {
			log.Error("customer seed failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("customers loaded", slog.Int("rows", n))
	}

	if *cashierUser != "" && *cashierPass != "" {
		if err := seed.EnsureCashier(db, *cashierUser, *cashierPass); err != nil {
			log.Error("cashier bootstrap failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("cashier ready", slog.String("username", *cashierUser))
	}
}
