package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"garastore/internal/config"
	"garastore/internal/database"
)

var tables = []string{"users", "products", "reviews", "orders", "order_items"}

func main() {
	migrate := flag.Bool("migrate", false, "apply the schema before checking")
	flag.Parse()

	if err := run(*migrate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	if migrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	fmt.Println("\nTable row counts:")
	for _, table := range tables {
		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			fmt.Printf("  - %s: missing (%v)\n", table, err)
			continue
		}
		fmt.Printf("  - %s: %d\n", table, count)
	}
	return nil
}
