// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"storekeeper/internal/core/id"
	"storekeeper/internal/infrastructure/storage/postgres"
	"storekeeper/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	categoryIDs, err := seedCategories(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed categories", "error", err)
	}

	if err := seedProducts(ctx, pool, log, categoryIDs); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	if err := seedParties(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed parties", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedCategories(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (map[string]id.ID, error) {
	categories := []struct {
		code string
		name string
	}{
		{"CAT-2026-00001", "Electronics"},
		{"CAT-2026-00002", "Office Supplies"},
		{"CAT-2026-00003", "Furniture"},
	}

	ids := make(map[string]id.ID, len(categories))

	for _, c := range categories {
		categoryID := id.New()

		tag, err := pool.Exec(ctx, `
			INSERT INTO cat_categories (id, code, name, description, deletion_mark, version)
			VALUES ($1, $2, $3, NULL, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, categoryID, c.code, c.name)
		if err != nil {
			return nil, fmt.Errorf("insert category %s: %w", c.code, err)
		}

		// On conflict reuse the existing row so product references stay valid.
		if tag.RowsAffected() == 0 {
			err = pool.QueryRow(ctx, `
				SELECT id FROM cat_categories WHERE code = $1 AND deletion_mark = FALSE
			`, c.code).Scan(&categoryID)
			if err != nil {
				return nil, fmt.Errorf("fetch existing category %s: %w", c.code, err)
			}
		}

		ids[c.code] = categoryID
	}

	log.Infow("categories seeded", "count", len(categories))
	return ids, nil
}

func seedProducts(ctx context.Context, pool *postgres.Pool, log *logger.Logger, categoryIDs map[string]id.ID) error {
	products := []struct {
		code          string
		name          string
		categoryCode  string
		salePrice     float64
		purchasePrice float64
	}{
		{"PRD-2026-00001", "Wireless Mouse", "CAT-2026-00001", 29.99, 14.50},
		{"PRD-2026-00002", "Mechanical Keyboard", "CAT-2026-00001", 89.99, 45.00},
		{"PRD-2026-00003", "USB-C Hub", "CAT-2026-00001", 49.99, 22.00},
		{"PRD-2026-00004", "Notebook A5", "CAT-2026-00002", 4.99, 1.20},
		{"PRD-2026-00005", "Ballpoint Pen (box)", "CAT-2026-00002", 12.50, 5.00},
		{"PRD-2026-00006", "Standing Desk", "CAT-2026-00003", 399.00, 210.00},
	}

	for _, p := range products {
		var categoryID *id.ID
		if cid, ok := categoryIDs[p.categoryCode]; ok {
			categoryID = &cid
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO cat_products (
				id, code, name, category_id, sale_price, purchase_price,
				description, image_url, deletion_mark, version
			)
			VALUES ($1, $2, $3, $4, $5, $6, NULL, NULL, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), p.code, p.name, categoryID, p.salePrice, p.purchasePrice)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.code, err)
		}
	}

	log.Infow("products seeded", "count", len(products))
	return nil
}

func seedParties(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	parties := []struct {
		code       string
		firstName  string
		lastName   string
		email      string
		isSupplier bool
	}{
		{"PTY-2026-00001", "Alice", "Johnson", "alice.johnson@example.com", false},
		{"PTY-2026-00002", "Bob", "Martinez", "bob.martinez@example.com", false},
		{"PTY-2026-00003", "Northwind", "Trading", "sales@northwind.example.com", true},
		{"PTY-2026-00004", "Acme", "Wholesale", "orders@acme.example.com", true},
	}

	for _, p := range parties {
		name := p.firstName + " " + p.lastName

		_, err := pool.Exec(ctx, `
			INSERT INTO cat_parties (
				id, code, name, first_name, last_name, email, phone,
				is_supplier, deletion_mark, version
			)
			VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), p.code, name, p.firstName, p.lastName, p.email, p.isSupplier)
		if err != nil {
			return fmt.Errorf("insert party %s: %w", p.code, err)
		}
	}

	log.Infow("parties seeded", "count", len(parties))
	return nil
}
