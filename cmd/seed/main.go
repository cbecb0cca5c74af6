// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"warelog/internal/domain/auth"
	"warelog/internal/infrastructure/storage/postgres"
	"warelog/pkg/logger"
)

func main() {
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

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID int64
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE username = $1`,
		adminUsername,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "username", adminUsername, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()

	var userID int64
	err = pool.Pool.QueryRow(ctx, `
		INSERT INTO users (
			username, first_name, last_name, email, hashed_password,
			is_active, user_role, created_at, updated_at
		)
		VALUES ($1, 'System', 'Admin', $2, $3, true, $4, $5, $5)
		RETURNING id
	`, adminUsername, adminUsername+"@warelog.local", string(passwordHash), auth.RoleAdmin, now).Scan(&userID)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"username", adminUsername,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	now := time.Now().UTC()

	// 1. Location
	var locationID int64
	err := pool.Pool.QueryRow(ctx, `
		INSERT INTO locations (address, city, state, zip_code, created_at, updated_at)
		VALUES ('12 Industrijska zona', 'Banja Luka', 'RS', '78000', $1, $1)
		RETURNING id
	`, now).Scan(&locationID)
	if err != nil {
		return fmt.Errorf("seed location: %w", err)
	}

	// 2. Warehouse type + warehouse
	var warehouseTypeID int64
	err = pool.Pool.QueryRow(ctx, `
		INSERT INTO warehouse_types (type_name, description, requires_temp_control, created_at, updated_at)
		VALUES ('Dry storage', 'Ambient temperature storage', false, $1, $1)
		RETURNING id
	`, now).Scan(&warehouseTypeID)
	if err != nil {
		return fmt.Errorf("seed warehouse type: %w", err)
	}

	var warehouseID int64
	err = pool.Pool.QueryRow(ctx, `
		INSERT INTO warehouses (name, location_id, warehouse_type_id, is_active, created_at, updated_at)
		VALUES ('Central warehouse', $1, $2, true, $3, $3)
		RETURNING id
	`, locationID, warehouseTypeID, now).Scan(&warehouseID)
	if err != nil {
		return fmt.Errorf("seed warehouse: %w", err)
	}

	// 3. Category + product
	var categoryID int64
	err = pool.Pool.QueryRow(ctx, `
		INSERT INTO categories (name, hierarchy_level, category_type, created_at, updated_at)
		VALUES ('Beverages', 1, 'goods', $1, $1)
		RETURNING id
	`, now).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	var productID int64
	err = pool.Pool.QueryRow(ctx, `
		INSERT INTO products (product_code, name, category_id, unit_of_measure, is_active, created_at, updated_at)
		VALUES ('BEV-0001', 'Mineral water 1.5L', $1, 'pcs', true, $2, $2)
		RETURNING id
	`, categoryID, now).Scan(&productID)
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	// 4. Supplier
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO suppliers (supplier_name, location_id, contact_person, phone, is_active, created_at, updated_at)
		VALUES ('Aqua Distribucija d.o.o.', $1, 'Milan Petrovic', '+387 51 123 456', true, $2, $2)
	`, locationID, now)
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	// 5. Employee
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO employees (first_name, last_name, position, employment_date, is_active, created_at, updated_at)
		VALUES ('Jovana', 'Markovic', 'Warehouse worker', $1, true, $1, $1)
	`, now)
	if err != nil {
		return fmt.Errorf("seed employee: %w", err)
	}

	// 6. Batch for the demo product
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO batches (product_id, serial_number, lot_number, quantity, batch_status, created_at, updated_at)
		VALUES ($1, 'SN-0001', 'LOT-2026-001', 0, 'Active', $2, $2)
	`, productID, now)
	if err != nil {
		return fmt.Errorf("seed batch: %w", err)
	}

	log.Infow("demo data seeded",
		"warehouse_id", warehouseID,
		"product_id", productID,
	)

	return nil
}
