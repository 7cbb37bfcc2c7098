package database

import (
	"database/sql"
	"fmt"
	"log"

	"splitup-be/internal/config"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	cfg := config.GetConfig().Database

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	// Create users table
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin', 'super_admin')),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Create orders table
	ordersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		service_name VARCHAR(255) NOT NULL,
		plan_name VARCHAR(255) NOT NULL,
		split_between INTEGER NOT NULL,
		amount_paid INTEGER NOT NULL CHECK (amount_paid >= 0),
		amount_remaining INTEGER NOT NULL CHECK (amount_remaining >= 0),
		total_amount INTEGER NOT NULL CHECK (total_amount > 0),
		payment_method VARCHAR(20) NOT NULL CHECK (payment_method IN ('UPI', 'Card', 'Netbanking')),
		status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid', 'active', 'completed')),
		credential_username VARCHAR(255),
		credential_password VARCHAR(255),
		credential_additional_info TEXT,
		credential_sent_at TIMESTAMP,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	ordersIndexes := `
	CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	CREATE INDEX IF NOT EXISTS idx_orders_service_plan ON orders(service_name, plan_name);
	`

	tables := []string{
		usersTable,
		ordersTable,
		ordersIndexes,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
