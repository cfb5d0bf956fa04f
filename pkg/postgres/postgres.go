package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ds124wfegd/boxoffice/config"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host":   cfg.Host,
		"dbname": cfg.DBName,
	}).Info("Successfully connected to PostgreSQL")
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id UUID PRIMARY KEY,
		item_code VARCHAR(50) NOT NULL,
		item_name VARCHAR(255) NOT NULL,
		customer_id VARCHAR(50) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(12,2) NOT NULL,
		gross_amount NUMERIC(12,2) NOT NULL,
		net_amount NUMERIC(12,2) NOT NULL,
		discount_applied BOOLEAN NOT NULL DEFAULT FALSE,
		premium_upgrade BOOLEAN NOT NULL DEFAULT FALSE,
		scheduled_at TIMESTAMP NOT NULL,
		sold_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Indexes
	`CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_item_code ON sales(item_code)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(sold_at)`,
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
