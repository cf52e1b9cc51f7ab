package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Run creates the schema for the points ledger.
func Run(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS workers (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			pin VARCHAR(32) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_workers_pin (pin)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			points INT NOT NULL,
			quantity INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id CHAR(36) PRIMARY KEY,
			worker_id CHAR(36) NOT NULL,
			total_points INT NOT NULL,
			is_return BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_transactions_worker (worker_id),
			KEY idx_transactions_created (created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			transaction_id CHAR(36) NOT NULL,
			product_id CHAR(36) NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			points INT NOT NULL,
			KEY idx_items_transaction (transaction_id)
		)`,
		`CREATE TABLE IF NOT EXISTS admin_settings (
			id INT PRIMARY KEY,
			admin_pin VARCHAR(32) NOT NULL
		)`,
		`INSERT IGNORE INTO admin_settings (id, admin_pin) VALUES (1, '0000')`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
