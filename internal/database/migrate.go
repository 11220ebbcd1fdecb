package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migrations holds the full schema as idempotent DDL statements, run in
// order at startup.  InnoDB is required: the reservation admission path
// relies on SELECT ... FOR UPDATE row locks on `tables`.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)  NOT NULL,
		password_hash VARCHAR(255)  NOT NULL,
		role          VARCHAR(16)   NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1)    NOT NULL DEFAULT 1,
		created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS restaurants (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		owner_id   BIGINT UNSIGNED NOT NULL,
		name       VARCHAR(255) NOT NULL,
		location   VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_restaurants_owner (owner_id),
		CONSTRAINT fk_restaurants_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS tables (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		number        INT UNSIGNED NOT NULL,
		capacity      INT UNSIGNED NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_tables_restaurant_number (restaurant_id, number),
		CONSTRAINT fk_tables_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		name          VARCHAR(255)  NOT NULL,
		description   VARCHAR(1024) NOT NULL DEFAULT '',
		price         DECIMAL(10,2) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_menu_items_restaurant (restaurant_id),
		CONSTRAINT fk_menu_items_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS pricing_rules (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id      BIGINT UNSIGNED NOT NULL,
		table_id           BIGINT UNSIGNED NULL,
		category_id        BIGINT UNSIGNED NULL,
		day_of_week        TINYINT NOT NULL,
		start_time         CHAR(5) NOT NULL,
		end_time           CHAR(5) NOT NULL,
		adjustment_percent INT NOT NULL,
		is_active          TINYINT(1) NOT NULL DEFAULT 1,
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_rules_lookup (restaurant_id, day_of_week, is_active),
		CONSTRAINT fk_rules_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id),
		CONSTRAINT fk_rules_table FOREIGN KEY (table_id) REFERENCES tables (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		restaurant_id  BIGINT UNSIGNED NOT NULL,
		table_id       BIGINT UNSIGNED NOT NULL,
		customer_name  VARCHAR(255) NOT NULL,
		party_size     INT NOT NULL,
		starts_at      DATETIME NOT NULL,
		ends_at        DATETIME NOT NULL,
		status         VARCHAR(20) NOT NULL DEFAULT 'confirmed',
		is_prepaid     TINYINT(1) NOT NULL DEFAULT 0,
		prepaid_amount DECIMAL(10,2) NULL,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_window (table_id, starts_at, ends_at),
		CONSTRAINT fk_reservations_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id),
		CONSTRAINT fk_reservations_table FOREIGN KEY (table_id) REFERENCES tables (id)
	) ENGINE=InnoDB`,
}

// Migrate applies the schema at startup.  Statements are idempotent
// (CREATE TABLE IF NOT EXISTS) so repeated boots are safe; there is no
// down path.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
