package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL applied at startup, in dependency order.  Every
// statement is idempotent so Apply can run on each boot.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(80)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(120) NOT NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_tables (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		location VARCHAR(50)  NOT NULL,
		capacity INT UNSIGNED NOT NULL,
		CONSTRAINT chk_tables_capacity CHECK (capacity > 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// uq_reservations_slot is what keeps a table to one booking per slot.
	`CREATE TABLE IF NOT EXISTS reservations (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id     BIGINT UNSIGNED NOT NULL,
		table_id    BIGINT UNSIGNED NOT NULL,
		res_date    DATE NOT NULL,
		time_slot   ENUM('lunch','dinner') NOT NULL,
		name        VARCHAR(100) NOT NULL,
		phone       VARCHAR(20)  NOT NULL,
		credit_card VARCHAR(30)  NOT NULL,
		guests      INT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reservations_slot (table_id, res_date, time_slot),
		KEY idx_reservations_user (user_id),
		CONSTRAINT fk_reservations_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_reservations_table FOREIGN KEY (table_id) REFERENCES restaurant_tables (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// reservation_id is deliberately not a foreign key: the row it points
	// at is deleted in the same transaction that writes this one.
	`CREATE TABLE IF NOT EXISTS cancelled_reservations (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		reservation_id BIGINT UNSIGNED NOT NULL,
		user_id        BIGINT UNSIGNED NOT NULL,
		cancelled_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_cancelled_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_sessions_token (token_hash),
		KEY idx_sessions_user (user_id),
		CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Apply creates any missing tables.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
