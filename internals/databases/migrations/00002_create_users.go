package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsers, downCreateUsers)
}

func upCreateUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE users(
			user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_username VARCHAR(150) NOT NULL UNIQUE,
			user_email VARCHAR(254) NOT NULL UNIQUE,
			user_password_hash VARCHAR(255) NOT NULL,
			user_full_name VARCHAR(100) NOT NULL,
			user_address TEXT NOT NULL DEFAULT '',
			user_gender CHAR(1) NOT NULL DEFAULT 'O',
			user_role VARCHAR(10) NOT NULL DEFAULT 'captura',
			user_is_active BOOLEAN NOT NULL DEFAULT TRUE,
			user_agency_id INTEGER REFERENCES agencies(agency_id) ON DELETE SET NULL,
			user_created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			user_updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX idx_users_agency_id ON users(user_agency_id);
	`)
	return err
}

func downCreateUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE users;`)
	return err
}
