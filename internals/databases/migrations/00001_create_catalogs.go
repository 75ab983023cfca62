package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCatalogs, downCreateCatalogs)
}

func upCreateCatalogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE agency_heads(
			agency_head_id INTEGER PRIMARY KEY,
			agency_head_name VARCHAR(255) NOT NULL
		);

		CREATE TABLE agencies(
			agency_id INTEGER PRIMARY KEY,
			agency_name VARCHAR(255) NOT NULL,
			agency_head_id INTEGER REFERENCES agency_heads(agency_head_id) ON DELETE SET NULL
		);

		CREATE TABLE municipalities(
			municipality_id INTEGER PRIMARY KEY,
			municipality_name VARCHAR(255) NOT NULL
		);
	`)
	return err
}

func downCreateCatalogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TABLE municipalities;
		DROP TABLE agencies;
		DROP TABLE agency_heads;
	`)
	return err
}
