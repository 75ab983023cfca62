package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateEvents, downCreateEvents)
}

func upCreateEvents(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE events(
			event_id BIGSERIAL PRIMARY KEY,
			event_name VARCHAR(200) NOT NULL,
			event_description TEXT,
			event_place VARCHAR(200),
			event_document_number VARCHAR(50),
			event_governor_attends BOOLEAN NOT NULL DEFAULT FALSE,
			event_admin_notes TEXT,
			event_status VARCHAR(20) NOT NULL DEFAULT 'programado',
			event_created_by UUID NOT NULL REFERENCES users(user_id),
			event_municipality_id INTEGER NOT NULL REFERENCES municipalities(municipality_id),
			event_starts_at TIMESTAMPTZ NOT NULL,
			event_ends_at TIMESTAMPTZ,
			event_pdf_path VARCHAR(500),
			event_admin_pdf_path VARCHAR(500),
			event_created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			event_updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX idx_events_status ON events(event_status);
		CREATE INDEX idx_events_starts_at ON events(event_starts_at);
		CREATE INDEX idx_events_created_by ON events(event_created_by);

		-- El motor de estados barre por (status, ends_at).
		CREATE INDEX idx_events_status_ends_at ON events(event_status, event_ends_at);
	`)
	return err
}

func downCreateEvents(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE events;`)
	return err
}
