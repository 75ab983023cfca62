package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateEventStatusLogs, downCreateEventStatusLogs)
}

func upCreateEventStatusLogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE event_status_logs(
			event_status_log_id BIGSERIAL PRIMARY KEY,
			event_status_log_event_id BIGINT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
			event_status_log_previous VARCHAR(20),
			event_status_log_new VARCHAR(20) NOT NULL,
			event_status_log_user_id UUID REFERENCES users(user_id) ON DELETE SET NULL,
			event_status_log_comment TEXT,
			event_status_log_automatic BOOLEAN NOT NULL DEFAULT FALSE,
			event_status_log_changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX idx_event_status_logs_event_id
			ON event_status_logs(event_status_log_event_id, event_status_log_changed_at DESC);
	`)
	return err
}

func downCreateEventStatusLogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE event_status_logs;`)
	return err
}
