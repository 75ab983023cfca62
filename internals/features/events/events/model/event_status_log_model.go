package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatusLogModel es la bitácora append-only de cambios de estado.
// Nunca se actualiza ni se borra una fila; solo se insertan.
type EventStatusLogModel struct {
	EventStatusLogID        int64      `gorm:"column:event_status_log_id;primaryKey;autoIncrement" json:"event_status_log_id"`
	EventStatusLogEventID   int64      `gorm:"column:event_status_log_event_id;not null;index:idx_event_status_logs_event_id" json:"event_status_log_event_id"`
	EventStatusLogPrevious  *Status    `gorm:"column:event_status_log_previous;type:varchar(20)"   json:"event_status_log_previous,omitempty"`
	EventStatusLogNew       Status     `gorm:"column:event_status_log_new;type:varchar(20);not null" json:"event_status_log_new"`
	EventStatusLogUserID    *uuid.UUID `gorm:"column:event_status_log_user_id;type:uuid"           json:"event_status_log_user_id,omitempty"`
	EventStatusLogComment   string     `gorm:"column:event_status_log_comment;type:text"           json:"event_status_log_comment"`
	EventStatusLogAutomatic bool       `gorm:"column:event_status_log_automatic;not null;default:false" json:"event_status_log_automatic"`
	EventStatusLogChangedAt time.Time  `gorm:"column:event_status_log_changed_at;type:timestamptz;autoCreateTime" json:"event_status_log_changed_at"`
}

func (EventStatusLogModel) TableName() string {
	return "event_status_logs"
}
