package model

import (
	"time"

	"github.com/google/uuid"

	userModel "eventos_backend/internals/features/users/auth/model"
)

type EventModel struct {
	EventID             int64     `gorm:"column:event_id;primaryKey;autoIncrement"                     json:"event_id"`
	EventName           string    `gorm:"column:event_name;type:varchar(200);not null"                 json:"event_name"`
	EventDescription    *string   `gorm:"column:event_description;type:text"                           json:"event_description,omitempty"`
	EventPlace          *string   `gorm:"column:event_place;type:varchar(200)"                         json:"event_place,omitempty"`
	EventDocumentNumber *string   `gorm:"column:event_document_number;type:varchar(50)"                json:"event_document_number,omitempty"`
	EventGovernorAttends bool     `gorm:"column:event_governor_attends;not null;default:false"         json:"event_governor_attends"`
	EventAdminNotes     *string   `gorm:"column:event_admin_notes;type:text"                           json:"event_admin_notes,omitempty"`
	EventStatus         Status    `gorm:"column:event_status;type:varchar(20);not null;default:'programado';index:idx_events_status" json:"event_status"`
	EventCreatedBy      uuid.UUID `gorm:"column:event_created_by;type:uuid;not null;index:idx_events_created_by" json:"event_created_by"`
	EventMunicipalityID int       `gorm:"column:event_municipality_id;not null"                        json:"event_municipality_id"`

	EventStartsAt time.Time  `gorm:"column:event_starts_at;type:timestamptz;not null;index:idx_events_starts_at" json:"event_starts_at"`
	EventEndsAt   *time.Time `gorm:"column:event_ends_at;type:timestamptz"                                       json:"event_ends_at,omitempty"`

	EventPDFPath      *string `gorm:"column:event_pdf_path;type:varchar(500)"       json:"event_pdf_path,omitempty"`
	EventAdminPDFPath *string `gorm:"column:event_admin_pdf_path;type:varchar(500)" json:"event_admin_pdf_path,omitempty"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`

	Creator *userModel.UserModel `gorm:"foreignKey:EventCreatedBy;references:UserID" json:"creator,omitempty"`

	// NOTE: la dependencia del evento se deriva del creador (creator →
	// agency); no se duplica como columna.
}

func (EventModel) TableName() string {
	return "events"
}

// EditableBy: el creador solo edita mientras sigue programado; un admin
// edita en cualquier estado no terminal.
func (e *EventModel) EditableBy(userID uuid.UUID, isAdmin bool) bool {
	if isAdmin {
		return !e.EventStatus.IsTerminal()
	}
	return e.EventCreatedBy == userID && e.EventStatus == StatusProgramado
}
