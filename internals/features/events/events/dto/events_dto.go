package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"eventos_backend/internals/features/events/events/model"
)

// Reglas de negocio sobre fechas (se aplican una sola vez, al validar):
//   - si no hay fecha fin, se asigna 23:59:59 del día de inicio
//   - la fecha fin debe ser posterior al inicio
//   - el evento no puede durar más de 24 horas
//   - al crear (no al editar), el inicio debe ser futuro

var (
	ErrStartRequired  = errors.New("la fecha de inicio es obligatoria")
	ErrStartInPast    = errors.New("la fecha de inicio debe ser posterior a la fecha actual")
	ErrEndBeforeStart = errors.New("la fecha de finalización debe ser posterior a la fecha de inicio")
	ErrTooLong        = errors.New("el evento no puede durar más de 24 horas")
)

const maxEventDuration = 24 * time.Hour

// 🔹 Request para crear un evento
type CreateEventRequest struct {
	EventName           string     `json:"event_name" validate:"required,max=200"`
	EventDescription    *string    `json:"event_description"`
	EventPlace          *string    `json:"event_place" validate:"omitempty,max=200"`
	EventDocumentNumber *string    `json:"event_document_number" validate:"omitempty,max=50"`
	EventMunicipalityID int        `json:"event_municipality_id" validate:"required"`
	EventStartsAt       time.Time  `json:"event_starts_at" validate:"required"`
	EventEndsAt         *time.Time `json:"event_ends_at"`

	// Solo admin; para captura se ignoran en el controller.
	EventGovernorAttends *bool   `json:"event_governor_attends"`
	EventAdminNotes      *string `json:"event_admin_notes"`
}

// NormalizeSchedule aplica el default de fin de día y valida la ventana.
// isNew controla la regla de "inicio futuro" (no aplica al editar).
func NormalizeSchedule(startsAt time.Time, endsAt *time.Time, now time.Time, isNew bool) (time.Time, error) {
	if startsAt.IsZero() {
		return time.Time{}, ErrStartRequired
	}
	if isNew && !startsAt.After(now) {
		return time.Time{}, ErrStartInPast
	}

	end := time.Time{}
	if endsAt != nil && !endsAt.IsZero() {
		end = *endsAt
	} else {
		y, m, d := startsAt.Date()
		end = time.Date(y, m, d, 23, 59, 59, 0, startsAt.Location())
	}

	if !end.After(startsAt) {
		return time.Time{}, ErrEndBeforeStart
	}
	if end.Sub(startsAt) > maxEventDuration {
		return time.Time{}, ErrTooLong
	}
	return end, nil
}

func (r *CreateEventRequest) ToModel(creatorID uuid.UUID, endsAt time.Time) *model.EventModel {
	ev := &model.EventModel{
		EventName:           r.EventName,
		EventDescription:    r.EventDescription,
		EventPlace:          r.EventPlace,
		EventDocumentNumber: r.EventDocumentNumber,
		EventMunicipalityID: r.EventMunicipalityID,
		EventStartsAt:       r.EventStartsAt,
		EventEndsAt:         &endsAt,
		EventStatus:         model.StatusProgramado,
		EventCreatedBy:      creatorID,
	}
	if r.EventGovernorAttends != nil {
		ev.EventGovernorAttends = *r.EventGovernorAttends
	}
	if r.EventAdminNotes != nil {
		ev.EventAdminNotes = r.EventAdminNotes
	}
	return ev
}

// 🔹 Request para editar (campos opcionales estilo PATCH)
type UpdateEventRequest struct {
	EventName           *string    `json:"event_name" validate:"omitempty,max=200"`
	EventDescription    *string    `json:"event_description"`
	EventPlace          *string    `json:"event_place" validate:"omitempty,max=200"`
	EventDocumentNumber *string    `json:"event_document_number" validate:"omitempty,max=50"`
	EventMunicipalityID *int       `json:"event_municipality_id"`
	EventStartsAt       *time.Time `json:"event_starts_at"`
	EventEndsAt         *time.Time `json:"event_ends_at"`

	// Solo admin
	EventGovernorAttends *bool         `json:"event_governor_attends"`
	EventAdminNotes      *string       `json:"event_admin_notes"`
	EventStatus          *model.Status `json:"event_status"`
}

// 🔹 Filtros de listado (dashboard, mis eventos, export)
type EventFilterQuery struct {
	Search          string `query:"busqueda"`
	Status          string `query:"estado"`
	GovernorAttends string `query:"gobernador"` // "true" / "false" / ""
	DateFrom        string `query:"fecha_desde"` // YYYY-MM-DD
	DateTo          string `query:"fecha_hasta"` // YYYY-MM-DD
	MunicipalityID  int    `query:"municipio"`
	AgencyID        int    `query:"dependencia"`
	Folio           int64  `query:"folio"`
	Period          string `query:"periodo"` // dia | semana | mes | todo
}

// 🔹 Response
type EventResponse struct {
	EventID             int64   `json:"event_id"`
	EventName           string  `json:"event_name"`
	EventDescription    *string `json:"event_description,omitempty"`
	EventPlace          *string `json:"event_place,omitempty"`
	EventDocumentNumber *string `json:"event_document_number,omitempty"`
	EventGovernorAttends bool   `json:"event_governor_attends"`
	EventAdminNotes     *string `json:"event_admin_notes,omitempty"`
	EventStatus         string  `json:"event_status"`
	EventStatusLabel    string  `json:"event_status_label"`
	EventMunicipalityID int     `json:"event_municipality_id"`
	EventAgency         string  `json:"event_agency,omitempty"`
	EventStartsAt       string  `json:"event_starts_at"`
	EventEndsAt         string  `json:"event_ends_at,omitempty"`
	EventHasPDF         bool    `json:"event_has_pdf"`
	EventCreatedAt      string  `json:"event_created_at"`
}

const timeLayout = "2006-01-02 15:04:05"

func ToEventResponse(m *model.EventModel) *EventResponse {
	resp := &EventResponse{
		EventID:             m.EventID,
		EventName:           m.EventName,
		EventDescription:    m.EventDescription,
		EventPlace:          m.EventPlace,
		EventDocumentNumber: m.EventDocumentNumber,
		EventGovernorAttends: m.EventGovernorAttends,
		EventAdminNotes:     m.EventAdminNotes,
		EventStatus:         string(m.EventStatus),
		EventStatusLabel:    m.EventStatus.Label(),
		EventMunicipalityID: m.EventMunicipalityID,
		EventStartsAt:       m.EventStartsAt.Format(timeLayout),
		EventHasPDF:         m.EventPDFPath != nil,
		EventCreatedAt:      m.EventCreatedAt.Format(timeLayout),
	}
	if m.EventEndsAt != nil {
		resp.EventEndsAt = m.EventEndsAt.Format(timeLayout)
	}
	return resp
}

func ToEventResponseList(models []model.EventModel) []EventResponse {
	result := make([]EventResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToEventResponse(&models[i]))
	}
	return result
}

// 🔹 Detalle con permisos y bitácora
type EventDetailResponse struct {
	EventResponse
	CanEdit   bool                      `json:"can_edit"`
	CanCancel bool                      `json:"can_cancel"`
	StatusLog []EventStatusLogResponse  `json:"status_log"`
}

type EventStatusLogResponse struct {
	Previous  *string `json:"previous,omitempty"`
	New       string  `json:"new"`
	Comment   string  `json:"comment"`
	Automatic bool    `json:"automatic"`
	UserID    *string `json:"user_id,omitempty"`
	ChangedAt string  `json:"changed_at"`
}

func ToStatusLogResponse(rows []model.EventStatusLogModel) []EventStatusLogResponse {
	out := make([]EventStatusLogResponse, 0, len(rows))
	for _, row := range rows {
		item := EventStatusLogResponse{
			New:       string(row.EventStatusLogNew),
			Comment:   row.EventStatusLogComment,
			Automatic: row.EventStatusLogAutomatic,
			ChangedAt: row.EventStatusLogChangedAt.Format(timeLayout),
		}
		if row.EventStatusLogPrevious != nil {
			prev := string(*row.EventStatusLogPrevious)
			item.Previous = &prev
		}
		if row.EventStatusLogUserID != nil {
			id := row.EventStatusLogUserID.String()
			item.UserID = &id
		}
		out = append(out, item)
	}
	return out
}
