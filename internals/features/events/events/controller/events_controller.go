package controller

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/features/events/events/dto"
	"eventos_backend/internals/features/events/events/model"
	"eventos_backend/internals/features/events/events/service"
	helper "eventos_backend/internals/helpers"
	"eventos_backend/internals/helpers/mailer"
)

type EventController struct {
	DB       *gorm.DB
	Engine   *service.StatusEngine
	Mailer   *mailer.Mailer
	MediaDir string
}

func NewEventController(db *gorm.DB, engine *service.StatusEngine, m *mailer.Mailer, mediaDir string) *EventController {
	return &EventController{DB: db, Engine: engine, Mailer: m, MediaDir: mediaDir}
}

// scopedQuery: captura solo ve sus propios eventos; admin ve todos.
func (ctrl *EventController) scopedQuery(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.EventModel{})
	if helper.IsAdmin(c) {
		return q, nil
	}
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return nil, err
	}
	return q.Where("event_created_by = ?", userID), nil
}

func applyFilters(q *gorm.DB, f dto.EventFilterQuery) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"event_name ILIKE ? OR event_place ILIKE ? OR event_document_number ILIKE ?",
			like, like, like,
		)
	}
	if f.Status != "" && model.Status(f.Status).IsValid() {
		q = q.Where("event_status = ?", f.Status)
	}
	if f.GovernorAttends != "" {
		q = q.Where("event_governor_attends = ?", f.GovernorAttends == "true")
	}
	if f.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", f.DateFrom); err == nil {
			q = q.Where("event_starts_at >= ?", from)
		}
	}
	if f.DateTo != "" {
		if to, err := time.Parse("2006-01-02", f.DateTo); err == nil {
			q = q.Where("event_starts_at < ?", to.AddDate(0, 0, 1))
		}
	}
	if f.MunicipalityID != 0 {
		q = q.Where("event_municipality_id = ?", f.MunicipalityID)
	}
	if f.AgencyID != 0 {
		q = q.Where("event_created_by IN (SELECT user_id FROM users WHERE user_agency_id = ?)", f.AgencyID)
	}
	if f.Folio != 0 {
		q = q.Where("event_id = ?", f.Folio)
	}
	return q
}

// 🟢 POST /api/u/events
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] Body parser falló: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Petición inválida")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	endsAt, err := dto.NormalizeSchedule(req.EventStartsAt, req.EventEndsAt, time.Now(), true)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	// Campos exclusivos de admin: se descartan para captura.
	if !helper.IsAdmin(c) {
		req.EventGovernorAttends = nil
		req.EventAdminNotes = nil
	}

	newEvent := req.ToModel(userID, endsAt)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(newEvent).Error; err != nil {
		log.Printf("[ERROR] No se pudo guardar el evento: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo guardar el evento")
	}

	// Notificación fuera del flujo crítico (el motor jamás manda correos).
	go ctrl.notifyCreator(newEvent.EventID, "creado")

	return helper.JsonCreated(c, "Evento creado exitosamente", dto.ToEventResponse(newEvent))
}

// 🟢 GET /api/u/events/:id
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Folio de evento inválido")
	}

	q, err := ctrl.scopedQuery(c)
	if err != nil {
		return err
	}

	var ev model.EventModel
	if err := q.Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
	}

	var logs []model.EventStatusLogModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("event_status_log_event_id = ?", eventID).
		Order("event_status_log_changed_at DESC").
		Find(&logs).Error; err != nil {
		log.Printf("[ERROR] No se pudo leer la bitácora del evento %d: %v", eventID, err)
	}

	userID, _ := helper.GetUserIDFromLocals(c)
	isAdmin := helper.IsAdmin(c)

	detail := dto.EventDetailResponse{
		EventResponse: *dto.ToEventResponse(&ev),
		CanEdit:       ev.EditableBy(userID, isAdmin),
		CanCancel:     isAdmin && ev.EventStatus.CanCancel(),
		StatusLog:     dto.ToStatusLogResponse(logs),
	}
	return helper.JsonOK(c, "Evento encontrado", detail)
}

// 🟢 GET /api/u/events  (filtros + paginación)
func (ctrl *EventController) ListEvents(c *fiber.Ctx) error {
	var filters dto.EventFilterQuery
	if err := c.QueryParser(&filters); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Filtros inválidos")
	}

	q, err := ctrl.scopedQuery(c)
	if err != nil {
		return err
	}
	q = applyFilters(q, filters)

	paging := helper.ResolvePaging(c, 10, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] Count eventos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron contar los eventos")
	}

	var events []model.EventModel
	if err := q.
		Order("event_starts_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] No se pudieron leer los eventos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron leer los eventos")
	}

	return helper.JsonList(c, "Eventos encontrados",
		dto.ToEventResponseList(events),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟡 PUT /api/u/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Folio de evento inválido")
	}

	var ev model.EventModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
	}

	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	isAdmin := helper.IsAdmin(c)

	if !ev.EditableBy(userID, isAdmin) {
		if !isAdmin && ev.EventCreatedBy != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "No tienes permisos para editar este evento")
		}
		return helper.JsonError(c, fiber.StatusForbidden,
			"No puedes editar un evento en estado \""+ev.EventStatus.Label()+"\"")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Petición inválida")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}

	if req.EventName != nil {
		updates["event_name"] = *req.EventName
	}
	if req.EventDescription != nil {
		updates["event_description"] = *req.EventDescription
	}
	if req.EventPlace != nil {
		updates["event_place"] = *req.EventPlace
	}
	if req.EventDocumentNumber != nil {
		updates["event_document_number"] = *req.EventDocumentNumber
	}
	if req.EventMunicipalityID != nil {
		var cnt int64
		if err := ctrl.DB.Table("municipalities").
			Where("municipality_id = ?", *req.EventMunicipalityID).
			Count(&cnt).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo verificar el municipio")
		}
		if cnt == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Municipio no encontrado")
		}
		updates["event_municipality_id"] = *req.EventMunicipalityID
	}

	// Reglas de fechas: se revalidan con la ventana resultante.
	if req.EventStartsAt != nil || req.EventEndsAt != nil {
		startsAt := ev.EventStartsAt
		if req.EventStartsAt != nil {
			startsAt = *req.EventStartsAt
		}
		endsAt := req.EventEndsAt
		if endsAt == nil {
			endsAt = ev.EventEndsAt
		}
		newEnd, err := dto.NormalizeSchedule(startsAt, endsAt, time.Now(), false)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		updates["event_starts_at"] = startsAt
		updates["event_ends_at"] = newEnd
	}

	// Campos exclusivos de admin
	var newStatus *model.Status
	if isAdmin {
		if req.EventGovernorAttends != nil {
			updates["event_governor_attends"] = *req.EventGovernorAttends
		}
		if req.EventAdminNotes != nil {
			updates["event_admin_notes"] = *req.EventAdminNotes
		}
		if req.EventStatus != nil {
			if !req.EventStatus.IsValid() {
				return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Estado inválido")
			}
			if *req.EventStatus != ev.EventStatus {
				newStatus = req.EventStatus
			}
		}
	}

	if len(updates) == 0 && newStatus == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No hay campos por actualizar")
	}

	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.UserContext()).Model(&ev).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el evento")
		}
	}

	// El cambio manual de estado pasa por el motor: update condicional +
	// bitácora en una sola transacción, igual que las transiciones
	// automáticas. Si el scheduler movió el evento primero, se reporta el
	// conflicto y no queda bitácora suelta.
	if newStatus != nil {
		if err := ctrl.Engine.SetStatus(c.UserContext(), ev.EventID, ev.EventStatus, *newStatus, userID, time.Now()); err != nil {
			switch {
			case errors.Is(err, service.ErrEventNotFound):
				return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
			case errors.Is(err, service.ErrTransitionConflict):
				return helper.JsonError(c, fiber.StatusConflict, err.Error())
			default:
				log.Printf("[ERROR] Cambio de estado del evento %d: %v", ev.EventID, err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo registrar el cambio de estado")
			}
		}
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo recargar el evento")
	}

	go ctrl.notifyCreator(ev.EventID, "actualizado")

	return helper.JsonUpdated(c, "Evento actualizado correctamente", dto.ToEventResponse(&ev))
}

// 🔴 POST /api/a/events/:id/cancel  (solo admin)
func (ctrl *EventController) CancelEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Folio de evento inválido")
	}
	actorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	if err := ctrl.Engine.Cancel(c.UserContext(), eventID, actorID, time.Now()); err != nil {
		var illegal *service.IllegalTransitionError
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Evento no encontrado")
		case errors.As(err, &illegal):
			return helper.JsonError(c, fiber.StatusConflict,
				"No se puede cancelar un evento en estado \""+illegal.From.Label()+"\"")
		case errors.Is(err, service.ErrTransitionConflict):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			log.Printf("[ERROR] Cancelación del evento %d: %v", eventID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo cancelar el evento")
		}
	}

	return helper.JsonOK(c, "Evento cancelado correctamente", fiber.Map{"event_id": eventID})
}

func (ctrl *EventController) notifyCreator(eventID int64, action string) {
	var ev model.EventModel
	if err := ctrl.DB.Preload("Creator").Where("event_id = ?", eventID).First(&ev).Error; err != nil {
		log.Printf("[MAIL] no se pudo cargar el evento %d: %v", eventID, err)
		return
	}
	email := ""
	if ev.Creator != nil {
		email = ev.Creator.UserEmail
	}
	if err := ctrl.Mailer.NotifyEvent(email, ev.EventName, action); err != nil {
		log.Printf("[MAIL] no se pudo notificar el evento %d: %v", eventID, err)
	}
}

var errBadEventID = errors.New("folio de evento inválido")

func parseEventID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadEventID
	}
	return id, nil
}
