package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eventos_backend/internals/features/events/events/model"
	helper "eventos_backend/internals/helpers"
)

const maxPDFSize = 5 * 1024 * 1024 // 5MB

// 🟡 POST /api/u/events/:id/document  (multipart, campo "file")
func (ctrl *EventController) UploadDocument(c *fiber.Ctx) error {
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
		return helper.JsonError(c, fiber.StatusForbidden, "No tienes permisos para modificar este evento")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Falta el archivo")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Solo se permiten archivos PDF")
	}
	if file.Size > maxPDFSize {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "El archivo no puede ser mayor a 5MB")
	}

	// El admin sube el archivo de respuesta; captura el informativo.
	column := "event_pdf_path"
	prefix := "evento"
	if isAdmin && strings.EqualFold(c.Query("tipo"), "respuesta") {
		column = "event_admin_pdf_path"
		prefix = "respuesta"
	}

	if err := os.MkdirAll(ctrl.MediaDir, 0o755); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo preparar el almacenamiento")
	}
	dest := filepath.Join(ctrl.MediaDir, fmt.Sprintf("%s_%d.pdf", prefix, eventID))
	if err := c.SaveFile(file, dest); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo guardar el archivo")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&ev).Update(column, dest).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo registrar el archivo")
	}

	return helper.JsonUpdated(c, "Archivo PDF guardado", fiber.Map{"event_id": eventID})
}

// 🟢 GET /api/u/events/:id/document
func (ctrl *EventController) DownloadDocument(c *fiber.Ctx) error {
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

	path := ev.EventPDFPath
	if helper.IsAdmin(c) && strings.EqualFold(c.Query("tipo"), "respuesta") {
		path = ev.EventAdminPDFPath
	}
	if path == nil || *path == "" {
		return helper.JsonError(c, fiber.StatusNotFound, "Este evento no tiene archivo PDF asociado")
	}
	if _, err := os.Stat(*path); err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "El archivo PDF no se encuentra en el servidor")
	}

	name := fmt.Sprintf("evento_%d.pdf", eventID)
	if ev.EventDocumentNumber != nil && *ev.EventDocumentNumber != "" {
		name = *ev.EventDocumentNumber + ".pdf"
	}
	return c.Download(*path, name)
}
