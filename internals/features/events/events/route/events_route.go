package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/configs"
	"eventos_backend/internals/features/events/events/controller"
	"eventos_backend/internals/features/events/events/service"
	"eventos_backend/internals/helpers/mailer"
)

// =========================
// 📅 EVENTOS (AREA USUARIO)
// =========================
// Prefix: /api/u/events — captura ve solo lo suyo, admin ve todo.
func EventUserRoutes(user fiber.Router, db *gorm.DB, engine *service.StatusEngine, m *mailer.Mailer) {
	eventCtrl := controller.NewEventController(db, engine, m, configs.App.MediaDir)

	events := user.Group("/events")

	// Rutas fijas antes que /:id para que Fiber no las capture como folio
	events.Get("/dashboard", eventCtrl.Dashboard)
	events.Get("/calendar", eventCtrl.Calendar)
	events.Get("/export", eventCtrl.ExportEventsExcel)

	events.Post("/", eventCtrl.CreateEvent)
	events.Get("/", eventCtrl.ListEvents)
	events.Get("/:id", eventCtrl.GetEventByID)
	events.Put("/:id", eventCtrl.UpdateEvent)

	events.Post("/:id/document", eventCtrl.UploadDocument)
	events.Get("/:id/document", eventCtrl.DownloadDocument)
}

// =========================
// 📅 EVENTOS (AREA ADMIN)
// =========================
// Prefix: /api/a/events — cancelación manual, solo admin.
func EventAdminRoutes(admin fiber.Router, db *gorm.DB, engine *service.StatusEngine, m *mailer.Mailer) {
	eventCtrl := controller.NewEventController(db, engine, m, configs.App.MediaDir)

	events := admin.Group("/events")
	events.Post("/:id/cancel", eventCtrl.CancelEvent)
}
