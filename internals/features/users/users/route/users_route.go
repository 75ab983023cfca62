package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/features/users/users/controller"
	"eventos_backend/internals/helpers/mailer"
)

// =========================
// 👥 USUARIOS (AREA ADMIN)
// =========================
// Prefix: /api/a/users — altas, edición y activación de cuentas de captura.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB, m *mailer.Mailer) {
	userCtrl := controller.NewUserAdminController(db, m)

	users := admin.Group("/users")
	users.Post("/", userCtrl.CreateUser)
	users.Get("/", userCtrl.ListUsers)
	users.Put("/:id", userCtrl.UpdateUser)
	users.Patch("/:id/toggle-active", userCtrl.ToggleActive)
}
