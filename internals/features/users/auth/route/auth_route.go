package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/features/users/auth/controller"
	"eventos_backend/internals/features/users/auth/service"
	"eventos_backend/internals/middlewares/auth"
)

// =========================
// 🔐 AUTH
// =========================
// Login es público; logout exige el bearer token que va a revocar.
func AuthRoutes(app *fiber.App, db *gorm.DB, blacklist *service.TokenBlacklist) {
	authCtrl := controller.NewAuthController(db, blacklist)

	api := app.Group("/api/auth")
	api.Post("/login", authCtrl.Login)
	api.Post("/logout", auth.AuthMiddleware(db, blacklist), authCtrl.Logout)
}

// =========================
// 👤 PERFIL PROPIO
// =========================
// Prefix: /api/u/profile — el usuario autenticado gestiona su propia cuenta.
func ProfileRoutes(user fiber.Router, db *gorm.DB, blacklist *service.TokenBlacklist) {
	authCtrl := controller.NewAuthController(db, blacklist)

	profile := user.Group("/profile")
	profile.Get("/", authCtrl.Me)
	profile.Put("/", authCtrl.UpdateProfile)
	profile.Put("/password", authCtrl.ChangePassword)
}
