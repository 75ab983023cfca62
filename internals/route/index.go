package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/constants"
	catalogRoute "eventos_backend/internals/features/catalogs/route"
	eventRoute "eventos_backend/internals/features/events/events/route"
	eventService "eventos_backend/internals/features/events/events/service"
	authRoute "eventos_backend/internals/features/users/auth/route"
	authService "eventos_backend/internals/features/users/auth/service"
	userRoute "eventos_backend/internals/features/users/users/route"
	"eventos_backend/internals/helpers/mailer"
	"eventos_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(
	app *fiber.App,
	db *gorm.DB,
	blacklist *authService.TokenBlacklist,
	engine *eventService.StatusEngine,
	m *mailer.Mailer,
) {
	startTime = time.Now()

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, blacklist)

	// ===================== GROUPS =====================

	// USUARIO (captura y admin) → JWT + rol de staff
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		auth.AuthMiddleware(db, blacklist),
		auth.OnlyRoles(
			constants.RoleErrorStaff("el área de captura"),
			constants.AllRoles...,
		),
	)

	// ADMIN → JWT + rol admin
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		auth.AuthMiddleware(db, blacklist),
		auth.OnlyRoles(
			constants.RoleErrorAdmin("el área administrativa"),
			constants.AdminOnly...,
		),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Event routes...")
	eventRoute.EventUserRoutes(user, db, engine, m)
	eventRoute.EventAdminRoutes(admin, db, engine, m)

	log.Println("[INFO] Mounting Profile routes...")
	authRoute.ProfileRoutes(user, db, blacklist)

	log.Println("[INFO] Mounting Catalog routes...")
	catalogRoute.CatalogRoutes(user, db)

	log.Println("[INFO] Mounting User admin routes...")
	userRoute.UserAdminRoutes(admin, db, m)
}
