package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/features/catalogs/controller"
)

// =========================
// 📚 CATÁLOGOS
// =========================
// Prefix: /api/u/catalogs — solo lectura, cualquier usuario autenticado.
func CatalogRoutes(user fiber.Router, db *gorm.DB) {
	catalogCtrl := controller.NewCatalogController(db)

	catalogs := user.Group("/catalogs")
	catalogs.Get("/municipalities", catalogCtrl.ListMunicipalities)
	catalogs.Get("/agencies", catalogCtrl.ListAgencies)
}
