package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventos_backend/internals/features/catalogs/model"
	helper "eventos_backend/internals/helpers"
)

// Catálogos de solo lectura (se cargan vía migraciones/seeds).
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// 🟢 GET /api/u/catalogs/municipalities
func (ctrl *CatalogController) ListMunicipalities(c *fiber.Ctx) error {
	var rows []model.MunicipalityModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("municipality_name ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] Catálogo de municipios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo leer el catálogo")
	}
	return helper.JsonOK(c, "Municipios", rows)
}

// 🟢 GET /api/u/catalogs/agencies
func (ctrl *CatalogController) ListAgencies(c *fiber.Ctx) error {
	var rows []model.AgencyModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("AgencyHead").
		Order("agency_name ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] Catálogo de dependencias: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo leer el catálogo")
	}
	return helper.JsonOK(c, "Dependencias", rows)
}
