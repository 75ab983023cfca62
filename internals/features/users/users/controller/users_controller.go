package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventos_backend/internals/constants"
	catalogModel "eventos_backend/internals/features/catalogs/model"
	authDTO "eventos_backend/internals/features/users/auth/dto"
	"eventos_backend/internals/features/users/auth/model"
	"eventos_backend/internals/features/users/users/dto"
	helper "eventos_backend/internals/helpers"
	"eventos_backend/internals/helpers/mailer"
)

// Administración de cuentas de captura. Todo el grupo cuelga de /api/a,
// así que aquí ya solo llegan admins.
type UserAdminController struct {
	DB     *gorm.DB
	Mailer *mailer.Mailer
}

func NewUserAdminController(db *gorm.DB, m *mailer.Mailer) *UserAdminController {
	return &UserAdminController{DB: db, Mailer: m}
}

// 🟢 POST /api/a/users
func (ctrl *UserAdminController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// La dependencia debe existir
	var agency catalogModel.AgencyModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("agency_id = ?", req.UserAgencyID).First(&agency).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "La dependencia indicada no existe")
	}

	var count int64
	ctrl.DB.Model(&model.UserModel{}).
		Where("user_username = ? OR user_email = ?", req.UserUsername, req.UserEmail).
		Count(&count)
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "El usuario o correo ya están registrados")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el usuario")
	}

	user := model.UserModel{
		UserUsername:     req.UserUsername,
		UserEmail:        req.UserEmail,
		UserPasswordHash: string(hash),
		UserFullName:     req.UserFullName,
		UserAddress:      req.UserAddress,
		UserRole:         constants.RoleCaptura,
		UserIsActive:     true,
		UserAgencyID:     req.UserAgencyID,
	}
	if req.UserGender != "" {
		user.UserGender = req.UserGender
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		log.Printf("[ERROR] Alta de usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el usuario")
	}

	// Correo de bienvenida con credenciales (best effort, no bloquea el alta)
	go func(email, username, password string) {
		if err := ctrl.Mailer.NotifyNewUser(email, username, password); err != nil {
			log.Printf("[ERROR] Correo de bienvenida a %s: %v", email, err)
		}
	}(user.UserEmail, user.UserUsername, req.UserPassword)

	log.Printf("[INFO] Usuario de captura creado: %s (dependencia %d)", user.UserUsername, agency.AgencyID)
	return helper.JsonCreated(c, "Usuario creado", authDTO.ToUserResponse(&user))
}

// 🟢 GET /api/a/users
func (ctrl *UserAdminController) ListUsers(c *fiber.Ctx) error {
	var filters dto.UserFilterQuery
	if err := c.QueryParser(&filters); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Filtros inválidos")
	}

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		q = q.Where(
			"user_username ILIKE ? OR user_full_name ILIKE ? OR user_email ILIKE ?",
			like, like, like,
		)
	}
	if filters.AgencyID != 0 {
		q = q.Where("user_agency_id = ?", filters.AgencyID)
	}
	if filters.Active != "" {
		q = q.Where("user_is_active = ?", filters.Active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] Listado de usuarios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron leer los usuarios")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var users []model.UserModel
	if err := q.
		Order("user_username ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&users).Error; err != nil {
		log.Printf("[ERROR] Listado de usuarios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron leer los usuarios")
	}

	items := make([]authDTO.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, authDTO.ToUserResponse(&users[i]))
	}
	return helper.JsonList(c, "Usuarios", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟡 PUT /api/a/users/:id
func (ctrl *UserAdminController) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de usuario inválido")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	updates := map[string]interface{}{}
	if req.UserUsername != nil {
		var count int64
		ctrl.DB.Model(&model.UserModel{}).
			Where("user_username = ? AND user_id <> ?", *req.UserUsername, userID).
			Count(&count)
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Ese usuario ya está registrado")
		}
		updates["user_username"] = *req.UserUsername
	}
	if req.UserEmail != nil {
		var count int64
		ctrl.DB.Model(&model.UserModel{}).
			Where("user_email = ? AND user_id <> ?", *req.UserEmail, userID).
			Count(&count)
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Ese correo ya está registrado")
		}
		updates["user_email"] = *req.UserEmail
	}
	if req.UserFullName != nil {
		updates["user_full_name"] = *req.UserFullName
	}
	if req.UserAddress != nil {
		updates["user_address"] = *req.UserAddress
	}
	if req.UserGender != nil {
		updates["user_gender"] = *req.UserGender
	}
	if req.UserAgencyID != nil {
		var agency catalogModel.AgencyModel
		if err := ctrl.DB.Where("agency_id = ?", *req.UserAgencyID).First(&agency).Error; err != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "La dependencia indicada no existe")
		}
		updates["user_agency_id"] = *req.UserAgencyID
	}
	if req.UserPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.UserPassword), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
		}
		updates["user_password_hash"] = string(hash)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No hay campos para actualizar")
	}
	updates["user_updated_at"] = time.Now()

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Actualizar usuario %s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
	}

	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo leer el usuario")
	}
	return helper.JsonUpdated(c, "Usuario actualizado", authDTO.ToUserResponse(&user))
}

// 🟡 PATCH /api/a/users/:id/toggle-active
// En lugar de borrar cuentas se desactivan; los eventos capturados se
// conservan.
func (ctrl *UserAdminController) ToggleActive(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de usuario inválido")
	}

	actorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	if actorID == userID {
		return helper.JsonError(c, fiber.StatusConflict, "No puedes desactivar tu propia cuenta")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	newState := !user.UserIsActive
	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"user_is_active":  newState,
			"user_updated_at": time.Now(),
		}).Error; err != nil {
		log.Printf("[ERROR] Toggle de usuario %s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
	}

	msg := "Usuario desactivado"
	if newState {
		msg = "Usuario reactivado"
	}
	log.Printf("[INFO] %s: %s", msg, user.UserUsername)
	return helper.JsonUpdated(c, msg, fiber.Map{"user_id": userID, "user_is_active": newState})
}
