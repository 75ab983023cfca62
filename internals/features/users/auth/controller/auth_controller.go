package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventos_backend/internals/configs"
	"eventos_backend/internals/constants"
	"eventos_backend/internals/features/users/auth/dto"
	"eventos_backend/internals/features/users/auth/model"
	"eventos_backend/internals/features/users/auth/service"
	helper "eventos_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Blacklist *service.TokenBlacklist
}

func NewAuthController(db *gorm.DB, blacklist *service.TokenBlacklist) *AuthController {
	return &AuthController{DB: db, Blacklist: blacklist}
}

// 🟢 POST /api/auth/login
// Acepta username o email como identificador.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	err := ac.DB.WithContext(c.UserContext()).
		Where("user_username = ? OR user_email = ?", req.Identifier, req.Identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Mismo mensaje que password incorrecto: no revelar qué falló
			return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}
		log.Printf("[ERROR] Login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrInactiveAccount)
	}

	now := time.Now()
	token, expiresAt, err := service.MintAccessToken(user.UserID, configs.App.JWTSecret, now)
	if err != nil {
		log.Printf("[ERROR] Firma de token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	log.Printf("[INFO] Login de %s (%s)", user.UserUsername, user.UserRole)
	return helper.JsonOK(c, "Sesión iniciada", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
		User:        dto.ToUserResponse(&user),
	})
}

// 🟡 POST /api/auth/logout
// Revoca el token actual en Redis hasta su exp.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token_string").(string)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Missing token")
	}

	ttl := service.TokenRemainingTTL(tokenString, configs.App.JWTSecret, time.Now())
	if err := ac.Blacklist.Revoke(c.UserContext(), tokenString, ttl); err != nil {
		log.Printf("[ERROR] Redis al revocar token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo cerrar la sesión")
	}
	return helper.JsonOK(c, "Sesión cerrada", nil)
}

// 🟢 GET /api/u/profile
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := ac.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	return helper.JsonOK(c, "Perfil", dto.ToUserResponse(&user))
}

// 🟡 PUT /api/u/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.UserEmail != nil {
		var count int64
		ac.DB.Model(&model.UserModel{}).
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
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No hay campos para actualizar")
	}
	updates["user_updated_at"] = time.Now()

	if err := ac.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Actualizar perfil: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el perfil")
	}

	var user model.UserModel
	if err := ac.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo leer el perfil")
	}
	return helper.JsonUpdated(c, "Perfil actualizado", dto.ToUserResponse(&user))
}

// 🟡 PUT /api/u/profile/password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ac.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.CurrentPassword)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "La contraseña actual no es correcta")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar la contraseña")
	}
	if err := ac.DB.Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_password_hash", string(hash)).Error; err != nil {
		log.Printf("[ERROR] Cambio de contraseña: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar la contraseña")
	}

	return helper.JsonOK(c, "Contraseña actualizada", nil)
}
