// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"eventos_backend/internals/configs"
	"eventos_backend/internals/constants"
	userModel "eventos_backend/internals/features/users/auth/model"
	authService "eventos_backend/internals/features/users/auth/service"
)

// AuthMiddleware valida el bearer token, revisa la blacklist en Redis y
// deja user_id + userRole en locals.
func AuthMiddleware(db *gorm.DB, blacklist *authService.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization header
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Blacklist (una vez por request)
		if c.Locals("token_checked") == nil {
			revoked, err := blacklist.IsRevoked(c.UserContext(), tokenString)
			if err != nil {
				log.Println("[ERROR] Redis al revisar blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if revoked {
				log.Println("[WARNING] Token encontrado en blacklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
			c.Locals("token_checked", true)
		}

		// 3) Parse & verifica JWT
		secretKey := configs.App.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET vacío")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] No se pudo parsear el token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) Valida exp (con leeway corto)
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) user_id + usuario activo
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID)
		c.Locals("token_string", tokenString)

		var user userModel.UserModel
		if err := db.WithContext(c.UserContext()).
			Select("user_id", "user_role", "user_is_active").
			Where("user_id = ?", userID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.UserIsActive {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrInactiveAccount)
		}

		// 6) Rol al context (seragam: "userRole")
		c.Locals("userRole", user.UserRole)

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header")
	}
	return parts[1], nil
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return fmt.Errorf("invalid exp claim")
	}
	expiry := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiry.Add(leeway)) {
		return fmt.Errorf("token expired at %s", expiry)
	}
	return nil
}
