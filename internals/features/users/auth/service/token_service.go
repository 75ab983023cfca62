package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const AccessTokenTTL = 12 * time.Hour

// MintAccessToken firma un JWT HS256 con user_id + exp; el rol se lee de la
// base en cada request, nunca del token.
func MintAccessToken(userID uuid.UUID, secret string, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET no está configurado")
	}
	expiresAt := now.Add(AccessTokenTTL)
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// TokenRemainingTTL calcula cuánto le queda de vida a un token ya verificado,
// para revocarlo en Redis exactamente hasta su exp.
func TokenRemainingTTL(tokenString, secret string, now time.Time) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return 0
	}
	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return 0
	}
	return time.Unix(int64(expFloat), 0).Sub(now)
}
