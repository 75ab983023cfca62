package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func TestMintAccessToken(t *testing.T) {
	const secret = "secreto-de-prueba"
	userID := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	token, expiresAt, err := MintAccessToken(userID, secret, now)
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	if want := now.Add(AccessTokenTTL); !expiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, esperaba %v", expiresAt, want)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token inválido: %v", err)
	}
	if got, _ := claims["user_id"].(string); got != userID.String() {
		t.Errorf("user_id = %q, esperaba %q", got, userID)
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Error("falta el claim exp")
	}
	// El rol nunca viaja en el token; se lee de la base en cada request.
	if _, ok := claims["user_role"]; ok {
		t.Error("el token no debe llevar rol")
	}
}

func TestMintAccessTokenWithoutSecret(t *testing.T) {
	if _, _, err := MintAccessToken(uuid.New(), "", time.Now()); err == nil {
		t.Fatal("esperaba error con secret vacío")
	}
}

func TestTokenRemainingTTL(t *testing.T) {
	const secret = "secreto-de-prueba"
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	token, _, err := MintAccessToken(uuid.New(), secret, now)
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	ttl := TokenRemainingTTL(token, secret, now.Add(2*time.Hour))
	if want := AccessTokenTTL - 2*time.Hour; ttl != want {
		t.Errorf("ttl = %v, esperaba %v", ttl, want)
	}

	// Token ya vencido: TTL negativo, Revoke lo tratará como no-op.
	if ttl := TokenRemainingTTL(token, secret, now.Add(AccessTokenTTL+time.Minute)); ttl > 0 {
		t.Errorf("ttl = %v, esperaba <= 0 para un token vencido", ttl)
	}

	if ttl := TokenRemainingTTL("no-es-un-jwt", secret, now); ttl != 0 {
		t.Errorf("ttl = %v, esperaba 0 para un token ilegible", ttl)
	}
}
