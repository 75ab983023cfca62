package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "auth:blacklist:"

// TokenBlacklist guarda en Redis los tokens revocados por logout hasta que
// expiran por sí solos.
type TokenBlacklist struct {
	Client *redis.Client
}

func NewTokenBlacklist(opt *redis.Options) *TokenBlacklist {
	return &TokenBlacklist{Client: redis.NewClient(opt)}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// El token ya expiró; no hay nada que revocar.
		return nil
	}
	return b.Client.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := b.Client.Get(ctx, blacklistPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
