package cache

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// VerificationCodes codes de confirmation d'email, un par adresse
type VerificationCodes struct {
	rdb *redis.Client
}

func NewVerificationCodes(rdb *redis.Client) *VerificationCodes {
	return &VerificationCodes{rdb: rdb}
}

func codeKey(email string) string {
	return "verification:" + strings.ToLower(strings.TrimSpace(email))
}

func (v *VerificationCodes) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return errors.Wrap(v.rdb.Set(ctx, codeKey(email), code, ttl).Err(), "enregistrement code")
}

// Get renvoie "" si aucun code n'est en cache
func (v *VerificationCodes) Get(ctx context.Context, email string) (string, error) {
	code, err := v.rdb.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return code, errors.Wrap(err, "lecture code")
}

func (v *VerificationCodes) Delete(ctx context.Context, email string) error {
	return errors.Wrap(v.rdb.Del(ctx, codeKey(email)).Err(), "suppression code")
}
