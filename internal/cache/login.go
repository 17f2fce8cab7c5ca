package cache

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginAttempts compteur d'échecs de connexion par email avec verrouillage temporaire
type LoginAttempts struct {
	rdb         *redis.Client
	maxAttempts int64
	cooldown    time.Duration
}

func NewLoginAttempts(rdb *redis.Client) *LoginAttempts {
	return &LoginAttempts{rdb: rdb, maxAttempts: LoginMaxAttempts, cooldown: LoginCooldown}
}

func attemptsKey(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}

func cooldownKey(email string) string {
	return "login_cooldown:" + strings.ToLower(email)
}

// Locked indique si l'email est verrouillé et pour combien de temps
func (l *LoginAttempts) Locked(ctx context.Context, email string) (bool, time.Duration, error) {
	ttl, err := l.rdb.TTL(ctx, cooldownKey(email)).Result()
	if err != nil {
		return false, 0, errors.Wrap(err, "lecture verrouillage")
	}
	// -2: clé absente
	if ttl == -2 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// RegisterFailure renvoie true quand l'échec déclenche le verrouillage
func (l *LoginAttempts) RegisterFailure(ctx context.Context, email string) (bool, error) {
	pipe := l.rdb.Pipeline()
	incr := pipe.Incr(ctx, attemptsKey(email))
	pipe.Expire(ctx, attemptsKey(email), l.cooldown)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Wrap(err, "compteur connexion")
	}

	if incr.Val() < l.maxAttempts {
		return false, nil
	}

	pipe = l.rdb.Pipeline()
	pipe.Set(ctx, cooldownKey(email), "locked", l.cooldown)
	pipe.Del(ctx, attemptsKey(email))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Wrap(err, "verrouillage connexion")
	}
	return true, nil
}

func (l *LoginAttempts) Reset(ctx context.Context, email string) error {
	return errors.Wrap(l.rdb.Del(ctx, attemptsKey(email)).Err(), "réinitialisation compteur")
}
