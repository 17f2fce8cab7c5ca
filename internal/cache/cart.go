package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const CartTTL = 30 * 24 * time.Hour

var ErrNotInCart = errors.New("produit absent du panier")

// CartStore panier d'un client: un hash cart:<id>, un champ par produit, valeur = quantité
type CartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartStore(rdb *redis.Client) *CartStore {
	return &CartStore{rdb: rdb, ttl: CartTTL}
}

func cartKey(customerID string) string {
	return "cart:" + customerID
}

// Items quantités par produit
func (s *CartStore) Items(ctx context.Context, customerID string) (map[int64]int, error) {
	raw, err := s.rdb.HGetAll(ctx, cartKey(customerID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "lecture panier")
	}

	items := make(map[int64]int, len(raw))
	for field, value := range raw {
		productID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil || qty < 1 {
			continue
		}
		items[productID] = qty
	}
	return items, nil
}

// Increment crée la ligne à 1 ou incrémente la quantité existante
func (s *CartStore) Increment(ctx context.Context, customerID string, productID int64) (int, error) {
	key := cartKey(customerID)
	pipe := s.rdb.TxPipeline()
	incr := pipe.HIncrBy(ctx, key, strconv.FormatInt(productID, 10), 1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Wrap(err, "ajout panier")
	}
	return int(incr.Val()), nil
}

// Decrement retire une unité, la ligne disparaît quand la quantité tombe à zéro
func (s *CartStore) Decrement(ctx context.Context, customerID string, productID int64) (int, error) {
	key := cartKey(customerID)
	field := strconv.FormatInt(productID, 10)

	exists, err := s.rdb.HExists(ctx, key, field).Result()
	if err != nil {
		return 0, errors.Wrap(err, "lecture panier")
	}
	if !exists {
		return 0, ErrNotInCart
	}

	qty, err := s.rdb.HIncrBy(ctx, key, field, -1).Result()
	if err != nil {
		return 0, errors.Wrap(err, "retrait panier")
	}
	if qty <= 0 {
		if err := s.rdb.HDel(ctx, key, field).Err(); err != nil {
			return 0, errors.Wrap(err, "suppression ligne panier")
		}
		return 0, nil
	}
	return int(qty), nil
}

func (s *CartStore) Clear(ctx context.Context, customerID string) error {
	if err := s.rdb.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return errors.Wrapf(err, "vidage panier %s", customerID)
	}
	return nil
}
