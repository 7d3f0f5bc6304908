package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/tarzi-cart/internal/codec"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/currency"
)

type redisCartRepository struct {
	client *redis.Client
	unit   currency.Unit
	ttl    time.Duration
}

// NewRedisCart stores each cart as a JSON array under StorageKey(ownerID).
// A zero ttl keeps carts until they are deleted.
func NewRedisCart(client *redis.Client, unit currency.Unit, ttl time.Duration) port.CartStore {
	return &redisCartRepository{
		client: client,
		unit:   unit,
		ttl:    ttl,
	}
}

func (r *redisCartRepository) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	data, err := r.client.Get(ctx, StorageKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("client.Get: %w", err)
	}

	items, err := codec.UnmarshalItems(data, r.unit)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", port.ErrCorruptCart, err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *redisCartRepository) Save(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	data, err := codec.MarshalItems(cart.Items)
	if err != nil {
		return fmt.Errorf("codec.MarshalItems: %w", err)
	}

	if err := r.client.Set(ctx, StorageKey(cart.OwnerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisCartRepository) Delete(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.client.Del(ctx, StorageKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}
