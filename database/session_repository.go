package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bey1222/yonk-backend/models"
)

// BasketRepository stores one basket per user as a JSON blob. Basket and
// wishlist share the same persistence model and TTL so session state
// survives restarts uniformly.
type BasketRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBasketRepository(client *redis.Client, ttl time.Duration) *BasketRepository {
	return &BasketRepository{client: client, ttl: ttl}
}

func (r *BasketRepository) key(userID string) string {
	return fmt.Sprintf("basket:user:%s", userID)
}

func (r *BasketRepository) Get(ctx context.Context, userID string) (*models.Basket, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var basket models.Basket
	if err := json.Unmarshal([]byte(data), &basket); err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *BasketRepository) Save(ctx context.Context, basket *models.Basket) error {
	basket.UpdatedAt = time.Now()
	data, err := json.Marshal(basket)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(basket.UserID), data, r.ttl).Err()
}

func (r *BasketRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}

// WishlistRepository stores one wishlist per user as a JSON blob.
type WishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWishlistRepository(client *redis.Client, ttl time.Duration) *WishlistRepository {
	return &WishlistRepository{client: client, ttl: ttl}
}

func (r *WishlistRepository) key(userID string) string {
	return fmt.Sprintf("wishlist:user:%s", userID)
}

func (r *WishlistRepository) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var wishlist models.Wishlist
	if err := json.Unmarshal([]byte(data), &wishlist); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *WishlistRepository) Save(ctx context.Context, wishlist *models.Wishlist) error {
	wishlist.UpdatedAt = time.Now()
	data, err := json.Marshal(wishlist)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(wishlist.UserID), data, r.ttl).Err()
}

func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}
