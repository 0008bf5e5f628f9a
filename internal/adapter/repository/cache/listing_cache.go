package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

const (
	listingKeyPrefix = "himalayan-nest:listing:"
	authorKeyPrefix  = "himalayan-nest:author:"
	DefaultTTL       = 10 * time.Minute
)

// NewRedisClient connects and pings redis at addr.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// ListingCache implements domain.ListingCache on redis.
type ListingCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *logger.Logger
}

func NewListingCache(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListingCache{client: client, ttl: ttl, logger: log.Named("ListingCache")}
}

func listingKey(id string) string { return listingKeyPrefix + id }
func authorKey(id string) string  { return authorKeyPrefix + id }

// GetListing returns (nil, nil) on a miss.
func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	ok, err := c.get(ctx, listingKey(id), &l)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

func (c *ListingCache) SetListing(ctx context.Context, l *domain.Listing) error {
	return c.set(ctx, listingKey(l.ID), l)
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, listingKey(id)).Err()
}

func (c *ListingCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *ListingCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// AuthorDirectory caches contact cards in front of another directory.
type AuthorDirectory struct {
	next  domain.AuthorDirectory
	cache *ListingCache
}

func NewAuthorDirectory(next domain.AuthorDirectory, cache *ListingCache) *AuthorDirectory {
	return &AuthorDirectory{next: next, cache: cache}
}

func (d *AuthorDirectory) GetContact(ctx context.Context, userID string) (*domain.AuthorContact, error) {
	var contact domain.AuthorContact
	if ok, err := d.cache.get(ctx, authorKey(userID), &contact); err == nil && ok {
		return &contact, nil
	} else if err != nil {
		d.cache.logger.Warn("Author cache read failed", zap.String("user_id", userID), zap.Error(err))
	}

	found, err := d.next.GetContact(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := d.cache.set(ctx, authorKey(userID), found); err != nil {
		d.cache.logger.Warn("Author cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return found, nil
}
