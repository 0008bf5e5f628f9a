package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "himalayan-nest:listing:abc", listingKey("abc"))
	assert.Equal(t, "himalayan-nest:author:u1", authorKey("u1"))
}

func TestNewListingCache_DefaultTTL(t *testing.T) {
	c := NewListingCache(nil, 0, logger.NewNop())
	assert.Equal(t, DefaultTTL, c.ttl)

	c = NewListingCache(nil, time.Hour, logger.NewNop())
	assert.Equal(t, time.Hour, c.ttl)
}
