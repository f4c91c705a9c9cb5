package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"transport-backend/internal/models"

	redisClient "github.com/redis/go-redis/v9"
)

// UnreadCountCache caches the unread-notification count per (role, email)
// pair so the polling feed does not hit MongoDB on every refresh. Each count
// key is also tracked in a per-role set, so a role-wide broadcast can
// invalidate every cached pair for that role in one call.
type UnreadCountCache struct {
	client *redisClient.Client
	config Config
	ctx    context.Context
}

// Config holds cache key layout and expiry settings.
type Config struct {
	KeyPrefix string
	TTL       time.Duration
}

func DefaultConfig() Config {
	return Config{
		KeyPrefix: "notifications:",
		TTL:       30 * time.Second,
	}
}

func NewUnreadCountCache(client *redisClient.Client, config Config) *UnreadCountCache {
	return &UnreadCountCache{
		client: client,
		config: config,
		ctx:    context.Background(),
	}
}

func (c *UnreadCountCache) countKey(role models.Role, email string) string {
	return fmt.Sprintf("%sunread:%s:%s", c.config.KeyPrefix, role, email)
}

func (c *UnreadCountCache) roleSetKey(role models.Role) string {
	return fmt.Sprintf("%sunread_role:%s", c.config.KeyPrefix, role)
}

// Get returns the cached unread count for the pair. The second return is
// false on a cache miss or when Redis is unavailable; callers fall through
// to the repository count.
func (c *UnreadCountCache) Get(role models.Role, email string) (int64, bool) {
	if c.client == nil {
		return 0, false
	}

	data, err := c.client.Get(c.ctx, c.countKey(role, email)).Result()
	if err != nil {
		return 0, false
	}

	count, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, false
	}

	return count, true
}

// Set stores the unread count for the pair and registers the key in the
// role's invalidation set.
func (c *UnreadCountCache) Set(role models.Role, email string, count int64) error {
	if c.client == nil {
		return nil
	}

	key := c.countKey(role, email)
	pipe := c.client.Pipeline()
	pipe.Set(c.ctx, key, strconv.FormatInt(count, 10), c.config.TTL)
	pipe.SAdd(c.ctx, c.roleSetKey(role), key)
	pipe.Expire(c.ctx, c.roleSetKey(role), c.config.TTL*4)
	_, err := pipe.Exec(c.ctx)
	if err != nil {
		return fmt.Errorf("failed to cache unread count: %w", err)
	}

	return nil
}

// InvalidateUser drops the cached count for one (role, email) pair; used when
// a user-scoped notification is created or read.
func (c *UnreadCountCache) InvalidateUser(role models.Role, email string) error {
	if c.client == nil {
		return nil
	}

	key := c.countKey(role, email)
	pipe := c.client.Pipeline()
	pipe.Del(c.ctx, key)
	pipe.SRem(c.ctx, c.roleSetKey(role), key)
	_, err := pipe.Exec(c.ctx)
	return err
}

// InvalidateRole drops every cached count for the role; used when a
// broadcast touches all users holding it.
func (c *UnreadCountCache) InvalidateRole(role models.Role) error {
	if c.client == nil {
		return nil
	}

	setKey := c.roleSetKey(role)
	keys, err := c.client.SMembers(c.ctx, setKey).Result()
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	if len(keys) > 0 {
		pipe.Del(c.ctx, keys...)
	}
	pipe.Del(c.ctx, setKey)
	_, err = pipe.Exec(c.ctx)
	return err
}
