package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService is a nil-safe wrapper around Redis. A nil service (or
// one whose connection failed) turns every call into a no-op error so
// handlers can treat caching as best-effort.
type CacheService struct {
	client     *redis.Client
	defaultTTL time.Duration
}

type CacheConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	DefaultTTL time.Duration
}

func NewCacheService(config CacheConfig) *CacheService {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
		return nil
	}

	log.Println("Successfully connected to Redis")

	return &CacheService{
		client:     rdb,
		defaultTTL: config.DefaultTTL,
	}
}

// Set stores a value with TTL (zero means the default TTL).
func (cs *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if cs == nil || cs.client == nil {
		return fmt.Errorf("cache service not available")
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if ttl == 0 {
		ttl = cs.defaultTTL
	}

	return cs.client.Set(ctx, key, jsonData, ttl).Err()
}

// Get retrieves a value into dest; returns redis.Nil on a miss.
func (cs *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if cs == nil || cs.client == nil {
		return fmt.Errorf("cache service not available")
	}

	val, err := cs.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

func (cs *CacheService) Delete(ctx context.Context, key string) error {
	if cs == nil || cs.client == nil {
		return fmt.Errorf("cache service not available")
	}

	return cs.client.Del(ctx, key).Err()
}

// DeletePattern removes all keys matching a pattern.
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if cs == nil || cs.client == nil {
		return fmt.Errorf("cache service not available")
	}

	keys, err := cs.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	return cs.client.Del(ctx, keys...).Err()
}

// GenerateNotesListKey builds the cache key for a filtered note list.
func (cs *CacheService) GenerateNotesListKey(userID, searchTerm, folderID, tagID string) string {
	key := fmt.Sprintf("notes:list:user:%s", userID)
	if searchTerm != "" {
		key += ":search:" + searchTerm
	}
	if folderID != "" {
		key += ":folder:" + folderID
	}
	if tagID != "" {
		key += ":tag:" + tagID
	}
	return key
}

func (cs *CacheService) GenerateNoteDetailKey(noteID, userID string) string {
	return fmt.Sprintf("notes:detail:note:%s:user:%s", noteID, userID)
}

// InvalidateUserNotesCache removes every note-related entry for a
// user. Called after any note, folder, or tag mutation since folder
// and tag changes affect expanded note representations.
func (cs *CacheService) InvalidateUserNotesCache(ctx context.Context, userID string) error {
	if cs == nil || cs.client == nil {
		return nil
	}

	patterns := []string{
		fmt.Sprintf("notes:list:user:%s*", userID),
		fmt.Sprintf("notes:detail:*:user:%s", userID),
	}

	for _, pattern := range patterns {
		if err := cs.DeletePattern(ctx, pattern); err != nil {
			log.Printf("Failed to delete cache pattern %s: %v", pattern, err)
		}
	}

	return nil
}

// Health checks if Redis is available.
func (cs *CacheService) Health(ctx context.Context) error {
	if cs == nil || cs.client == nil {
		return fmt.Errorf("cache service not available")
	}

	return cs.client.Ping(ctx).Err()
}

func (cs *CacheService) Close() error {
	if cs != nil && cs.client != nil {
		return cs.client.Close()
	}
	return nil
}
