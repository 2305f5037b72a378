package redis

import (
	"Lingo/services/store"
	redis_utils "Lingo/services/redis/utils"
	game_constants "Lingo/constants/game"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient caches derived views so the hot paths avoid hitting Postgres.
// Everything here is disposable: Redis is never authoritative, a miss or a
// failure always degrades to the store.
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// SaveDirectory caches the joinable-room list with a short TTL.
func (rc *RedisClient) SaveDirectory(entries []store.DirectoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("error marshaling directory: %v", err)
	}
	return rc.Client.Set(rc.Ctx, redis_utils.DirectoryKey(),
		data, game_constants.DirectoryCacheTTL).Err()
}

// GetDirectory returns the cached joinable-room list, or an error on miss.
func (rc *RedisClient) GetDirectory() ([]store.DirectoryEntry, error) {
	data, err := rc.Client.Get(rc.Ctx, redis_utils.DirectoryKey()).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting cached directory: %v", err)
	}
	var entries []store.DirectoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error unmarshaling cached directory: %v", err)
	}
	return entries, nil
}

// SavePresence records that a player is connected right now.
// Key format: "presence:{playerID}", TTL one hour.
func (rc *RedisClient) SavePresence(playerID, roomID string) error {
	key := redis_utils.PresenceKey(playerID)
	return rc.Client.Set(rc.Ctx, key, roomID, time.Hour).Err()
}

// DeletePresence drops a player's presence marker.
func (rc *RedisClient) DeletePresence(playerID string) error {
	return rc.Client.Del(rc.Ctx, redis_utils.PresenceKey(playerID)).Err()
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
