package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisSessionStorage struct {
	client *redis.Client
}

func NewSessionRedisStorage(redis *redis.Client) *RedisSessionStorage {
	c := &RedisSessionStorage{
		client: redis,
	}
	return c
}

func (r RedisSessionStorage) GetUserIdBySession(sessionID string) (userID string, ok bool) {
	v, err := r.client.Get(context.Background(), sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false
		}
		slog.Error(err.Error())
		return "", false
	}
	return v, true
}

func (r RedisSessionStorage) StoreSession(sessionID string, userID string) {
	r.client.Set(context.Background(), sessionID, userID, time.Hour*11)
}

func (r RedisSessionStorage) DeleteSession(sessionID string) (ok bool) {
	r.client.Del(context.Background(), sessionID)
	return true
}
