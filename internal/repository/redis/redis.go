package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"school-store/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Storage keeps active session ids so logout can invalidate a session before
// its cookie expires.
type Storage struct {
	db         *redis.Client
	sessionTTL time.Duration
}

func InitRedis(connStr, redisPassword, redisDbNumber string, sessionTTL time.Duration) (*Storage, error) {
	dbNumber, err := strconv.Atoi(redisDbNumber)
	if err != nil {
		return nil, err
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     connStr,
		Username: "",
		Password: redisPassword,
		DB:       dbNumber,
	})
	return &Storage{db: redisClient, sessionTTL: sessionTTL}, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *Storage) StoreSession(ctx context.Context, sessionID, userID string) error {
	const op = "storage.Redis.StoreSession"

	if err := s.db.Set(ctx, sessionKey(sessionID), userID, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetSession(ctx context.Context, sessionID string) (string, error) {
	const op = "storage.Redis.GetSession"

	userID, err := s.db.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, repository.ErrSessionNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}

func (s *Storage) DeleteSession(ctx context.Context, sessionID string) error {
	const op = "storage.Redis.DeleteSession"

	if err := s.db.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
