package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
)

const (
	sessionKeyPrefix  = "concierge:session:"
	intentCountersKey = "concierge:analytics:intents"
)

var ErrSessionNotFound = errors.New("session not found")

type IRedis interface {
	SetSession(ctx context.Context, session entity.GuestSession, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (entity.GuestSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) ([]entity.GuestSession, error)
	IncrIntentCount(ctx context.Context, intent string) error
	GetIntentCounts(ctx context.Context) (map[string]int64, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) SetSession(ctx context.Context, session entity.GuestSession, expiration time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := sessionKeyPrefix + session.ID
	if err := r.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error storing session %s: %v", session.ID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetSession(ctx context.Context, sessionID string) (entity.GuestSession, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return entity.GuestSession{}, ErrSessionNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting session %s: %v", sessionID, err))
		return entity.GuestSession{}, err
	}

	var session entity.GuestSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return entity.GuestSession{}, err
	}
	return session, nil
}

func (r *redisClient) DeleteSession(ctx context.Context, sessionID string) error {
	deleted, err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", sessionID, err))
		return err
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *redisClient) ListSessions(ctx context.Context) ([]entity.GuestSession, error) {
	var sessions []entity.GuestSession

	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		val, err := r.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			continue
		} else if err != nil {
			return nil, err
		}

		var session entity.GuestSession
		if err := json.Unmarshal([]byte(val), &session); err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *redisClient) IncrIntentCount(ctx context.Context, intent string) error {
	return r.client.HIncrBy(ctx, intentCountersKey, intent, 1).Err()
}

func (r *redisClient) GetIntentCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, intentCountersKey).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(raw))
	for intent, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		counts[intent] = n
	}
	return counts, nil
}
