package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/storefront/internal/core/error"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

const recentKey = "traces:recent"

type RedisTraceRepository struct {
	rdb        redis.Cmdable
	ttl        time.Duration
	maxEntries int64
}

// NewRedisTraceRepository archives traces with the given TTL (0 keeps them)
// and keeps at most maxEntries ids in the recent index (0 is unbounded).
func NewRedisTraceRepository(rdb redis.Cmdable, ttl time.Duration, maxEntries int64) *RedisTraceRepository {
	return &RedisTraceRepository{rdb: rdb, ttl: ttl, maxEntries: maxEntries}
}

func (r *RedisTraceRepository) traceKey(requestID string) string {
	return fmt.Sprintf("trace:%s", requestID)
}

func (r *RedisTraceRepository) Save(ctx context.Context, requestID string, trace model.State) error {
	if requestID == "" {
		return errx.Validation(fmt.Errorf("request id is empty"))
	}
	b, err := json.Marshal(model.ArchivedTrace{RequestID: requestID, Trace: trace})
	if err != nil {
		logx.Error().Err(err).Str("request_id", requestID).Msg("failed to marshal trace")
		return fmt.Errorf("marshal trace: %w", err)
	}
	key := r.traceKey(requestID)

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, b, r.ttl)
		pipe.LPush(ctx, recentKey, requestID)
		if r.maxEntries > 0 {
			pipe.LTrim(ctx, recentKey, 0, r.maxEntries-1)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to archive trace in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTraceRepository) Load(ctx context.Context, requestID string) (*model.ArchivedTrace, error) {
	key := r.traceKey(requestID)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Error().Err(err).Str("key", key).Msg("failed to load trace from redis")
		}
		return nil, errx.WrapRedis(err)
	}

	var t model.ArchivedTrace
	if err := json.Unmarshal(raw, &t); err != nil {
		logx.Error().Err(err).Str("request_id", requestID).Msg("failed to unmarshal trace")
		return nil, fmt.Errorf("unmarshal trace %s: %w", requestID, err)
	}
	return &t, nil
}

func (r *RedisTraceRepository) Recent(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	ids, err := r.rdb.LRange(ctx, recentKey, 0, limit-1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		logx.Error().Err(err).Str("key", recentKey).Msg("failed to list recent traces")
		return nil, errx.WrapRedis(err)
	}
	return ids, nil
}

func (r *RedisTraceRepository) Count(ctx context.Context) (int, error) {
	n, err := r.rdb.LLen(ctx, recentKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", recentKey).Msg("failed to count traces")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.TraceRepository = (*RedisTraceRepository)(nil)
