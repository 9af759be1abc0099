package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const oauthStatePrefix = "oauth:state:"

// StateStore 保存 OAuth 授权跳转时签发的一次性 state
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume 校验并删除 state，不存在或已过期返回 false
	Consume(ctx context.Context, state string) (bool, error)
}

type redisStateStore struct {
	rdb *redis.Client
}

func NewStateStore(rdb *redis.Client) StateStore {
	return &redisStateStore{rdb: rdb}
}

func (s *redisStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.rdb.Set(ctx, oauthStatePrefix+state, "1", ttl).Err()
}

func (s *redisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	// GETDEL 保证同一个 state 只能用一次 (Redis >= 6.2)
	err := s.rdb.GetDel(ctx, oauthStatePrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
