package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRedisUnavailable = errors.New("redis unavailable")

const LoginFailPrefix = "login:fail"

// LoginAttemptRepository 按来源 IP 记录登录失败次数
type LoginAttemptRepository struct {
	RDB *redis.Client
}

func loginFailKey(ip string) string {
	return fmt.Sprintf("%s:%s", LoginFailPrefix, ip)
}

// Failures 当前窗口内的失败次数，键不存在时为 0
func (r *LoginAttemptRepository) Failures(ctx context.Context, ip string) (int64, error) {
	n, err := r.RDB.Get(ctx, loginFailKey(ip)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, ErrRedisUnavailable
	}
	return n, nil
}

// RecordFailure 计数加一；首次失败时开启窗口
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, ip string, window time.Duration) (int64, error) {
	key := loginFailKey(ip)
	pipe := r.RDB.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, ErrRedisUnavailable
	}
	return incr.Val(), nil
}

// Reset 登录成功后清零（幂等）
func (r *LoginAttemptRepository) Reset(ctx context.Context, ip string) error {
	if err := r.RDB.Del(ctx, loginFailKey(ip)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
