package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter fixed-window limiter с общими счетчиками в Redis.
// Для горизонтально масштабируемых развертываний, где процесс-локальные
// счетчики недосчитывают злоупотребления. Ключ: "rl:<name>:<token>".
type RedisLimiter struct {
	rdb    *redis.Client
	name   string
	limit  int
	window time.Duration
	logger Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRedisLimiter создает limiter поверх Redis
func NewRedisLimiter(rdb *redis.Client, name string, limit int, window time.Duration, log Logger) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		name:   name,
		limit:  limit,
		window: window,
		logger: log,
	}
}

// Name возвращает имя limiter-а
func (l *RedisLimiter) Name() string {
	return l.name
}

// Allow регистрирует запрос. При недоступности Redis запрос пропускается
// (fail open), чтобы деградация стора не валила публичные endpoint-ы.
func (l *RedisLimiter) Allow(token string) (bool, int) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := "rl:" + l.name + ":" + token

	result, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		l.logger.Warn("ratelimit: redis unavailable, failing open: %v", err)
		return true, 0
	}

	if result > int64(l.limit) {
		return false, 0
	}
	return true, l.limit - int(result)
}
