package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// Allow counts one hit for key in the current fixed window and reports
// whether the count is still within limit. limit <= 0 disables limiting.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	k := windowKey(key, time.Now(), window)

	var incr *redis.IntCmd
	_, err := r.C.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// windowKey names the counter for the window containing now, e.g. rl:preview:1.2.3.4:1717000000.
func windowKey(key string, now time.Time, window time.Duration) string {
	return "rl:" + key + ":" + strconv.FormatInt(now.Truncate(window).Unix(), 10)
}
