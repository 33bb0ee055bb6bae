package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/orders-api/internal/domain/order"
)

// Sequencer reports how many orders precede the one being created on
// now's day. attempt is 0 on the first try and grows with every retry
// after an order number collision.
type Sequencer interface {
	Preceding(
		ctx context.Context,
		repo domain.Repository,
		now time.Time,
		attempt int,
	) (int64, error)
}

// --------------------------------------------------
// Database count
// --------------------------------------------------

// CountSequencer derives the sequence from the orders already stored for
// the day. After a collision it jumps past the highest number issued
// today, so gaps left by deleted orders cost a single retry.
type CountSequencer struct{}

func (CountSequencer) Preceding(
	ctx context.Context,
	repo domain.Repository,
	now time.Time,
	attempt int,
) (int64, error) {
	if attempt == 0 {
		return repo.CountCreatedSince(ctx, domain.StartOfDay(now))
	}

	issued, err := issuedToday(ctx, repo, now)
	if err != nil {
		return 0, err
	}
	return issued + int64(attempt-1), nil
}

// issuedToday is the larger of the day's order count and the sequence of
// its highest order number.
func issuedToday(ctx context.Context, repo domain.Repository, now time.Time) (int64, error) {
	count, err := repo.CountCreatedSince(ctx, domain.StartOfDay(now))
	if err != nil {
		return 0, err
	}

	latest, err := repo.LatestNumber(ctx, domain.DayKey(now))
	if err != nil {
		return 0, err
	}
	if seq, ok := domain.Sequence(latest); ok && seq > count {
		return seq, nil
	}
	return count, nil
}

// --------------------------------------------------
// Redis counter
// --------------------------------------------------

const (
	redisKeyPrefix = "orders:seq:"
	redisKeyTTL    = 48 * time.Hour
)

// raiseAndIncr lifts the counter to at least ARGV[1] before incrementing,
// so a key that fell behind the database catches up in one round trip.
var raiseAndIncr = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current < tonumber(ARGV[1]) then
	redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[2])
end
return redis.call('INCR', KEYS[1])
`)

// RedisSequencer hands out the daily sequence with INCR so replicas never
// read the same value. The key is seeded from the database the first time
// it is used on a given day and raised past the database's highest number
// on every retry.
type RedisSequencer struct {
	rdb *redis.Client
}

func NewRedisSequencer(rdb *redis.Client) *RedisSequencer {
	return &RedisSequencer{rdb: rdb}
}

func (s *RedisSequencer) Preceding(
	ctx context.Context,
	repo domain.Repository,
	now time.Time,
	attempt int,
) (int64, error) {
	key := redisKeyPrefix + domain.DayKey(now)

	if attempt > 0 {
		return s.resync(ctx, repo, now, key)
	}

	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("check sequence key: %w", err)
	}

	if exists == 0 {
		issued, err := issuedToday(ctx, repo, now)
		if err != nil {
			return 0, err
		}
		if err := s.rdb.SetNX(ctx, key, issued, redisKeyTTL).Err(); err != nil {
			return 0, fmt.Errorf("seed sequence key: %w", err)
		}
	}

	next, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment sequence key: %w", err)
	}

	return next - 1, nil
}

func (s *RedisSequencer) resync(
	ctx context.Context,
	repo domain.Repository,
	now time.Time,
	key string,
) (int64, error) {
	issued, err := issuedToday(ctx, repo, now)
	if err != nil {
		return 0, err
	}

	next, err := raiseAndIncr.Run(ctx, s.rdb, []string{key}, issued, int64(redisKeyTTL/time.Second)).Int64()
	if err != nil {
		return 0, fmt.Errorf("resync sequence key: %w", err)
	}

	return next - 1, nil
}
