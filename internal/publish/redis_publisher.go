package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// streamMaxLen bounds the executions stream so memory use stays flat under
// sustained trading volume; older entries are trimmed approximately.
const streamMaxLen int64 = 100000

// RedisPublisher appends every execution to a Redis stream, giving
// consumers (a market-data service, a cache warmer) an ordered, replayable
// feed without coupling them to the matching core's process.
type RedisPublisher struct {
	rdb    *redis.Client
	stream string
}

// NewRedisPublisher builds a RedisPublisher writing to stream on addr.
func NewRedisPublisher(addr, password string, db int, stream string) *RedisPublisher {
	return &RedisPublisher{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		stream: stream,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, exec Execution) error {
	payload, err := json.Marshal(exec)
	if err != nil {
		return fmt.Errorf("publish: marshal execution: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"payload": payload,
		},
	}
	if err := p.rdb.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish: redis xadd %s: %w", p.stream, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}
