package worker

// Failed jobs land in a per-queue dead letter list (dlq:{queue}) so
// they can be inspected and replayed by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DLQ is the dead-letter sink shared by all workers.
type DLQ struct {
	rdb *redis.Client
}

func NewDLQ(rdb *redis.Client) *DLQ {
	return &DLQ{rdb: rdb}
}

type dlqEntry struct {
	Queue    string          `json:"queue"`
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
}

// Push records a failed job. Errors here are logged and swallowed: a
// broken DLQ must not take the worker loop down with it.
func (d *DLQ) Push(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string) {
	entry := dlqEntry{
		Queue:    queue,
		JobType:  jobType,
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}
	if err := d.rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to push entry")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Msg("dlq: job moved to dead letter queue")
}

// Len reports the number of dead entries for a queue.
func (d *DLQ) Len(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, dlqPrefix+queue).Result()
}
