package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by Pop when no job arrived within the timeout.
var ErrQueueEmpty = errors.New("queue empty")

// MailQueue is the Redis list carrying admission mail jobs.
// It satisfies service.AdmissionNotifier so MAIL_ASYNC only swaps the
// notifier handed to the admission service.
type MailQueue struct {
	rdb *redis.Client
	key string
}

func NewMailQueue(rdb *redis.Client) *MailQueue {
	return &MailQueue{rdb: rdb, key: config.WorkerKey.AdmissionMailQueue}
}

// NotifyAdmission enqueues the job for the mail worker.
func (q *MailQueue) NotifyAdmission(ctx context.Context, job model.AdmissionMailJob) error {
	return q.Push(ctx, job)
}

func (q *MailQueue) Push(ctx context.Context, job model.AdmissionMailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode mail job: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("enqueue mail job: %w", err)
	}
	return nil
}

// Pop blocks up to timeout. A zero timeout pops without blocking.
func (q *MailQueue) Pop(ctx context.Context, timeout time.Duration) (model.AdmissionMailJob, error) {
	var job model.AdmissionMailJob

	var raw string
	if timeout > 0 {
		result, err := q.rdb.BLPop(ctx, timeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return job, ErrQueueEmpty
			}
			return job, err
		}
		if len(result) < 2 {
			return job, ErrQueueEmpty
		}
		raw = result[1]
	} else {
		result, err := q.rdb.LPop(ctx, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return job, ErrQueueEmpty
			}
			return job, err
		}
		raw = result
	}

	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return job, fmt.Errorf("decode mail job: %w", err)
	}
	return job, nil
}
