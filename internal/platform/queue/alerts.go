package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careconnect/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by Pop when no alert arrived before the timeout.
var ErrQueueEmpty = errors.New("alert queue empty")

// AlertQueue is a Redis list of JSON encoded priority alerts. Producers
// LPUSH and the worker BRPOPs, so alerts are handled oldest first.
type AlertQueue struct {
	rdb  redis.Cmdable
	name string
}

func NewAlertQueue(rdb redis.Cmdable, name string) *AlertQueue {
	return &AlertQueue{rdb: rdb, name: name}
}

func (q *AlertQueue) Name() string {
	return q.name
}

func (q *AlertQueue) Publish(ctx context.Context, alert model.PriorityAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert for patient %s: %w", alert.PatientID, err)
	}
	if err := q.rdb.LPush(ctx, q.name, payload).Err(); err != nil {
		return fmt.Errorf("failed to push alert to queue %s: %w", q.name, err)
	}
	return nil
}

// Pop blocks for up to timeout waiting for the next alert.
func (q *AlertQueue) Pop(ctx context.Context, timeout time.Duration) (*model.PriorityAlert, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQueueEmpty
		}
		return nil, fmt.Errorf("failed to pop from queue %s: %w", q.name, err)
	}

	// res is [queueName, value]
	if len(res) < 2 || res[1] == "" {
		return nil, ErrQueueEmpty
	}

	var alert model.PriorityAlert
	if err := json.Unmarshal([]byte(res[1]), &alert); err != nil {
		return nil, fmt.Errorf("malformed alert on queue %s: %w", q.name, err)
	}
	return &alert, nil
}

// Requeue puts an alert back at the consuming end so it is retried next.
func (q *AlertQueue) Requeue(ctx context.Context, alert model.PriorityAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert for patient %s: %w", alert.PatientID, err)
	}
	if err := q.rdb.RPush(ctx, q.name, payload).Err(); err != nil {
		return fmt.Errorf("failed to requeue alert for patient %s: %w", alert.PatientID, err)
	}
	return nil
}
