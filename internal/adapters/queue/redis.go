// Package queue provides the Redis-list task queue. Producers LPUSH JSON
// task payloads; the worker BRPOPs them. Delivery is at-least-once.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"conferencecentral/internal/domain"
)

// tasksListKey is the Redis list holding pending tasks.
const tasksListKey = "conference:tasks"

// RedisQueue is a task queue backed by a Redis list. It implements both
// domain.TaskQueue and domain.TaskConsumer.
type RedisQueue struct {
	client *redis.Client
}

var (
	_ domain.TaskQueue    = (*RedisQueue)(nil)
	_ domain.TaskConsumer = (*RedisQueue)(nil)
)

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	if task == nil || task.Type == "" {
		return fmt.Errorf("task type is required")
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, tasksListKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next task. Returns (nil, nil) when
// the timeout elapses with no task available.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.Task, error) {
	res, err := q.client.BRPop(ctx, timeout, tasksListKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue task: %w", err)
	}
	// BRPop returns [key, value].
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of length %d", len(res))
	}
	task := &domain.Task{}
	if err := json.Unmarshal([]byte(res[1]), task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return task, nil
}
