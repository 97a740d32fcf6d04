// Package mailer implements the outbound email queue: a Redis list producers
// push JSON jobs onto and a worker drains. Delivery is at-most-once and
// best-effort; auth flows never block on it.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	"github.com/redis/go-redis/v9"
)

const queueKey = "email:queue"

type Queue struct {
	rdb *redis.Client
	key string
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb, key: queueKey}
}

func (q *Queue) Send(ctx context.Context, mail domain.Mail) error {
	payload, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}

	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue mail job: %w", err)
	}

	return nil
}
