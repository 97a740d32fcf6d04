package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	"github.com/redis/go-redis/v9"
)

// DeliverFunc hands a dequeued job to the actual mail transport.
type DeliverFunc func(ctx context.Context, mail domain.Mail) error

// LogDelivery is the default transport: it only records the send. Real SMTP
// delivery plugs in behind the same signature.
func LogDelivery(logger *slog.Logger) DeliverFunc {
	return func(_ context.Context, mail domain.Mail) error {
		logger.Info("delivering email", "variant", mail.Variant, "to", mail.To)
		return nil
	}
}

type Worker struct {
	rdb     *redis.Client
	key     string
	deliver DeliverFunc
	logger  *slog.Logger
}

func NewWorker(rdb *redis.Client, deliver DeliverFunc, logger *slog.Logger) *Worker {
	return &Worker{rdb: rdb, key: queueKey, deliver: deliver, logger: logger}
}

// Run drains the queue until ctx is cancelled. Failed deliveries are logged
// and dropped; the forgot-password flow is the recovery path for lost codes.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := w.rdb.BRPop(ctx, time.Second, w.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Error("mail queue pop failed", "error", err)
			time.Sleep(time.Second)

			continue
		}

		var mail domain.Mail
		if err := json.Unmarshal([]byte(res[1]), &mail); err != nil {
			w.logger.Error("discarding malformed mail job", "error", err)

			continue
		}

		if err := w.deliver(ctx, mail); err != nil {
			w.logger.Error("mail delivery failed", "variant", mail.Variant, "to", mail.To, "error", err)
		}
	}
}
