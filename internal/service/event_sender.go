package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
)

type EventPublisher interface {
	Publish(ctx context.Context, key string, event domain.AlertEvent) error
}

type EventQueueConsumer interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.AlertEvent, error)
}

// EventSender drains the mutation event queue and publishes to the broker.
// Runs as a background goroutine for the life of the process.
type EventSender struct {
	logger    *slog.Logger
	queue     EventQueueConsumer
	publisher EventPublisher
}

func NewEventSender(logger *slog.Logger, queue EventQueueConsumer, publisher EventPublisher) *EventSender {
	return &EventSender{
		logger:    logger,
		queue:     queue,
		publisher: publisher,
	}
}

func (s *EventSender) Run(ctx context.Context) {
	s.logger.Info("eventSender started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("eventSender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.sendWithRetry(ctx, event)
	}
}

func (s *EventSender) sendWithRetry(ctx context.Context, event domain.AlertEvent) {
	const maxRetries = 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return
		}

		err := s.publisher.Publish(ctx, event.AlertID.String(), event)
		if err == nil {
			s.logger.Debug("alert event published",
				slog.String("kind", string(event.Kind)),
				slog.String("alert_id", event.AlertID.String()),
			)
			return
		}

		s.logger.Warn("alert event publish failed",
			slog.Int("attempt", attempt),
			slog.String("kind", string(event.Kind)),
			slog.String("alert_id", event.AlertID.String()),
			slog.Any("error", err),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}

	s.logger.Error("alert event dropped after retries",
		slog.String("kind", string(event.Kind)),
		slog.String("alert_id", event.AlertID.String()),
	)
}
