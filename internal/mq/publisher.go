package mq

import (
	"context"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"

	"github.com/segmentio/kafka-go"
)

// AlertEventPublisher writes alert mutation events to the configured topic.
type AlertEventPublisher struct {
	writer *kafka.Writer
}

func NewAlertEventPublisher(brokers []string, topic string) *AlertEventPublisher {
	return &AlertEventPublisher{writer: NewWriter(brokers, topic)}
}

func (p *AlertEventPublisher) Publish(ctx context.Context, key string, event domain.AlertEvent) error {
	return PublishJSON(ctx, p.writer, key, event)
}

func (p *AlertEventPublisher) Close() error {
	return p.writer.Close()
}
