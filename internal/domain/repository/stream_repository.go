package repository

import (
	"context"

	"github.com/bizli/geo-service/internal/domain"
)

// StreamRepository определяет работу с Redis Streams для фоновых задач
type StreamRepository interface {
	// CreateConsumerGroup создает consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishMessage публикует сообщение в стрим
	PublishMessage(ctx context.Context, stream string, data interface{}) error

	// ReadMessages читает пачку сообщений через consumer group
	ReadMessages(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
