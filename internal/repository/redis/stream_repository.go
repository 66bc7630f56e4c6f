package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type streamRepository struct {
	client       *redis.Client
	blockTimeout time.Duration
	logger       *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// blockTimeout задаёт максимальное время блокировки XREADGROUP.
func NewStreamRepository(client *redis.Client, blockTimeout time.Duration, logger *zap.Logger) repository.StreamRepository {
	if blockTimeout <= 0 {
		blockTimeout = 1 * time.Second
	}
	return &streamRepository{
		client:       client,
		blockTimeout: blockTimeout,
		logger:       logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// MKSTREAM автоматически создаст стрим, если он не существует;
	// "$" - читать только новые сообщения
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		// Игнорируем ошибку BUSYGROUP - группа уже существует
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// PublishMessage публикует сообщение в стрим в поле "data" как JSON
func (r *streamRepository) PublishMessage(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal stream message: %w", err)
	}

	err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"data": string(payload)},
	}).Err()
	if err != nil {
		r.logger.Error("Failed to publish stream message",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	return nil
}

// ReadMessages читает пачку сообщений через consumer group
func (r *streamRepository) ReadMessages(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    r.blockTimeout,
	}).Result()

	if err == redis.Nil {
		return nil, nil // очередь пуста
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	messages := make([]domain.StreamMessage, 0, count)
	for _, res := range result {
		for _, msg := range res.Messages {
			data, ok := msg.Values["data"].(string)
			if !ok {
				r.logger.Warn("Stream message without data field, acking",
					zap.String("stream", stream),
					zap.String("id", msg.ID))
				_ = r.AckMessage(ctx, stream, group, msg.ID)
				continue
			}
			messages = append(messages, domain.StreamMessage{
				ID:   msg.ID,
				Data: data,
			})
		}
	}

	return messages, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to ack stream message",
			zap.String("stream", stream),
			zap.String("id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}
