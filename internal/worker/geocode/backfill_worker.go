package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/bizli/geo-service/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	geocodePause    = time.Second            // пауза между запросами к геокодеру
)

// BackfillWorker геокодирует бизнесы, сохраненные без координат.
// Источник задач - Redis Stream от backend платформы, плюс стартовый
// проход по базе (sweep) для бизнесов, пропущенных до запуска воркера
type BackfillWorker struct {
	*worker.BaseWorker
	streamRepo     repository.StreamRepository
	businessRepo   repository.BusinessRepository
	geocoder       repository.GeocoderRepository
	consumerName   string
	maxRetries     int
	sweepBatchSize int
	countries      []string
	language       string
}

// NewBackfillWorker создает новый BackfillWorker
func NewBackfillWorker(
	streamRepo repository.StreamRepository,
	businessRepo repository.BusinessRepository,
	geocoder repository.GeocoderRepository,
	consumerGroup string,
	maxRetries int,
	sweepBatchSize int,
	countries []string,
	language string,
	logger *zap.Logger,
) *BackfillWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if language == "" {
		language = domain.LangEN
	}

	return &BackfillWorker{
		BaseWorker:     worker.NewBaseWorker("geocode-backfill", consumerGroup, logger),
		streamRepo:     streamRepo,
		businessRepo:   businessRepo,
		geocoder:       geocoder,
		consumerName:   consumerName,
		maxRetries:     maxRetries,
		sweepBatchSize: sweepBatchSize,
		countries:      countries,
		language:       language,
	}
}

// Start запускает воркер
func (w *BackfillWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BackfillWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Strings("countries", w.countries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamBusinessGeocode, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Стартовый sweep: ставим в очередь бизнесы без координат,
	// накопившиеся до запуска воркера
	if err := w.sweep(ctx); err != nil {
		logger.Warn("Initial sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// sweep ставит в очередь геокодирования активные бизнесы без координат
func (w *BackfillWorker) sweep(ctx context.Context) error {
	logger := w.Logger()

	var (
		businesses []domain.Business
		err        error
	)
	if len(w.countries) > 0 {
		businesses, err = w.businessRepo.ListMissingCoordinatesIn(ctx, w.countries, w.sweepBatchSize)
	} else {
		businesses, err = w.businessRepo.ListMissingCoordinates(ctx, w.sweepBatchSize)
	}
	if err != nil {
		return fmt.Errorf("failed to list businesses without coordinates: %w", err)
	}

	if len(businesses) == 0 {
		logger.Info("Sweep found no businesses without coordinates")
		return nil
	}

	logger.Info("Sweep enqueueing businesses for geocoding",
		zap.Int("count", len(businesses)))

	for _, b := range businesses {
		event := domain.BusinessGeocodeEvent{
			EventID:    uuid.New(),
			BusinessID: b.ID,
			Country:    b.Country,
			State:      b.State,
			City:       b.City,
			Address:    b.Address,
			Language:   w.language,
		}

		if err := w.streamRepo.PublishMessage(ctx, domain.StreamBusinessGeocode, event); err != nil {
			logger.Error("Failed to enqueue business for geocoding",
				zap.String("business_id", b.ID),
				zap.Error(err))
		}
	}

	return nil
}

// processBatch читает и обрабатывает пачку сообщений.
// Возвращает количество прочитанных сообщений
func (w *BackfillWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ReadMessages(
		ctx,
		domain.StreamBusinessGeocode,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to read messages: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamBusinessGeocode, w.ConsumerGroup(), msg.ID)
			continue
		}

		w.processEvent(ctx, event)

		if err := w.streamRepo.AckMessage(ctx, domain.StreamBusinessGeocode, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}

		// Публичные геокодеры ограничивают частоту запросов
		time.Sleep(geocodePause)
	}

	return len(messages), nil
}

// processEvent геокодирует адрес бизнеса и публикует результат
func (w *BackfillWorker) processEvent(ctx context.Context, event *domain.BusinessGeocodeEvent) {
	logger := w.Logger()

	lang := event.Language
	if lang == "" {
		lang = w.language
	}

	address := event.FullAddress()

	var (
		result *repository.GeocodeResult
		err    error
	)
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		result, err = w.geocoder.Geocode(ctx, address, lang)
		if err == nil {
			break
		}
		logger.Warn("Geocode attempt failed",
			zap.String("business_id", event.BusinessID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		time.Sleep(geocodePause)
	}

	doneEvent := domain.BusinessGeocodeDoneEvent{
		EventID:    event.EventID,
		BusinessID: event.BusinessID,
	}

	switch {
	case err != nil:
		doneEvent.Error = err.Error()
	case result == nil:
		doneEvent.Error = "address not found"
		logger.Warn("Geocoder returned no result",
			zap.String("business_id", event.BusinessID),
			zap.String("address", address))
	default:
		if err := w.businessRepo.UpdateCoordinates(ctx, event.BusinessID, result.Latitude, result.Longitude); err != nil {
			logger.Error("Failed to update business coordinates",
				zap.String("business_id", event.BusinessID),
				zap.Error(err))
			doneEvent.Error = err.Error()
			break
		}

		doneEvent.Latitude = &result.Latitude
		doneEvent.Longitude = &result.Longitude

		logger.Info("Business geocoded",
			zap.String("business_id", event.BusinessID),
			zap.Float64("lat", result.Latitude),
			zap.Float64("lon", result.Longitude))
	}

	if err := w.streamRepo.PublishMessage(ctx, domain.StreamBusinessGeocodeDone, doneEvent); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("business_id", event.BusinessID),
			zap.Error(err))
	}
}

// parseMessage парсит сообщение из стрима в BusinessGeocodeEvent
func (w *BackfillWorker) parseMessage(msg domain.StreamMessage) (*domain.BusinessGeocodeEvent, error) {
	var event domain.BusinessGeocodeEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.BusinessID == "" {
		return nil, fmt.Errorf("missing business_id")
	}

	return &event, nil
}
