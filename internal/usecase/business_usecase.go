package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/bizli/geo-service/internal/pkg/errors"
	"github.com/bizli/geo-service/internal/pkg/utils"
)

// BusinessUseCase - запросы бизнес-профилей по локации
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
	logger       *zap.Logger
}

// NewBusinessUseCase - создание нового BusinessUseCase
func NewBusinessUseCase(businessRepo repository.BusinessRepository, logger *zap.Logger) *BusinessUseCase {
	return &BusinessUseCase{
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// GetBusinessesByLocation возвращает активные бизнесы по локации.
// Без радиуса порядок - по убыванию рейтинга. Когда заданы радиус и
// позиция пользователя, остаются только бизнесы с обеими координатами
// в пределах радиуса, отсортированные по возрастанию дистанции.
// Ошибки хранилища возвращаются вызывающему без подавления
func (uc *BusinessUseCase) GetBusinessesByLocation(ctx context.Context, q domain.BusinessLocationQuery) ([]domain.Business, error) {
	if q.Country == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"field": "country",
		})
	}
	if q.HasRadiusFilter() {
		if !utils.ValidateCoordinates(*q.UserLat, *q.UserLon) {
			return nil, errors.ErrInvalidCoordinates
		}
		if !utils.ValidateRadius(*q.RadiusKm) {
			return nil, errors.ErrInvalidRadius
		}
	}

	businesses, err := uc.businessRepo.GetByLocation(ctx, q.Country, q.State, q.City)
	if err != nil {
		uc.logger.Error("Failed to query businesses by location",
			zap.String("country", q.Country),
			zap.Error(err))
		return nil, err
	}

	if !q.HasRadiusFilter() {
		return businesses, nil
	}

	return FilterByRadius(businesses, *q.UserLat, *q.UserLon, *q.RadiusKm), nil
}

// FilterByRadius оставляет бизнесы с обеими координатами в пределах
// радиуса от позиции пользователя и сортирует их по возрастанию
// дистанции, перекрывая исходный порядок по рейтингу
func FilterByRadius(businesses []domain.Business, userLat, userLon, radiusKm float64) []domain.Business {
	filtered := make([]domain.Business, 0, len(businesses))
	for _, b := range businesses {
		if !b.HasCoordinates() {
			continue
		}
		distance := utils.HaversineDistance(userLat, userLon, *b.Latitude, *b.Longitude)
		if distance > radiusKm {
			continue
		}
		b.DistanceKm = &distance
		filtered = append(filtered, b)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return *filtered[i].DistanceKm < *filtered[j].DistanceKm
	})

	return filtered
}
