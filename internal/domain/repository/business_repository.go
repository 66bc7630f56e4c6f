package repository

import (
	"context"

	"github.com/bizli/geo-service/internal/domain"
)

// BusinessRepository определяет методы для работы с бизнес-профилями
type BusinessRepository interface {
	// GetByID возвращает бизнес по id
	GetByID(ctx context.Context, id string) (*domain.Business, error)

	// GetByLocation возвращает активные бизнесы по денормализованным
	// строкам страна/штат/город, отсортированные по убыванию рейтинга
	GetByLocation(ctx context.Context, country, state, city string) ([]domain.Business, error)

	// Search выполняет плоский поиск по термину/категории/ссылочным id
	Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Business, error)

	// ListMissingCoordinates возвращает активные бизнесы без координат
	ListMissingCoordinates(ctx context.Context, limit int) ([]domain.Business, error)

	// ListMissingCoordinatesIn - как ListMissingCoordinates, но только
	// для перечисленных стран (поэтапное включение рынков)
	ListMissingCoordinatesIn(ctx context.Context, countries []string, limit int) ([]domain.Business, error)

	// UpdateCoordinates проставляет координаты бизнесу (backfill воркер)
	UpdateCoordinates(ctx context.Context, id string, lat, lon float64) error
}
