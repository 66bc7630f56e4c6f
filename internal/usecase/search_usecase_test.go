package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
	"github.com/bizli/geo-service/internal/repository/memory"
	"github.com/bizli/geo-service/internal/usecase"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func newSearchUseCase(businessRepo *MockBusinessRepository, geoRepo *MockGeographyRepository, cacheRepo *MockCacheRepository) *usecase.SearchUseCase {
	logger := zap.NewNop()
	geoUC := usecase.NewGeographyUseCase(geoRepo, memory.NewGeographyCache(), logger)
	return usecase.NewSearchUseCase(businessRepo, geoUC, cacheRepo, logger, time.Minute)
}

func TestSearchUseCase_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied before hitting the repository", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		mockCache := &MockCacheRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

		expected := domain.SearchFilters{
			Term:      "spa",
			RadiusKm:  domain.DefaultSearchRadiusKm,
			SortBy:    domain.SortByRating,
			SortOrder: domain.SortDesc,
		}
		mockBusiness.On("Search", ctx, expected).Return([]domain.Business{{ID: "b1"}}, nil)

		result, err := uc.Search(ctx, domain.SearchFilters{Term: "spa"})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		assert.False(t, result.Cached)
		mockBusiness.AssertExpectations(t)
	})

	t.Run("invalid radius", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, &MockCacheRepository{})

		_, err := uc.Search(ctx, domain.SearchFilters{RadiusKm: 250})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRadius)
		mockBusiness.AssertNotCalled(t, "Search")
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		mockCache := &MockCacheRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, mockCache)

		cached := usecase.SearchResult{
			Businesses: []domain.Business{{ID: "b1", Name: "Cached Spa"}},
			Total:      1,
		}
		payload, err := json.Marshal(cached)
		require.NoError(t, err)
		mockCache.On("Get", ctx, mock.Anything).Return(payload, nil)

		result, err := uc.Search(ctx, domain.SearchFilters{Term: "spa"})
		require.NoError(t, err)
		assert.True(t, result.Cached)
		assert.Equal(t, "Cached Spa", result.Businesses[0].Name)
		mockBusiness.AssertNotCalled(t, "Search")
	})

	t.Run("user position applies radius filter and distance sort", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		mockCache := &MockCacheRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

		businesses := []domain.Business{
			coordBusiness("near", 18.5392, -72.3364),
			coordBusiness("closest", 18.5944, -72.3100),
			coordBusiness("far", 19.7580, -72.2042),
		}
		mockBusiness.On("Search", ctx, mock.Anything).Return(businesses, nil)

		result, err := uc.Search(ctx, domain.SearchFilters{
			RadiusKm:  10,
			UserLat:   floatPtr(18.5944),
			UserLon:   floatPtr(-72.3074),
			SortBy:    domain.SortByDistance,
			SortOrder: domain.SortAsc,
		})
		require.NoError(t, err)

		require.Equal(t, 2, result.Total)
		assert.Equal(t, "closest", result.Businesses[0].ID)
		assert.Equal(t, "near", result.Businesses[1].ID)
	})

	t.Run("descending distance sort reverses the order", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		mockCache := &MockCacheRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

		businesses := []domain.Business{
			coordBusiness("near", 18.5392, -72.3364),
			coordBusiness("closest", 18.5944, -72.3100),
		}
		mockBusiness.On("Search", ctx, mock.Anything).Return(businesses, nil)

		result, err := uc.Search(ctx, domain.SearchFilters{
			RadiusKm:  10,
			UserLat:   floatPtr(18.5944),
			UserLon:   floatPtr(-72.3074),
			SortBy:    domain.SortByDistance,
			SortOrder: domain.SortDesc,
		})
		require.NoError(t, err)

		require.Equal(t, 2, result.Total)
		assert.Equal(t, "near", result.Businesses[0].ID)
		assert.Equal(t, "closest", result.Businesses[1].ID)
	})

	t.Run("name sort is reapplied after the radius filter", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		mockCache := &MockCacheRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

		// Ближайший бизнес идет последним по алфавиту
		zeta := coordBusiness("zeta", 18.5944, -72.3100)
		zeta.Name = "Zeta Spa"
		alpha := coordBusiness("alpha", 18.5392, -72.3364)
		alpha.Name = "Alpha Spa"
		mockBusiness.On("Search", ctx, mock.Anything).Return([]domain.Business{alpha, zeta}, nil)

		result, err := uc.Search(ctx, domain.SearchFilters{
			RadiusKm:  10,
			UserLat:   floatPtr(18.5944),
			UserLon:   floatPtr(-72.3074),
			SortBy:    domain.SortByName,
			SortOrder: domain.SortAsc,
		})
		require.NoError(t, err)

		require.Equal(t, 2, result.Total)
		assert.Equal(t, "Alpha Spa", result.Businesses[0].Name)
		assert.Equal(t, "Zeta Spa", result.Businesses[1].Name)
	})

	t.Run("created_at sort is reapplied after the radius filter", func(t *testing.T) {
		mockBusiness := &MockBusinessRepository{}
		mockCache := &MockCacheRepository{}
		uc := newSearchUseCase(mockBusiness, &MockGeographyRepository{}, mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

		older := coordBusiness("older", 18.5944, -72.3100)
		older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := coordBusiness("newer", 18.5392, -72.3364)
		newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		mockBusiness.On("Search", ctx, mock.Anything).Return([]domain.Business{older, newer}, nil)

		result, err := uc.Search(ctx, domain.SearchFilters{
			RadiusKm:  10,
			UserLat:   floatPtr(18.5944),
			UserLon:   floatPtr(-72.3074),
			SortBy:    domain.SortByCreatedAt,
			SortOrder: domain.SortDesc,
		})
		require.NoError(t, err)

		require.Equal(t, 2, result.Total)
		assert.Equal(t, "newer", result.Businesses[0].ID)
		assert.Equal(t, "older", result.Businesses[1].ID)
	})
}

func TestSearchUseCase_ActiveFilters(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeographyRepository{}
	mockGeo.On("GetStatesByCountry", ctx, "ht").Return([]domain.State{
		{ID: "ouest", CountryID: "ht", LocalizedNames: domain.LocalizedNames{NameEn: "West", NameFr: "Ouest"}},
	}, nil)

	logger := zap.NewNop()
	geoUC := usecase.NewGeographyUseCase(mockGeo, memory.NewGeographyCache(), logger)
	uc := usecase.NewSearchUseCase(&MockBusinessRepository{}, geoUC, &MockCacheRepository{}, logger, time.Minute)

	// Warm the cache so state id resolves to a name
	_, err := geoUC.LoadStates(ctx, "ht")
	require.NoError(t, err)

	t.Run("chips with localized geography labels", func(t *testing.T) {
		filters := domain.SearchFilters{
			Term:     "spa",
			StateID:  "ouest",
			RadiusKm: 50,
		}

		chips := uc.ActiveFilters(filters, domain.LangFR)
		require.Len(t, chips, 3)
		assert.Equal(t, domain.ActiveFilter{Key: "term", Label: "spa"}, chips[0])
		assert.Equal(t, domain.ActiveFilter{Key: "state_id", Label: "Ouest"}, chips[1])
		assert.Equal(t, domain.ActiveFilter{Key: "radius_km", Label: "50 km"}, chips[2])
	})

	t.Run("default radius produces no chip", func(t *testing.T) {
		chips := uc.ActiveFilters(domain.SearchFilters{
			Term:     "spa",
			RadiusKm: domain.DefaultSearchRadiusKm,
		}, domain.LangEN)
		require.Len(t, chips, 1)
		assert.Equal(t, "term", chips[0].Key)
	})

	t.Run("unloaded geography id falls back to the id", func(t *testing.T) {
		chips := uc.ActiveFilters(domain.SearchFilters{CityID: "pap"}, domain.LangEN)
		require.Len(t, chips, 1)
		assert.Equal(t, domain.ActiveFilter{Key: "city_id", Label: "pap"}, chips[0])
	})
}

func TestSearchUseCase_RemoveFilter(t *testing.T) {
	logger := zap.NewNop()
	geoUC := usecase.NewGeographyUseCase(&MockGeographyRepository{}, memory.NewGeographyCache(), logger)
	uc := usecase.NewSearchUseCase(&MockBusinessRepository{}, geoUC, &MockCacheRepository{}, logger, time.Minute)

	filters := domain.SearchFilters{
		Term:         "spa",
		Category:     "wellness",
		CountryID:    "ht",
		StateID:      "ouest",
		DepartmentID: "arr-pap",
		CityID:       "pap",
		RadiusKm:     50,
	}

	t.Run("removing a parent level keeps child levels", func(t *testing.T) {
		result := uc.RemoveFilter(filters, "state_id")

		assert.Empty(t, result.StateID)
		// No cascade: children survive the parent's removal
		assert.Equal(t, "arr-pap", result.DepartmentID)
		assert.Equal(t, "pap", result.CityID)
		assert.Equal(t, "ht", result.CountryID)
		assert.Equal(t, "spa", result.Term)
	})

	t.Run("radius resets to the default", func(t *testing.T) {
		result := uc.RemoveFilter(filters, "radius_km")
		assert.Equal(t, domain.DefaultSearchRadiusKm, result.RadiusKm)
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		result := uc.RemoveFilter(filters, "bogus")
		assert.Equal(t, filters, result)
	})

	t.Run("input filters are not mutated", func(t *testing.T) {
		_ = uc.RemoveFilter(filters, "term")
		assert.Equal(t, "spa", filters.Term)
	})
}
