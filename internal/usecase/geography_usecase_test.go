package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
	"github.com/bizli/geo-service/internal/repository/memory"
	"github.com/bizli/geo-service/internal/usecase"
)

// MockGeographyRepository is a mock of GeographyRepository
type MockGeographyRepository struct {
	mock.Mock
}

func (m *MockGeographyRepository) GetCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockGeographyRepository) GetStatesByCountry(ctx context.Context, countryID string) ([]domain.State, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.State), args.Error(1)
}

func (m *MockGeographyRepository) GetDepartmentsByState(ctx context.Context, stateID string) ([]domain.Department, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockGeographyRepository) GetDepartmentsByCountry(ctx context.Context, countryID string) ([]domain.Department, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockGeographyRepository) GetCitiesByDepartment(ctx context.Context, departmentID string) ([]domain.City, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockGeographyRepository) GetCitiesByState(ctx context.Context, stateID string) ([]domain.City, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockGeographyRepository) GetCitiesByCountry(ctx context.Context, countryID string) ([]domain.City, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockGeographyRepository) GetNeighborhoodsByCity(ctx context.Context, cityID string) ([]domain.Neighborhood, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Neighborhood), args.Error(1)
}

func (m *MockGeographyRepository) GetAdministrativeLevels(ctx context.Context, countryID string) ([]domain.AdministrativeLevel, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdministrativeLevel), args.Error(1)
}

func (m *MockGeographyRepository) GetStateByID(ctx context.Context, id string) (*domain.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.State), args.Error(1)
}

func (m *MockGeographyRepository) GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockGeographyRepository) GetCityByID(ctx context.Context, id string) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func namedEntity(en, fr string) domain.LocalizedNames {
	return domain.LocalizedNames{NameEn: en, NameFr: fr}
}

func TestGeographyUseCase_LoadStates(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("caches result after first load", func(t *testing.T) {
		mockRepo := &MockGeographyRepository{}
		uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

		states := []domain.State{
			{ID: "ht-ouest", CountryID: "ht", LocalizedNames: namedEntity("Ouest", "Ouest")},
		}
		mockRepo.On("GetStatesByCountry", ctx, "ht").Return(states, nil).Once()

		first, err := uc.LoadStates(ctx, "ht")
		require.NoError(t, err)
		assert.Len(t, first, 1)

		second, err := uc.LoadStates(ctx, "ht")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// Repository hit exactly once, second call served from cache
		mockRepo.AssertNumberOfCalls(t, "GetStatesByCountry", 1)
	})

	t.Run("empty result is cached too", func(t *testing.T) {
		mockRepo := &MockGeographyRepository{}
		uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

		mockRepo.On("GetStatesByCountry", ctx, "sg").Return([]domain.State{}, nil).Once()

		first, err := uc.LoadStates(ctx, "sg")
		require.NoError(t, err)
		assert.Empty(t, first)

		_, err = uc.LoadStates(ctx, "sg")
		require.NoError(t, err)
		mockRepo.AssertNumberOfCalls(t, "GetStatesByCountry", 1)
	})

	t.Run("empty parent id", func(t *testing.T) {
		mockRepo := &MockGeographyRepository{}
		uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

		_, err := uc.LoadStates(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidParentID)
		mockRepo.AssertNotCalled(t, "GetStatesByCountry")
	})

	t.Run("repository error is returned", func(t *testing.T) {
		mockRepo := &MockGeographyRepository{}
		uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

		mockRepo.On("GetStatesByCountry", ctx, "ht").Return(nil, errors.New("connection refused"))

		_, err := uc.LoadStates(ctx, "ht")
		assert.Error(t, err)
	})
}

func TestGeographyUseCase_ClearCache(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &MockGeographyRepository{}
	uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

	countries := []domain.Country{{ID: "ht", LocalizedNames: namedEntity("Haiti", "Haïti")}}
	states := []domain.State{{ID: "ht-ouest", CountryID: "ht", LocalizedNames: namedEntity("Ouest", "Ouest")}}

	mockRepo.On("GetCountries", ctx).Return(countries, nil).Once()
	mockRepo.On("GetStatesByCountry", ctx, "ht").Return(states, nil).Twice()

	_, err := uc.LoadCountries(ctx)
	require.NoError(t, err)
	_, err = uc.LoadStates(ctx, "ht")
	require.NoError(t, err)

	uc.ClearCache()

	// Countries survive the clear
	_, err = uc.LoadCountries(ctx)
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "GetCountries", 1)

	// Keyed collections are reloaded
	_, err = uc.LoadStates(ctx, "ht")
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "GetStatesByCountry", 2)
}

func TestGeographyUseCase_PreloadCountryData(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &MockGeographyRepository{}
	uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

	states := []domain.State{{ID: "ht-ouest", CountryID: "ht", LocalizedNames: namedEntity("Ouest", "Ouest")}}
	levels := []domain.AdministrativeLevel{
		{ID: "ht-1", CountryID: "ht", LevelNumber: domain.AdminLevelState, LocalizedNames: namedEntity("Department", "Département")},
	}

	mockRepo.On("GetStatesByCountry", ctx, "ht").Return(states, nil).Once()
	mockRepo.On("GetAdministrativeLevels", ctx, "ht").Return(levels, nil).Once()

	uc.PreloadCountryData(ctx, "ht")

	// Both collections warmed, follow-up loads hit the cache
	_, err := uc.LoadStates(ctx, "ht")
	require.NoError(t, err)
	_, err = uc.LoadAdministrativeLevels(ctx, "ht")
	require.NoError(t, err)

	mockRepo.AssertNumberOfCalls(t, "GetStatesByCountry", 1)
	mockRepo.AssertNumberOfCalls(t, "GetAdministrativeLevels", 1)
}

func TestGeographyUseCase_VerifyCountry(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &MockGeographyRepository{}
	uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

	countries := []domain.Country{{ID: "ht", LocalizedNames: namedEntity("Haiti", "Haïti")}}
	mockRepo.On("GetCountries", ctx).Return(countries, nil).Once()

	assert.NoError(t, uc.VerifyCountry(ctx, "ht"))
	assert.ErrorIs(t, uc.VerifyCountry(ctx, "xx"), apperrors.ErrCountryNotFound)
	assert.ErrorIs(t, uc.VerifyCountry(ctx, ""), apperrors.ErrInvalidParentID)

	// Country list is loaded once and reused across checks
	mockRepo.AssertNumberOfCalls(t, "GetCountries", 1)
}

func TestGeographyUseCase_ResolveName(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := &MockGeographyRepository{}
	uc := usecase.NewGeographyUseCase(mockRepo, memory.NewGeographyCache(), logger)

	states := []domain.State{
		{ID: "ht-ouest", CountryID: "ht", LocalizedNames: domain.LocalizedNames{NameEn: "West", NameFr: "Ouest"}},
	}
	mockRepo.On("GetStatesByCountry", ctx, "ht").Return(states, nil).Once()
	_, err := uc.LoadStates(ctx, "ht")
	require.NoError(t, err)

	assert.Equal(t, "Ouest", uc.ResolveName(domain.LevelState, "ht-ouest", domain.LangFR))
	assert.Equal(t, "West", uc.ResolveName(domain.LevelState, "ht-ouest", domain.LangEN))

	// Missing translation falls back to English
	assert.Equal(t, "West", uc.ResolveName(domain.LevelState, "ht-ouest", domain.LangHT))

	// Unloaded id resolves to itself
	assert.Equal(t, "ht-nord", uc.ResolveName(domain.LevelState, "ht-nord", domain.LangEN))
	assert.Equal(t, "", uc.ResolveName(domain.LevelState, "", domain.LangEN))
}
