package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/bizli/geo-service/internal/pkg/errors"
)

// GeographyUseCase - загрузка географического справочника через общий
// процессный кеш. Каждый загрузчик следует одной схеме: пустой id -
// ошибка валидации; ключ в кеше - вернуть без запроса; иначе запрос к
// хранилищу и запись в кеш. Одновременные первые загрузки одного ключа
// не коллапсируются: оба запроса выполняются, выигрывает последняя
// запись (результаты идемпотентны для ключа)
type GeographyUseCase struct {
	geoRepo repository.GeographyRepository
	cache   repository.GeographyCache
	logger  *zap.Logger
}

// NewGeographyUseCase - создание нового GeographyUseCase
func NewGeographyUseCase(
	geoRepo repository.GeographyRepository,
	cache repository.GeographyCache,
	logger *zap.Logger,
) *GeographyUseCase {
	return &GeographyUseCase{
		geoRepo: geoRepo,
		cache:   cache,
		logger:  logger,
	}
}

// LoadCountries возвращает список стран; загружается из хранилища
// один раз на процесс
func (uc *GeographyUseCase) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	if countries, ok := uc.cache.Countries(); ok {
		return countries, nil
	}

	countries, err := uc.geoRepo.GetCountries(ctx)
	if err != nil {
		uc.logger.Error("Failed to load countries", zap.Error(err))
		return nil, err
	}

	uc.cache.SetCountries(countries)
	return countries, nil
}

// LoadStates возвращает штаты/провинции страны
func (uc *GeographyUseCase) LoadStates(ctx context.Context, countryID string) ([]domain.State, error) {
	if countryID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if states, ok := uc.cache.States(countryID); ok {
		return states, nil
	}

	states, err := uc.geoRepo.GetStatesByCountry(ctx, countryID)
	if err != nil {
		uc.logger.Error("Failed to load states", zap.String("country_id", countryID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetStates(countryID, states)
	return states, nil
}

// LoadDepartments возвращает департаменты штата
func (uc *GeographyUseCase) LoadDepartments(ctx context.Context, stateID string) ([]domain.Department, error) {
	if stateID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if departments, ok := uc.cache.Departments(stateID); ok {
		return departments, nil
	}

	departments, err := uc.geoRepo.GetDepartmentsByState(ctx, stateID)
	if err != nil {
		uc.logger.Error("Failed to load departments", zap.String("state_id", stateID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetDepartments(stateID, departments)
	return departments, nil
}

// LoadDepartmentsByCountry возвращает департаменты, привязанные
// напрямую к стране (страны без уровня штатов)
func (uc *GeographyUseCase) LoadDepartmentsByCountry(ctx context.Context, countryID string) ([]domain.Department, error) {
	if countryID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if departments, ok := uc.cache.DepartmentsByCountry(countryID); ok {
		return departments, nil
	}

	departments, err := uc.geoRepo.GetDepartmentsByCountry(ctx, countryID)
	if err != nil {
		uc.logger.Error("Failed to load departments by country", zap.String("country_id", countryID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetDepartmentsByCountry(countryID, departments)
	return departments, nil
}

// LoadCities возвращает города департамента
func (uc *GeographyUseCase) LoadCities(ctx context.Context, departmentID string) ([]domain.City, error) {
	if departmentID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if cities, ok := uc.cache.Cities(departmentID); ok {
		return cities, nil
	}

	cities, err := uc.geoRepo.GetCitiesByDepartment(ctx, departmentID)
	if err != nil {
		uc.logger.Error("Failed to load cities", zap.String("department_id", departmentID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetCities(departmentID, cities)
	return cities, nil
}

// LoadCitiesByState возвращает города штата
func (uc *GeographyUseCase) LoadCitiesByState(ctx context.Context, stateID string) ([]domain.City, error) {
	if stateID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if cities, ok := uc.cache.CitiesByState(stateID); ok {
		return cities, nil
	}

	cities, err := uc.geoRepo.GetCitiesByState(ctx, stateID)
	if err != nil {
		uc.logger.Error("Failed to load cities by state", zap.String("state_id", stateID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetCitiesByState(stateID, cities)
	return cities, nil
}

// LoadCitiesByCountry возвращает города страны
func (uc *GeographyUseCase) LoadCitiesByCountry(ctx context.Context, countryID string) ([]domain.City, error) {
	if countryID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if cities, ok := uc.cache.CitiesByCountry(countryID); ok {
		return cities, nil
	}

	cities, err := uc.geoRepo.GetCitiesByCountry(ctx, countryID)
	if err != nil {
		uc.logger.Error("Failed to load cities by country", zap.String("country_id", countryID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetCitiesByCountry(countryID, cities)
	return cities, nil
}

// LoadNeighborhoods возвращает районы города
func (uc *GeographyUseCase) LoadNeighborhoods(ctx context.Context, cityID string) ([]domain.Neighborhood, error) {
	if cityID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if neighborhoods, ok := uc.cache.Neighborhoods(cityID); ok {
		return neighborhoods, nil
	}

	neighborhoods, err := uc.geoRepo.GetNeighborhoodsByCity(ctx, cityID)
	if err != nil {
		uc.logger.Error("Failed to load neighborhoods", zap.String("city_id", cityID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetNeighborhoods(cityID, neighborhoods)
	return neighborhoods, nil
}

// LoadAdministrativeLevels возвращает терминологию уровней для страны
func (uc *GeographyUseCase) LoadAdministrativeLevels(ctx context.Context, countryID string) ([]domain.AdministrativeLevel, error) {
	if countryID == "" {
		return nil, errors.ErrInvalidParentID
	}
	if levels, ok := uc.cache.AdministrativeLevels(countryID); ok {
		return levels, nil
	}

	levels, err := uc.geoRepo.GetAdministrativeLevels(ctx, countryID)
	if err != nil {
		uc.logger.Error("Failed to load administrative levels", zap.String("country_id", countryID), zap.Error(err))
		return nil, err
	}

	uc.cache.SetAdministrativeLevels(countryID, levels)
	return levels, nil
}

// VerifyCountry проверяет, что страна с данным id существует в
// справочнике. Список стран при необходимости загружается
func (uc *GeographyUseCase) VerifyCountry(ctx context.Context, countryID string) error {
	if countryID == "" {
		return errors.ErrInvalidParentID
	}
	if _, err := uc.LoadCountries(ctx); err != nil {
		return err
	}
	if _, ok := uc.cache.FindCountry(countryID); !ok {
		return errors.ErrCountryNotFound
	}
	return nil
}

// PreloadCountryData одновременно прогревает штаты и терминологию
// уровней для страны. Ошибки логируются и не возвращаются
func (uc *GeographyUseCase) PreloadCountryData(ctx context.Context, countryID string) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if _, err := uc.LoadStates(ctx, countryID); err != nil {
			uc.logger.Warn("Preload states failed", zap.String("country_id", countryID), zap.Error(err))
		}
	}()

	go func() {
		defer wg.Done()
		if _, err := uc.LoadAdministrativeLevels(ctx, countryID); err != nil {
			uc.logger.Warn("Preload administrative levels failed", zap.String("country_id", countryID), zap.Error(err))
		}
	}()

	wg.Wait()
}

// ClearCache сбрасывает все keyed-коллекции кеша; страны остаются
func (uc *GeographyUseCase) ClearCache() {
	uc.cache.Clear()
	uc.logger.Info("Geography cache cleared")
}

// ResolveName возвращает локализованное название справочной записи по
// id, используя только уже загруженные коллекции. Если запись не
// загружена, возвращается сам id
func (uc *GeographyUseCase) ResolveName(level domain.SelectionLevel, id, lang string) string {
	if id == "" {
		return ""
	}

	switch level {
	case domain.LevelCountry:
		if country, ok := uc.cache.FindCountry(id); ok {
			return country.Name(lang)
		}
	case domain.LevelState:
		if state, ok := uc.cache.FindState(id); ok {
			return state.Name(lang)
		}
	case domain.LevelDepartment:
		if department, ok := uc.cache.FindDepartment(id); ok {
			return department.Name(lang)
		}
	case domain.LevelCity:
		if city, ok := uc.cache.FindCity(id); ok {
			return city.Name(lang)
		}
	}

	return id
}
