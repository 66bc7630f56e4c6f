package repository

import (
	"context"

	"github.com/bizli/geo-service/internal/domain"
)

// GeographyRepository определяет чтение географического справочника.
// Все выборки по родительскому id возвращаются отсортированными по
// возрастанию английского названия
type GeographyRepository interface {
	// GetCountries возвращает полный список стран
	GetCountries(ctx context.Context) ([]domain.Country, error)

	// GetStatesByCountry возвращает штаты/провинции страны
	GetStatesByCountry(ctx context.Context, countryID string) ([]domain.State, error)

	// GetDepartmentsByState возвращает департаменты штата
	GetDepartmentsByState(ctx context.Context, stateID string) ([]domain.Department, error)

	// GetDepartmentsByCountry возвращает департаменты, привязанные напрямую к стране
	GetDepartmentsByCountry(ctx context.Context, countryID string) ([]domain.Department, error)

	// GetCitiesByDepartment возвращает города департамента
	GetCitiesByDepartment(ctx context.Context, departmentID string) ([]domain.City, error)

	// GetCitiesByState возвращает города штата
	GetCitiesByState(ctx context.Context, stateID string) ([]domain.City, error)

	// GetCitiesByCountry возвращает города страны
	GetCitiesByCountry(ctx context.Context, countryID string) ([]domain.City, error)

	// GetNeighborhoodsByCity возвращает районы города
	GetNeighborhoodsByCity(ctx context.Context, cityID string) ([]domain.Neighborhood, error)

	// GetAdministrativeLevels возвращает терминологию уровней для страны
	GetAdministrativeLevels(ctx context.Context, countryID string) ([]domain.AdministrativeLevel, error)

	// GetStateByID возвращает штат по id (для гидратации сохраненного выбора)
	GetStateByID(ctx context.Context, id string) (*domain.State, error)

	// GetDepartmentByID возвращает департамент по id
	GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error)

	// GetCityByID возвращает город по id
	GetCityByID(ctx context.Context, id string) (*domain.City, error)
}
