package repository

import (
	"github.com/bizli/geo-service/internal/domain"
)

// GeographyCache - общий для процесса кеш справочных коллекций,
// индексированный по родительскому id. Попадание определяется только
// наличием ключа: TTL и инвалидации нет, кроме явного Clear.
// Семантика конкурентного доступа (коллапс одновременных запросов по
// одному ключу) скрыта за интерфейсом и может меняться, не трогая
// вызывающий код
type GeographyCache interface {
	Countries() ([]domain.Country, bool)
	SetCountries(countries []domain.Country)

	States(countryID string) ([]domain.State, bool)
	SetStates(countryID string, states []domain.State)

	Departments(stateID string) ([]domain.Department, bool)
	SetDepartments(stateID string, departments []domain.Department)

	DepartmentsByCountry(countryID string) ([]domain.Department, bool)
	SetDepartmentsByCountry(countryID string, departments []domain.Department)

	Cities(departmentID string) ([]domain.City, bool)
	SetCities(departmentID string, cities []domain.City)

	CitiesByState(stateID string) ([]domain.City, bool)
	SetCitiesByState(stateID string, cities []domain.City)

	CitiesByCountry(countryID string) ([]domain.City, bool)
	SetCitiesByCountry(countryID string, cities []domain.City)

	Neighborhoods(cityID string) ([]domain.Neighborhood, bool)
	SetNeighborhoods(cityID string, neighborhoods []domain.Neighborhood)

	AdministrativeLevels(countryID string) ([]domain.AdministrativeLevel, bool)
	SetAdministrativeLevels(countryID string, levels []domain.AdministrativeLevel)

	// FindCountry ищет страну по id среди загруженных стран
	FindCountry(id string) (*domain.Country, bool)

	// FindState ищет штат по id среди всех загруженных коллекций
	FindState(id string) (*domain.State, bool)

	// FindDepartment ищет департамент по id среди всех загруженных коллекций
	FindDepartment(id string) (*domain.Department, bool)

	// FindCity ищет город по id среди всех загруженных коллекций
	FindCity(id string) (*domain.City, bool)

	// Clear сбрасывает все keyed-коллекции, но сохраняет страны
	Clear()
}
