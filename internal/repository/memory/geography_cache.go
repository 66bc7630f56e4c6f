package memory

import (
	"sync"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
)

// geographyCache - процессный in-memory кеш справочника.
// Явно создается в main и передается конструкторами, а не живет
// глобальной переменной; один экземпляр разделяется всеми потребителями.
// Запись по уже существующему ключу перезаписывает значение
// (last write wins при одновременной первой загрузке)
type geographyCache struct {
	mu sync.RWMutex

	countries            []domain.Country
	states               map[string][]domain.State
	departments          map[string][]domain.Department
	departmentsByCountry map[string][]domain.Department
	cities               map[string][]domain.City
	citiesByState        map[string][]domain.City
	citiesByCountry      map[string][]domain.City
	neighborhoods        map[string][]domain.Neighborhood
	administrativeLevels map[string][]domain.AdministrativeLevel
}

// NewGeographyCache создает пустой кеш справочника
func NewGeographyCache() repository.GeographyCache {
	return &geographyCache{
		states:               make(map[string][]domain.State),
		departments:          make(map[string][]domain.Department),
		departmentsByCountry: make(map[string][]domain.Department),
		cities:               make(map[string][]domain.City),
		citiesByState:        make(map[string][]domain.City),
		citiesByCountry:      make(map[string][]domain.City),
		neighborhoods:        make(map[string][]domain.Neighborhood),
		administrativeLevels: make(map[string][]domain.AdministrativeLevel),
	}
}

func (c *geographyCache) Countries() ([]domain.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.countries == nil {
		return nil, false
	}
	return c.countries, true
}

func (c *geographyCache) SetCountries(countries []domain.Country) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if countries == nil {
		countries = []domain.Country{}
	}
	c.countries = countries
}

func (c *geographyCache) States(countryID string) ([]domain.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.states[countryID]
	return v, ok
}

func (c *geographyCache) SetStates(countryID string, states []domain.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[countryID] = states
}

func (c *geographyCache) Departments(stateID string) ([]domain.Department, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.departments[stateID]
	return v, ok
}

func (c *geographyCache) SetDepartments(stateID string, departments []domain.Department) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.departments[stateID] = departments
}

func (c *geographyCache) DepartmentsByCountry(countryID string) ([]domain.Department, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.departmentsByCountry[countryID]
	return v, ok
}

func (c *geographyCache) SetDepartmentsByCountry(countryID string, departments []domain.Department) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.departmentsByCountry[countryID] = departments
}

func (c *geographyCache) Cities(departmentID string) ([]domain.City, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.cities[departmentID]
	return v, ok
}

func (c *geographyCache) SetCities(departmentID string, cities []domain.City) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cities[departmentID] = cities
}

func (c *geographyCache) CitiesByState(stateID string) ([]domain.City, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.citiesByState[stateID]
	return v, ok
}

func (c *geographyCache) SetCitiesByState(stateID string, cities []domain.City) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.citiesByState[stateID] = cities
}

func (c *geographyCache) CitiesByCountry(countryID string) ([]domain.City, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.citiesByCountry[countryID]
	return v, ok
}

func (c *geographyCache) SetCitiesByCountry(countryID string, cities []domain.City) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.citiesByCountry[countryID] = cities
}

func (c *geographyCache) Neighborhoods(cityID string) ([]domain.Neighborhood, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.neighborhoods[cityID]
	return v, ok
}

func (c *geographyCache) SetNeighborhoods(cityID string, neighborhoods []domain.Neighborhood) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.neighborhoods[cityID] = neighborhoods
}

func (c *geographyCache) AdministrativeLevels(countryID string) ([]domain.AdministrativeLevel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.administrativeLevels[countryID]
	return v, ok
}

func (c *geographyCache) SetAdministrativeLevels(countryID string, levels []domain.AdministrativeLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.administrativeLevels[countryID] = levels
}

// FindCountry ищет страну по id среди загруженных стран
func (c *geographyCache) FindCountry(id string) (*domain.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.countries {
		if c.countries[i].ID == id {
			return &c.countries[i], true
		}
	}
	return nil, false
}

// FindState ищет штат по id среди всех загруженных коллекций
func (c *geographyCache) FindState(id string) (*domain.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, states := range c.states {
		for i := range states {
			if states[i].ID == id {
				return &states[i], true
			}
		}
	}
	return nil, false
}

// FindDepartment ищет департамент по id среди всех загруженных коллекций
func (c *geographyCache) FindDepartment(id string) (*domain.Department, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, departments := range []map[string][]domain.Department{c.departments, c.departmentsByCountry} {
		for _, list := range departments {
			for i := range list {
				if list[i].ID == id {
					return &list[i], true
				}
			}
		}
	}
	return nil, false
}

// FindCity ищет город по id среди всех загруженных коллекций
func (c *geographyCache) FindCity(id string) (*domain.City, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cities := range []map[string][]domain.City{c.cities, c.citiesByState, c.citiesByCountry} {
		for _, list := range cities {
			for i := range list {
				if list[i].ID == id {
					return &list[i], true
				}
			}
		}
	}
	return nil, false
}

// Clear сбрасывает все keyed-коллекции. Список стран намеренно
// переживает сброс: он загружается один раз на процесс
func (c *geographyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.states = make(map[string][]domain.State)
	c.departments = make(map[string][]domain.Department)
	c.departmentsByCountry = make(map[string][]domain.Department)
	c.cities = make(map[string][]domain.City)
	c.citiesByState = make(map[string][]domain.City)
	c.citiesByCountry = make(map[string][]domain.City)
	c.neighborhoods = make(map[string][]domain.Neighborhood)
	c.administrativeLevels = make(map[string][]domain.AdministrativeLevel)
}
