package domain

import "time"

// Business - бизнес-профиль из платформы бронирования.
// Страна/штат/город хранятся денормализованными строками для
// фильтрации, ссылочные country_id и т.д. - для иерархического выбора
type Business struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Category    string  `json:"category" db:"category"`
	Description *string `json:"description,omitempty" db:"description"`

	// Denormalized display strings used by location filtering
	Country string  `json:"country" db:"country"`
	State   *string `json:"state,omitempty" db:"state"`
	City    *string `json:"city,omitempty" db:"city"`
	Address *string `json:"address,omitempty" db:"address"`

	// Reference ids used by the hierarchical selector
	CountryID      *string `json:"country_id,omitempty" db:"country_id"`
	StateID        *string `json:"state_id,omitempty" db:"state_id"`
	DepartmentID   *string `json:"department_id,omitempty" db:"department_id"`
	CityID         *string `json:"city_id,omitempty" db:"city_id"`
	NeighborhoodID *string `json:"neighborhood_id,omitempty" db:"neighborhood_id"`

	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	Rating      *float64  `json:"rating,omitempty" db:"rating"`
	ReviewCount int       `json:"review_count" db:"review_count"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Заполняется запросом по радиусу, в БД не хранится
	DistanceKm *float64 `json:"distance_km,omitempty" db:"-"`
}

// HasCoordinates проверяет наличие обеих координат
func (b *Business) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}

// BusinessLocationQuery - параметры запроса бизнесов по локации.
// Country обязательна; радиусная фильтрация включается только когда
// заданы Radius, UserLat и UserLon одновременно
type BusinessLocationQuery struct {
	Country  string
	State    string
	City     string
	RadiusKm *float64
	UserLat  *float64
	UserLon  *float64
}

// HasRadiusFilter проверяет, что заданы все три параметра радиусного поиска
func (q BusinessLocationQuery) HasRadiusFilter() bool {
	return q.RadiusKm != nil && q.UserLat != nil && q.UserLon != nil
}

// Sort keys for advanced business search
const (
	SortByDistance  = "distance"
	SortByRating    = "rating"
	SortByName      = "name"
	SortByCreatedAt = "created_at"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSearchRadiusKm - радиус поиска по умолчанию
const DefaultSearchRadiusKm = 25.0

// SearchFilters - плоский набор фильтров расширенного поиска бизнесов
type SearchFilters struct {
	Term         string   `json:"term,omitempty"`
	Category     string   `json:"category,omitempty"`
	CountryID    string   `json:"country_id,omitempty"`
	StateID      string   `json:"state_id,omitempty"`
	DepartmentID string   `json:"department_id,omitempty"`
	CityID       string   `json:"city_id,omitempty"`
	RadiusKm     float64  `json:"radius_km,omitempty"`
	UserLat      *float64 `json:"user_lat,omitempty"`
	UserLon      *float64 `json:"user_lon,omitempty"`
	SortBy       string   `json:"sort_by,omitempty"`
	SortOrder    string   `json:"sort_order,omitempty"`
}

// NewSearchFilters возвращает фильтры со значениями по умолчанию
func NewSearchFilters() SearchFilters {
	return SearchFilters{
		RadiusKm:  DefaultSearchRadiusKm,
		SortBy:    SortByRating,
		SortOrder: SortDesc,
	}
}

// ActiveFilter - чип активного фильтра с локализованным названием
type ActiveFilter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
