package dto

// BusinessLocationRequest - запрос бизнесов по локации.
// Радиусная фильтрация включается только при всех трех параметрах:
// radius_km, user_lat, user_lon
type BusinessLocationRequest struct {
	Country  string   `json:"country" validate:"required,min=2"`
	State    string   `json:"state" validate:"omitempty"`
	City     string   `json:"city" validate:"omitempty"`
	RadiusKm *float64 `json:"radius_km" validate:"omitempty,min=1,max=100"`
	UserLat  *float64 `json:"user_lat" validate:"omitempty,min=-90,max=90"`
	UserLon  *float64 `json:"user_lon" validate:"omitempty,min=-180,max=180"`
}

// BusinessSearchRequest - запрос расширенного поиска бизнесов
type BusinessSearchRequest struct {
	Term         string   `json:"term" validate:"omitempty,min=2"`
	Category     string   `json:"category" validate:"omitempty"`
	CountryID    string   `json:"country_id" validate:"omitempty"`
	StateID      string   `json:"state_id" validate:"omitempty"`
	DepartmentID string   `json:"department_id" validate:"omitempty"`
	CityID       string   `json:"city_id" validate:"omitempty"`
	RadiusKm     float64  `json:"radius_km" validate:"omitempty,min=1,max=100"`
	UserLat      *float64 `json:"user_lat" validate:"omitempty,min=-90,max=90"`
	UserLon      *float64 `json:"user_lon" validate:"omitempty,min=-180,max=180"`
	SortBy       string   `json:"sort_by" validate:"omitempty,oneof=distance rating name created_at"`
	SortOrder    string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Language     string   `json:"language" validate:"omitempty,oneof=en fr es ht"`
}

// ResolvePositionRequest - запрос обратного геокодирования позиции
// с текущим иерархическим выбором
type ResolvePositionRequest struct {
	Lat      float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"required,min=-180,max=180"`
	Language string  `json:"language" validate:"omitempty,oneof=en fr es ht"`

	CountryID      string `json:"country_id" validate:"omitempty"`
	StateID        string `json:"state_id" validate:"omitempty"`
	DepartmentID   string `json:"department_id" validate:"omitempty"`
	CityID         string `json:"city_id" validate:"omitempty"`
	NeighborhoodID string `json:"neighborhood_id" validate:"omitempty"`
}

// HydrateSelectionRequest - запрос восстановления списков опций для
// сохраненного выбора (гидратация от листа вверх)
type HydrateSelectionRequest struct {
	CountryID      string `json:"country_id" validate:"omitempty"`
	StateID        string `json:"state_id" validate:"omitempty"`
	DepartmentID   string `json:"department_id" validate:"omitempty"`
	CityID         string `json:"city_id" validate:"omitempty"`
	NeighborhoodID string `json:"neighborhood_id" validate:"omitempty"`
	Language       string `json:"language" validate:"omitempty,oneof=en fr es ht"`
	Neighborhoods  bool   `json:"neighborhoods"`
}
