package dto

import "github.com/bizli/geo-service/internal/domain"

// BusinessSearchResponse - ответ расширенного поиска
type BusinessSearchResponse struct {
	Businesses    []domain.Business     `json:"businesses"`
	Total         int                   `json:"total"`
	ActiveFilters []domain.ActiveFilter `json:"active_filters"`
}

// ResolvePositionResponse - ответ обратного геокодирования позиции
type ResolvePositionResponse struct {
	Selection domain.LocationSelection `json:"selection"`
}

// SelectionOptionsResponse - списки опций всех уровней после гидратации
type SelectionOptionsResponse struct {
	Selection     domain.LocationSelection `json:"selection"`
	Countries     []domain.Country         `json:"countries"`
	States        []domain.State           `json:"states"`
	Departments   []domain.Department      `json:"departments"`
	Cities        []domain.City            `json:"cities"`
	Neighborhoods []domain.Neighborhood    `json:"neighborhoods,omitempty"`
	Labels        SelectionLabels          `json:"labels"`
}

// SelectionLabels - страноспецифичные метки уровней
type SelectionLabels struct {
	State      string `json:"state"`
	Department string `json:"department"`
	City       string `json:"city"`
}
