package repository

import "context"

// GeocodeResult - результат прямого геокодирования
type GeocodeResult struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// GeocoderRepository определяет внешний сервис геокодирования
type GeocoderRepository interface {
	// ReverseGeocode возвращает человекочитаемый адрес по координатам
	// на запрошенном языке; пустая строка, если адрес не найден
	ReverseGeocode(ctx context.Context, lat, lon float64, lang string) (string, error)

	// Geocode возвращает координаты по строке адреса; nil, если не найдено
	Geocode(ctx context.Context, address, lang string) (*GeocodeResult, error)
}
