package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Stream names (должны совпадать с backend платформы бронирования)
const (
	StreamBusinessGeocode     = "stream:business:geocode"
	StreamBusinessGeocodeDone = "stream:business:geocode:done"
)

// BusinessGeocodeEvent - входящее событие: бизнес сохранен без координат,
// нужно геокодировать его денормализованный адрес
type BusinessGeocodeEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	BusinessID string    `json:"business_id"`
	Country    string    `json:"country"`
	State      *string   `json:"state,omitempty"`
	City       *string   `json:"city,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Language   string    `json:"language,omitempty"`
}

// FullAddress собирает строку адреса для прямого геокодирования
func (e *BusinessGeocodeEvent) FullAddress() string {
	parts := make([]string, 0, 4)
	if e.Address != nil && *e.Address != "" {
		parts = append(parts, *e.Address)
	}
	if e.City != nil && *e.City != "" {
		parts = append(parts, *e.City)
	}
	if e.State != nil && *e.State != "" {
		parts = append(parts, *e.State)
	}
	parts = append(parts, e.Country)
	return strings.Join(parts, ", ")
}

// BusinessGeocodeDoneEvent - результат геокодирования
type BusinessGeocodeDoneEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	BusinessID string    `json:"business_id"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
