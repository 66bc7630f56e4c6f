package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bizli/geo-service/internal/config"
	"github.com/bizli/geo-service/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewClient создает новый клиент для Nominatim API
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// geocodeResponse - ответ Nominatim на /reverse и /search
type geocodeResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}

// ReverseGeocode возвращает человекочитаемый адрес по координатам.
// Пустая строка без ошибки означает "адрес не найден"
func (c *client) ReverseGeocode(ctx context.Context, lat, lon float64, lang string) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%s&lon=%s&format=jsonv2&accept-language=%s",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		url.QueryEscape(lang),
	)

	body, err := c.do(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	// Nominatim отвечает 200 с полем error, если точка вне покрытия
	if resp.Error != "" {
		c.logger.Debug("Reverse geocode returned no result",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("error", resp.Error))
		return "", nil
	}

	return resp.DisplayName, nil
}

// Geocode возвращает координаты по строке адреса; nil, если не найдено
func (c *client) Geocode(ctx context.Context, address, lang string) (*repository.GeocodeResult, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=1&accept-language=%s",
		c.baseURL,
		url.QueryEscape(address),
		url.QueryEscape(lang),
	)

	body, err := c.do(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var results []geocodeResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	return &repository.GeocodeResult{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}

func (c *client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoder request: %w", err)
	}
	// Nominatim требует идентифицирующий User-Agent
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Geocoder request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocoder response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Geocoder returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	return body, nil
}
