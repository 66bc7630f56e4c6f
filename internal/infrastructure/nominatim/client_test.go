package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/config"
)

func testConfig(baseURL string) *config.GeocoderConfig {
	return &config.GeocoderConfig{
		BaseURL:         baseURL,
		UserAgent:       "geo-service-test/1.0",
		RequestTimeout:  5 * time.Second,
		DefaultLanguage: "en",
	}
}

func TestClient_ReverseGeocode(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "18.5944", r.URL.Query().Get("lat"))
			assert.Equal(t, "fr", r.URL.Query().Get("accept-language"))
			assert.Equal(t, "geo-service-test/1.0", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"lat":"18.5944","lon":"-72.3074","display_name":"Port-au-Prince, Ouest, Haïti"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		address, err := client.ReverseGeocode(context.Background(), 18.5944, -72.3074, "fr")
		require.NoError(t, err)
		assert.Equal(t, "Port-au-Prince, Ouest, Haïti", address)
	})

	t.Run("point outside coverage returns empty address without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"Unable to geocode"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		address, err := client.ReverseGeocode(context.Background(), 0, 0, "en")
		require.NoError(t, err)
		assert.Empty(t, address)
	})

	t.Run("non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		_, err := client.ReverseGeocode(context.Background(), 18.5944, -72.3074, "en")
		assert.Error(t, err)
	})
}

func TestClient_Geocode(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Rue Capois, Port-au-Prince, Haiti", r.URL.Query().Get("q"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"lat":"18.5421","lon":"-72.3396","display_name":"Rue Capois, Port-au-Prince, Ouest, Haïti"}]`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		result, err := client.Geocode(context.Background(), "Rue Capois, Port-au-Prince, Haiti", "en")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 18.5421, result.Latitude)
		assert.Equal(t, -72.3396, result.Longitude)
		assert.Equal(t, "Rue Capois, Port-au-Prince, Ouest, Haïti", result.DisplayName)
	})

	t.Run("address not found returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		result, err := client.Geocode(context.Background(), "nowhere at all", "en")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("malformed coordinates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"lat":"not-a-number","lon":"-72.3396"}]`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		_, err := client.Geocode(context.Background(), "somewhere", "en")
		assert.Error(t, err)
	})
}
