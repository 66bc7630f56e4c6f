package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/repository/memory"
)

func TestGeographyCache_ClearKeepsCountries(t *testing.T) {
	cache := memory.NewGeographyCache()

	cache.SetCountries([]domain.Country{{ID: "ht"}})
	cache.SetStates("ht", []domain.State{{ID: "ouest", CountryID: "ht"}})
	cache.SetCities("arr-pap", []domain.City{{ID: "pap", CountryID: "ht"}})

	cache.Clear()

	countries, ok := cache.Countries()
	require.True(t, ok)
	assert.Len(t, countries, 1)

	_, ok = cache.States("ht")
	assert.False(t, ok)
	_, ok = cache.Cities("arr-pap")
	assert.False(t, ok)
}

func TestGeographyCache_EmptySliceIsAHit(t *testing.T) {
	cache := memory.NewGeographyCache()

	// Страна без штатов: пустой список - валидный закешированный ответ
	cache.SetStates("sg", []domain.State{})

	states, ok := cache.States("sg")
	assert.True(t, ok)
	assert.Empty(t, states)

	_, ok = cache.States("unknown")
	assert.False(t, ok)
}

func TestGeographyCache_CountriesNilCoercion(t *testing.T) {
	cache := memory.NewGeographyCache()

	_, ok := cache.Countries()
	assert.False(t, ok)

	cache.SetCountries(nil)

	countries, ok := cache.Countries()
	assert.True(t, ok)
	assert.Empty(t, countries)
}

func TestGeographyCache_Find(t *testing.T) {
	cache := memory.NewGeographyCache()

	cache.SetCountries([]domain.Country{
		{ID: "ht", LocalizedNames: domain.LocalizedNames{NameEn: "Haiti"}},
	})
	cache.SetStates("ht", []domain.State{
		{ID: "ouest", CountryID: "ht", LocalizedNames: domain.LocalizedNames{NameEn: "West", NameFr: "Ouest"}},
	})

	country, ok := cache.FindCountry("ht")
	require.True(t, ok)
	assert.Equal(t, "Haiti", country.NameEn)

	state, ok := cache.FindState("ouest")
	require.True(t, ok)
	assert.Equal(t, "Ouest", state.Name(domain.LangFR))

	_, ok = cache.FindState("nord")
	assert.False(t, ok)
}
