package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticMapsConfig struct {
	settings MapsSettings
}

func (c staticMapsConfig) MapsSettings(context.Context) (MapsSettings, error) {
	return c.settings, nil
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		assert.NotEmpty(t, r.URL.Query().Get("latlng"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"123 Restaurant Street, Foodville"}]}`))
	}))
	defer server.Close()

	geocoder := NewGeocoder(staticMapsConfig{MapsSettings{APIKey: "secret-key"}})
	geocoder.baseURL = server.URL

	address, err := geocoder.ReverseGeocode(context.Background(), 40.7128, -74.0060)
	require.NoError(t, err)
	assert.Equal(t, "123 Restaurant Street, Foodville", address)
}

func TestReverseGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	geocoder := NewGeocoder(staticMapsConfig{MapsSettings{APIKey: "secret-key"}})
	geocoder.baseURL = server.URL

	_, err := geocoder.ReverseGeocode(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestReverseGeocodeRequiresAPIKey(t *testing.T) {
	geocoder := NewGeocoder(staticMapsConfig{})

	_, err := geocoder.ReverseGeocode(context.Background(), 40.7128, -74.0060)
	assert.ErrorContains(t, err, "not configured")
}
