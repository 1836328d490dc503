package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const geocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// MapsConfig supplies the mapping-provider settings; SettingsService
// satisfies it.
type MapsConfig interface {
	MapsSettings(ctx context.Context) (MapsSettings, error)
}

// Geocoder turns a map pin into a delivery address using the configured
// mapping provider. The returned address feeds the checkout form the same
// way a manually typed one would.
type Geocoder struct {
	settings MapsConfig
	client   *resty.Client
	baseURL  string
}

func NewGeocoder(settings MapsConfig) *Geocoder {
	return &Geocoder{
		settings: settings,
		client:   resty.New().SetTimeout(10 * time.Second),
		baseURL:  geocodeBaseURL,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// ReverseGeocode resolves coordinates to a human-readable address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	maps, err := g.settings.MapsSettings(ctx)
	if err != nil {
		return "", err
	}
	if maps.APIKey == "" {
		return "", fmt.Errorf("maps API key is not configured")
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("latlng", fmt.Sprintf("%f,%f", lat, lng)).
		SetQueryParam("key", maps.APIKey).
		Get(g.baseURL)
	if err != nil {
		return "", fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("geocoding request returned status %d", resp.StatusCode())
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return "", fmt.Errorf("no address found for location (status %s)", decoded.Status)
	}
	return decoded.Results[0].FormattedAddress, nil
}
