package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoResult is returned when the postal code resolves to nothing.
var ErrNoResult = errors.New("no geocoding result")

// Nominatim implements Geocoder using the OpenStreetMap search API.
type Nominatim struct {
	BaseURL   string
	Country   string
	UserAgent string
	Client    *http.Client
}

func NewNominatim(baseURL, country, userAgent string) *Nominatim {
	return &Nominatim{
		BaseURL:   baseURL,
		Country:   country,
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *Nominatim) Geocode(ctx context.Context, zipcode string) (Location, error) {
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return Location{}, fmt.Errorf("empty zipcode")
	}
	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	q := url.Values{}
	q.Set("postalcode", zipcode)
	q.Set("format", "json")
	q.Set("limit", "1")
	if n.Country != "" {
		q.Set("countrycodes", n.Country)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Location{}, err
	}
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var body []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, err
	}
	if len(body) == 0 {
		return Location{}, ErrNoResult
	}
	lat, err := strconv.ParseFloat(body[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(body[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("parse lon: %w", err)
	}
	return Location{Latitude: lat, Longitude: lng, FormattedAddress: body[0].DisplayName}, nil
}
