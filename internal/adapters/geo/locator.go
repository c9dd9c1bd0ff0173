// Package geo implements the geolocator port against a Nominatim-compatible
// forward-geocoding endpoint.
package geo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Config configures the geocoding endpoint and HTTP behavior.
type Config struct {
	BaseURL string
	// UserAgent identifies this service; public Nominatim requires one.
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Locator resolves free-text locations to coordinates. Lookups are
// best-effort: every failure mode — timeout, transport error, bad status,
// unparseable body, no match — yields (nil, nil). Callers proceed with no
// coordinates and never see a geocoding error.
type Locator struct {
	cfg Config
}

func NewLocator(cfg Config) *Locator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Locator{cfg: cfg}
}

func (l *Locator) Locate(ctx context.Context, location string) (*domain.Coordinates, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, nil
	}
	if l.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", l.cfg.UserAgent)
	}

	resp, err := l.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, nil
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, nil
	}
	return &domain.Coordinates{Latitude: lat, Longitude: lng}, nil
}
