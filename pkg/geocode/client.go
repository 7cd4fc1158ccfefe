// Package geocode resolves a free-form address to coordinates via the
// Nominatim search API. Results are cached: the same spoken address tends to
// repeat across a user's tasks, and Nominatim's usage policy asks for at most
// one request per second.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Coordinate is a geocoded point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Client is a Nominatim geocoding client with an in-memory TTL cache.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *expirable.LRU[string, Coordinate]
}

// NewClient creates a geocoding client. userAgent identifies the application
// to Nominatim, which rejects anonymous clients.
func NewClient(userAgent string, cacheSize int, cacheTTL time.Duration) *Client {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	return &Client{
		baseURL:    defaultBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      expirable.NewLRU[string, Coordinate](cacheSize, nil, cacheTTL),
	}
}

// SetBaseURL overrides the Nominatim endpoint for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves address to a coordinate. The second return value is false
// when Nominatim knows nothing about the address; that is not an error.
func (c *Client) Lookup(ctx context.Context, address string) (Coordinate, bool, error) {
	key := strings.ToLower(strings.TrimSpace(address))
	if key == "" {
		return Coordinate{}, false, nil
	}
	if coord, ok := c.cache.Get(key); ok {
		return coord, true, nil
	}

	q := url.Values{}
	q.Set("q", key)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinate{}, false, fmt.Errorf("geocode API error %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinate{}, false, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return Coordinate{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return Coordinate{}, false, fmt.Errorf("geocode API returned malformed coordinates %q %q", results[0].Lat, results[0].Lon)
	}

	coord := Coordinate{Lat: lat, Lon: lon}
	c.cache.Add(key, coord)
	return coord, true, nil
}
