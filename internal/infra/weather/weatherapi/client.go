package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
)

const defaultBaseURL = "https://api.weatherapi.com/v1"

// Client fetches current weather and resolves place names via WeatherAPI.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. An empty key is tolerated so the process
// can start without it; calls then fail with a configuration error.
func NewClient(apiKey, baseURL string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) ready() error {
	if c.apiKey == "" {
		return errors.New("weatherapi key not configured")
	}
	return nil
}

// Current returns the normalized weather record for a coordinate pair.
// WeatherAPI accepts "lat,lon" as a query value directly.
func (c *Client) Current(ctx context.Context, lat, lon float64, lang string) (assistant.WeatherReport, error) {
	if err := c.ready(); err != nil {
		return assistant.WeatherReport{}, err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	if lang != "" {
		params.Set("lang", lang)
	}
	endpoint := c.baseURL + "/current.json?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return assistant.WeatherReport{}, err
	}

	var raw currentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return assistant.WeatherReport{}, fmt.Errorf("decode weather response: %w", err)
	}
	return normalize(raw), nil
}

// Resolve geocodes a free-text hint using the search endpoint, accepting the
// first candidate without ranking.
func (c *Client) Resolve(ctx context.Context, hint string) (assistant.ResolvedLocation, error) {
	if err := c.ready(); err != nil {
		return assistant.ResolvedLocation{}, err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", hint)
	endpoint := c.baseURL + "/search.json?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return assistant.ResolvedLocation{}, err
	}

	var candidates []searchCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return assistant.ResolvedLocation{}, fmt.Errorf("decode search response: %w", err)
	}
	if len(candidates) == 0 {
		return assistant.ResolvedLocation{}, assistant.ErrLocationNotFound
	}

	first := candidates[0]
	return assistant.ResolvedLocation{
		Lat:         first.Lat,
		Lon:         first.Lon,
		DisplayName: first.Name,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weatherapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weatherapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("weatherapi request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	return io.ReadAll(resp.Body)
}

type currentResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		FeelsLikeC float64 `json:"feelslike_c"`
		Humidity   int     `json:"humidity"`
		WindKph    float64 `json:"wind_kph"`
		WindDegree int     `json:"wind_degree"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
		VisKm float64 `json:"vis_km"`
		Cloud int     `json:"cloud"`
		IsDay int     `json:"is_day"`
	} `json:"current"`
}

type searchCandidate struct {
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// normalize maps the provider payload onto the shared record. Defaulting
// rules: numeric fields 0, string fields "Unknown". WeatherAPI's current
// endpoint carries no min/max temperature or sun times, so those stay at
// their defaults.
func normalize(raw currentResponse) assistant.WeatherReport {
	return assistant.WeatherReport{
		City:         orUnknown(raw.Location.Name),
		Region:       orUnknown(raw.Location.Region),
		Country:      orUnknown(raw.Location.Country),
		TempC:        raw.Current.TempC,
		FeelsLikeC:   raw.Current.FeelsLikeC,
		Humidity:     raw.Current.Humidity,
		WindKph:      raw.Current.WindKph,
		WindDeg:      raw.Current.WindDegree,
		Condition:    orUnknown(raw.Current.Condition.Text),
		VisibilityKm: raw.Current.VisKm,
		CloudCover:   raw.Current.Cloud,
		Sunrise:      "Unknown",
		Sunset:       "Unknown",
		IsDay:        raw.Current.IsDay == 1,
	}
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	return value
}
