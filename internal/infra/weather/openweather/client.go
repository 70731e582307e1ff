package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
)

const (
	defaultBaseURL    = "https://api.openweathermap.org/data/2.5"
	defaultGeoBaseURL = "https://api.openweathermap.org/geo/1.0"
)

// Client fetches current weather and geocodes place names via OpenWeather.
type Client struct {
	apiKey     string
	baseURL    string
	geoBaseURL string
	httpClient *http.Client
}

// NewClient builds an API client. An empty key is tolerated so the process
// can start without it; calls then fail with a configuration error.
func NewClient(apiKey, baseURL, geoBaseURL string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	geo := strings.TrimSpace(geoBaseURL)
	if geo == "" {
		geo = defaultGeoBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(base, "/"),
		geoBaseURL: strings.TrimRight(geo, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) ready() error {
	if c.apiKey == "" {
		return errors.New("openweather key not configured")
	}
	return nil
}

// Current returns the normalized weather record for a coordinate pair.
func (c *Client) Current(ctx context.Context, lat, lon float64, lang string) (assistant.WeatherReport, error) {
	if err := c.ready(); err != nil {
		return assistant.WeatherReport{}, err
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)
	if lang != "" {
		params.Set("lang", lang)
	}
	endpoint := c.baseURL + "/weather?" + params.Encode()

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

// Resolve geocodes a free-text hint, accepting the first candidate without
// ranking.
func (c *Client) Resolve(ctx context.Context, hint string) (assistant.ResolvedLocation, error) {
	if err := c.ready(); err != nil {
		return assistant.ResolvedLocation{}, err
	}

	params := url.Values{}
	params.Set("q", hint)
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)
	endpoint := c.geoBaseURL + "/direct?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return assistant.ResolvedLocation{}, err
	}

	var candidates []geoCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return assistant.ResolvedLocation{}, fmt.Errorf("decode geocode response: %w", err)
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
		return nil, fmt.Errorf("build openweather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("openweather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	return io.ReadAll(resp.Body)
}

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Visibility int   `json:"visibility"`
	Clouds     struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt       int64 `json:"dt"`
	Timezone int   `json:"timezone"`
}

type geoCandidate struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// normalize maps the provider payload onto the shared record. Defaulting
// rules: numeric fields 0, string fields "Unknown". Units are converted to
// the shared ones: wind m/s to km/h, visibility meters to km. Sun times are
// rendered in the location's own zone.
func normalize(raw currentResponse) assistant.WeatherReport {
	condition := ""
	if len(raw.Weather) > 0 {
		condition = raw.Weather[0].Description
		if condition == "" {
			condition = raw.Weather[0].Main
		}
	}

	// Region is not part of the OpenWeather current payload.
	report := assistant.WeatherReport{
		City:         orUnknown(raw.Name),
		Region:       "Unknown",
		Country:      orUnknown(raw.Sys.Country),
		TempC:        raw.Main.Temp,
		FeelsLikeC:   raw.Main.FeelsLike,
		TempMinC:     raw.Main.TempMin,
		TempMaxC:     raw.Main.TempMax,
		Humidity:     raw.Main.Humidity,
		WindKph:      math.Round(raw.Wind.Speed*3.6*10) / 10,
		WindDeg:      raw.Wind.Deg,
		Condition:    orUnknown(condition),
		VisibilityKm: float64(raw.Visibility) / 1000,
		CloudCover:   raw.Clouds.All,
		Sunrise:      formatSunTime(raw.Sys.Sunrise, raw.Timezone),
		Sunset:       formatSunTime(raw.Sys.Sunset, raw.Timezone),
	}
	if raw.Sys.Sunrise > 0 && raw.Sys.Sunset > 0 {
		report.IsDay = raw.Dt >= raw.Sys.Sunrise && raw.Dt < raw.Sys.Sunset
	}
	return report
}

func formatSunTime(epoch int64, offsetSeconds int) string {
	if epoch == 0 {
		return "Unknown"
	}
	zone := time.FixedZone("local", offsetSeconds)
	return time.Unix(epoch, 0).In(zone).Format("15:04")
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	return value
}
