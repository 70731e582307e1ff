package assistant

import (
	"context"
	"errors"

	"github.com/yanqian/atmos-assistant/pkg/metrics"
)

// Request captures the payload accepted by the chat endpoint. The legacy
// aliases (query/city/topic) come from earlier drafts of the browser client
// and are coalesced before the pipeline runs.
type Request struct {
	Message  string   `json:"message"`
	Query    string   `json:"query"`
	Location string   `json:"location"`
	City     string   `json:"city"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Theme    string   `json:"theme"`
	Topic    string   `json:"topic"`
	Lang     string   `json:"lang"`
}

// Response is serialized back to the browser. NeedsLocation marks the
// short-circuit answers that ask the user for a usable location; those are
// conversational, not errors.
type Response struct {
	Reply         string         `json:"reply"`
	City          string         `json:"city,omitempty"`
	Weather       *WeatherReport `json:"weather,omitempty"`
	NeedsLocation bool           `json:"needsLocation,omitempty"`
}

// WeatherReport is the normalized current-weather record shared by every
// provider. Missing upstream fields are defaulted (0 / "Unknown"), never
// dropped. Units: °C, km/h, km.
type WeatherReport struct {
	City         string  `json:"city"`
	Region       string  `json:"region"`
	Country      string  `json:"country"`
	TempC        float64 `json:"temp"`
	FeelsLikeC   float64 `json:"feels_like"`
	TempMinC     float64 `json:"temp_min"`
	TempMaxC     float64 `json:"temp_max"`
	Humidity     int     `json:"humidity"`
	WindKph      float64 `json:"wind_speed"`
	WindDeg      int     `json:"wind_deg"`
	Condition    string  `json:"condition"`
	VisibilityKm float64 `json:"visibility"`
	CloudCover   int     `json:"clouds"`
	Sunrise      string  `json:"sunrise"`
	Sunset       string  `json:"sunset"`
	IsDay        bool    `json:"is_day"`
}

// ResolvedLocation is the outcome of geocoding a free-text hint. It lives for
// the duration of one request only.
type ResolvedLocation struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// ErrLocationNotFound signals that a hint matched no known place. It is
// surfaced to the user as a needsLocation reply, not as a server error.
var ErrLocationNotFound = errors.New("location not found")

// Geocoder resolves a free-text place hint to coordinates. Implementations
// accept the first upstream candidate without ranking.
type Geocoder interface {
	Resolve(ctx context.Context, hint string) (ResolvedLocation, error)
}

// WeatherProvider fetches the current weather for a coordinate pair.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64, lang string) (WeatherReport, error)
}

// ModelReply is the outcome of a single generation call.
type ModelReply struct {
	Text  string
	Usage metrics.TokenUsage
}

// ModelClient issues one generation call against a named model. Candidate
// fallback across models is the service's concern, not the client's.
type ModelClient interface {
	Generate(ctx context.Context, model, prompt string) (ModelReply, error)
}

// Config wires runtime knobs for the assistant domain.
type Config struct {
	// Models is the ordered candidate list, most capable first.
	Models []string
	// ExtractionModel answers the narrow city-extraction task.
	ExtractionModel string
	// MinReplyRunes guards against degenerate echoes from a candidate.
	MinReplyRunes int
}
