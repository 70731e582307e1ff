package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Weather WeatherConfig `yaml:"weather"`
	LLM     LLMConfig     `yaml:"llm"`
	TTS     TTSConfig     `yaml:"tts"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	StaticDir      string          `yaml:"staticDir"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// WeatherConfig selects and configures the current-weather providers. Which
// provider serves requests is decided by key presence: WeatherAPI when its key
// is set, OpenWeather otherwise.
type WeatherConfig struct {
	WeatherAPIKey      string `yaml:"weatherApiKey"`
	WeatherAPIBaseURL  string `yaml:"weatherApiBaseUrl"`
	OpenWeatherKey     string `yaml:"openWeatherKey"`
	OpenWeatherBaseURL string `yaml:"openWeatherBaseUrl"`
	GeocodeBaseURL     string `yaml:"geocodeBaseUrl"`
}

// LLMConfig contains Gemini settings, including the ordered candidate model
// list tried most-capable first.
type LLMConfig struct {
	APIKey          string   `yaml:"apiKey"`
	Models          []string `yaml:"models"`
	ExtractionModel string   `yaml:"extractionModel"`
	MinReplyRunes   int      `yaml:"minReplyRunes"`
}

// TTSConfig controls the speech synthesis endpoint.
type TTSConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	Voice   string `yaml:"voice"`
}

// Load reads configuration from an optional .env file, a YAML file and
// environment variables, in that order of increasing precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("WEATHERAPI_KEY"); v != "" {
		cfg.Weather.WeatherAPIKey = v
	}
	if v := os.Getenv("WEATHERAPI_BASE_URL"); v != "" {
		cfg.Weather.WeatherAPIBaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.OpenWeatherKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.Weather.OpenWeatherBaseURL = v
	}
	if v := os.Getenv("GEOCODE_BASE_URL"); v != "" {
		cfg.Weather.GeocodeBaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODELS"); v != "" {
		cfg.LLM.Models = splitList(v)
	}
	if v := os.Getenv("GEMINI_EXTRACTION_MODEL"); v != "" {
		cfg.LLM.ExtractionModel = v
	}
	if v := os.Getenv("GEMINI_MIN_REPLY_RUNES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MinReplyRunes = parsed
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.TTS.APIKey = v
	}
	if v := os.Getenv("TTS_BASE_URL"); v != "" {
		cfg.TTS.BaseURL = v
	}
	if v := os.Getenv("TTS_MODEL"); v != "" {
		cfg.TTS.Model = v
	}
	if v := os.Getenv("TTS_VOICE"); v != "" {
		cfg.TTS.Voice = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			StaticDir:    "web",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Weather: WeatherConfig{
			WeatherAPIBaseURL:  "https://api.weatherapi.com/v1",
			OpenWeatherBaseURL: "https://api.openweathermap.org/data/2.5",
			GeocodeBaseURL:     "https://api.openweathermap.org/geo/1.0",
		},
		LLM: LLMConfig{
			Models: []string{
				"gemini-2.5-flash",
				"gemini-2.0-flash",
				"gemini-1.5-flash",
			},
			ExtractionModel: "gemini-2.0-flash",
			MinReplyRunes:   20,
		},
		TTS: TTSConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini-tts",
			Voice:   "alloy",
		},
	}
}

// Validate ensures the configuration is safe to use. API keys are allowed to
// be absent here; the endpoints that need them fail per-request instead of
// blocking startup.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return errors.New("http timeouts must be positive")
	}
	if len(c.LLM.Models) == 0 {
		return errors.New("llm.models cannot be empty")
	}
	if strings.TrimSpace(c.LLM.ExtractionModel) == "" {
		return errors.New("llm.extractionModel cannot be empty")
	}
	if c.LLM.MinReplyRunes <= 0 {
		return errors.New("llm.minReplyRunes must be positive")
	}
	if c.Weather.WeatherAPIBaseURL == "" || c.Weather.OpenWeatherBaseURL == "" {
		return errors.New("weather base URLs cannot be empty")
	}
	if c.Weather.GeocodeBaseURL == "" {
		return errors.New("weather.geocodeBaseUrl cannot be empty")
	}
	if c.TTS.BaseURL == "" || c.TTS.Model == "" || c.TTS.Voice == "" {
		return errors.New("tts settings cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
