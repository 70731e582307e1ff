package main

import (
	"context"
	"log/slog"

	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
	"github.com/yanqian/atmos-assistant/internal/infra/config"
	"github.com/yanqian/atmos-assistant/internal/infra/llm/gemini"
	ttsopenai "github.com/yanqian/atmos-assistant/internal/infra/tts/openai"
	"github.com/yanqian/atmos-assistant/internal/infra/weather/openweather"
	"github.com/yanqian/atmos-assistant/internal/infra/weather/weatherapi"
)

// weatherBackend is what both provider clients implement: current weather
// plus geocoding from the same API family.
type weatherBackend interface {
	assistant.WeatherProvider
	assistant.Geocoder
}

func provideAssistantConfig(cfg *config.Config) assistant.Config {
	return assistant.Config{
		Models:          cfg.LLM.Models,
		ExtractionModel: cfg.LLM.ExtractionModel,
		MinReplyRunes:   cfg.LLM.MinReplyRunes,
	}
}

// provideWeatherBackend picks the provider by key presence: WeatherAPI when
// its key is set, OpenWeather otherwise. With no key at all the weather
// endpoints fail per-request rather than blocking startup.
func provideWeatherBackend(cfg *config.Config, logger *slog.Logger) weatherBackend {
	if cfg.Weather.WeatherAPIKey != "" {
		logger.Info("weather provider selected", "provider", "weatherapi")
		return weatherapi.NewClient(cfg.Weather.WeatherAPIKey, cfg.Weather.WeatherAPIBaseURL)
	}
	if cfg.Weather.OpenWeatherKey == "" {
		logger.Warn("no weather provider key configured, weather requests will fail")
	} else {
		logger.Info("weather provider selected", "provider", "openweather")
	}
	return openweather.NewClient(cfg.Weather.OpenWeatherKey, cfg.Weather.OpenWeatherBaseURL, cfg.Weather.GeocodeBaseURL)
}

func provideWeatherProvider(backend weatherBackend) assistant.WeatherProvider {
	return backend
}

func provideGeocoder(backend weatherBackend) assistant.Geocoder {
	return backend
}

func provideGeminiClient(cfg *config.Config) (*gemini.Client, error) {
	return gemini.NewClient(context.Background(), cfg.LLM.APIKey)
}

func provideSpeechClient(cfg *config.Config) *ttsopenai.Client {
	return ttsopenai.NewClient(cfg.TTS.APIKey, cfg.TTS.BaseURL, cfg.TTS.Model, cfg.TTS.Voice)
}
