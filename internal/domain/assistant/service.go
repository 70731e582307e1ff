package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/atmos-assistant/pkg/errors"
)

// Service exposes the weather-aware chat pipeline.
type Service interface {
	Chat(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg      Config
	geocoder Geocoder
	weather  WeatherProvider
	model    ModelClient
	logger   *slog.Logger
}

// NewService wires up the assistant domain.
func NewService(cfg Config, geocoder Geocoder, weather WeatherProvider, model ModelClient, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		weather:  weather,
		model:    model,
		logger:   logger.With("component", "assistant.service"),
	}
}

// Chat runs the linear pipeline: validate, resolve the location, fetch the
// weather, compose the prompt, ask the model. Missing-input and unresolvable
// locations come back as conversational responses, not errors.
func (s *service) Chat(ctx context.Context, req Request) (Response, error) {
	lang := normalizeLang(req.Lang)
	strs := catalogFor(lang)

	message := firstNonEmpty(req.Message, req.Query)
	if message == "" {
		return Response{Reply: strs.needMessage}, nil
	}
	theme := firstNonEmpty(req.Theme, req.Topic)
	if theme == "" {
		theme = "general"
	}

	loc, resp, err := s.resolveLocation(ctx, req, message, strs)
	if err != nil {
		return Response{}, err
	}
	if resp != nil {
		return *resp, nil
	}

	report, err := s.weather.Current(ctx, loc.Lat, loc.Lon, lang)
	if err != nil {
		return Response{}, apperrors.Wrap("weather_error", "failed to fetch weather", err)
	}
	if loc.DisplayName == "" {
		loc.DisplayName = report.City
	}

	prompt := composePrompt(message, loc.DisplayName, theme, report, lang)

	reply, err := s.ask(ctx, prompt)
	if err != nil {
		return Response{}, err
	}
	if reply == "" {
		s.logger.Warn("all model candidates degenerate, using fallback reply", "lang", lang)
		reply = strs.fallbackReply
	}

	return Response{
		Reply:   reply,
		City:    loc.DisplayName,
		Weather: &report,
	}, nil
}

// resolveLocation applies the precedence rules: explicit coordinates win, then
// the location field, then a city extracted from the message itself. A non-nil
// Response means the pipeline short-circuits with a needsLocation answer.
func (s *service) resolveLocation(ctx context.Context, req Request, message string, strs catalog) (ResolvedLocation, *Response, error) {
	if req.Lat != nil && req.Lon != nil {
		return ResolvedLocation{Lat: *req.Lat, Lon: *req.Lon}, nil, nil
	}

	hint := firstNonEmpty(req.Location, req.City)
	if hint == "" {
		hint = s.extractCity(ctx, message)
		if hint == "" {
			return ResolvedLocation{}, &Response{NeedsLocation: true, Reply: strs.needLocation}, nil
		}
	}

	loc, err := s.geocoder.Resolve(ctx, hint)
	if errors.Is(err, ErrLocationNotFound) {
		return ResolvedLocation{}, &Response{NeedsLocation: true, Reply: strs.locationNotFound}, nil
	}
	if err != nil {
		return ResolvedLocation{}, nil, apperrors.Wrap("geocode_error", "failed to resolve location", err)
	}
	return loc, nil, nil
}

// ask walks the candidate list in order and accepts the first reply that is
// non-empty and long enough. It distinguishes "every candidate failed to
// answer" (an upstream error) from "answers arrived but were degenerate"
// (empty reply, caller substitutes the fallback string).
func (s *service) ask(ctx context.Context, prompt string) (string, error) {
	var (
		lastErr   error
		delivered bool
	)
	for _, model := range s.cfg.Models {
		out, err := s.model.Generate(ctx, model, prompt)
		if err != nil {
			s.logger.Warn("model candidate failed", "model", model, "error", err)
			lastErr = err
			continue
		}
		delivered = true
		text := strings.TrimSpace(out.Text)
		if utf8.RuneCountInString(text) >= s.cfg.MinReplyRunes {
			if !out.Usage.IsZero() {
				s.logger.Info("model reply accepted", "model", model,
					"promptTokens", out.Usage.PromptTokens,
					"completionTokens", out.Usage.CompletionTokens,
					"totalTokens", out.Usage.TotalTokens)
			}
			return text, nil
		}
		s.logger.Warn("model reply below minimum length", "model", model, "runes", utf8.RuneCountInString(text))
	}
	if !delivered && lastErr != nil {
		return "", apperrors.Wrap("llm_error", "all model candidates failed", lastErr)
	}
	return "", nil
}

// extractCity runs the narrow one-shot extraction task against a single fixed
// model. Any failure degrades to "no hint found" rather than an error.
func (s *service) extractCity(ctx context.Context, message string) string {
	prompt := fmt.Sprintf("Extract the city or place name the following message refers to. Output only the city name, or the literal token NONE if there is none.\n\nMessage: %s", message)

	out, err := s.model.Generate(ctx, s.cfg.ExtractionModel, prompt)
	if err != nil {
		s.logger.Warn("city extraction failed", "error", err)
		return ""
	}

	city := strings.TrimSpace(out.Text)
	if idx := strings.IndexByte(city, '\n'); idx >= 0 {
		city = strings.TrimSpace(city[:idx])
	}
	city = strings.Trim(city, `"'.`)
	if city == "" || strings.EqualFold(city, "NONE") || utf8.RuneCountInString(city) > 64 {
		return ""
	}
	return city
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
