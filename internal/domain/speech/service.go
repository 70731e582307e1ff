package speech

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/atmos-assistant/pkg/errors"
)

// Service exposes text-to-speech for assistant replies.
type Service interface {
	Speak(ctx context.Context, req Request) (Audio, error)
}

type service struct {
	synth  Synthesizer
	logger *slog.Logger
}

// NewService wires up the speech domain.
func NewService(synth Synthesizer, logger *slog.Logger) Service {
	return &service{
		synth:  synth,
		logger: logger.With("component", "speech.service"),
	}
}

func (s *service) Speak(ctx context.Context, req Request) (Audio, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Audio{}, apperrors.Wrap("invalid_input", "text cannot be empty", nil)
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		return Audio{}, apperrors.Wrap("invalid_input", "text too long to synthesize", nil)
	}

	audio, err := s.synth.Synthesize(ctx, text, req.Lang)
	if err != nil {
		return Audio{}, apperrors.Wrap("tts_error", "speech synthesis failed", err)
	}
	s.logger.Info("utterance synthesized", "bytes", len(audio.Data), "lang", req.Lang)
	return audio, nil
}
