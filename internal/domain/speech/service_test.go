package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/atmos-assistant/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSpeakSuccess(t *testing.T) {
	synth := &stubSynthesizer{audio: Audio{Data: []byte{1, 2, 3}, ContentType: "audio/mpeg"}}
	svc := NewService(synth, discardLogger())

	audio, err := svc.Speak(context.Background(), Request{Text: "Take an umbrella.", Lang: "en"})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, audio.Data)
	require.Equal(t, "Take an umbrella.", synth.lastText)
	require.Equal(t, "en", synth.lastLang)
}

func TestSpeakEmptyText(t *testing.T) {
	synth := &stubSynthesizer{}
	svc := NewService(synth, discardLogger())

	_, err := svc.Speak(context.Background(), Request{Text: "   "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Zero(t, synth.calls)
}

func TestSpeakTooLong(t *testing.T) {
	svc := NewService(&stubSynthesizer{}, discardLogger())

	_, err := svc.Speak(context.Background(), Request{Text: strings.Repeat("a", maxTextRunes+1)})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSpeakUpstreamFailure(t *testing.T) {
	synth := &stubSynthesizer{err: errors.New("quota")}
	svc := NewService(synth, discardLogger())

	_, err := svc.Speak(context.Background(), Request{Text: "hello"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "tts_error"))
}

type stubSynthesizer struct {
	audio    Audio
	err      error
	calls    int
	lastText string
	lastLang string
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, lang string) (Audio, error) {
	s.calls++
	s.lastText = text
	s.lastLang = lang
	if s.err != nil {
		return Audio{}, s.err
	}
	return s.audio, nil
}
