package speech

import "context"

// Request is the payload accepted by the synthesis endpoint.
type Request struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Audio is a one-shot synthesized utterance. It is streamed to the caller and
// never stored.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer converts text to audio via an upstream speech API.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) (Audio, error)
}

// maxTextRunes matches the upstream input cap for a single utterance.
const maxTextRunes = 4096
