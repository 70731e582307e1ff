package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/atmos-assistant/internal/domain/speech"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI speech endpoint and returns raw MP3 bytes.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	httpClient *http.Client
}

// NewClient builds a speech client. An empty key is tolerated so the process
// can start without it; calls then fail with a configuration error.
func NewClient(apiKey, baseURL, model, voice string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
		voice:   voice,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type speechRequest struct {
	Model  string `json:"model"`
	Voice  string `json:"voice"`
	Input  string `json:"input"`
	Format string `json:"format"`
}

// Synthesize converts text to one MP3 utterance. The voice is fixed by
// configuration; lang only matters to the upstream model's pronunciation.
func (c *Client) Synthesize(ctx context.Context, text, lang string) (speech.Audio, error) {
	if c.apiKey == "" {
		return speech.Audio{}, errors.New("tts api key not configured")
	}

	payload, err := json.Marshal(speechRequest{
		Model:  c.model,
		Voice:  c.voice,
		Input:  text,
		Format: "mp3",
	})
	if err != nil {
		return speech.Audio{}, fmt.Errorf("encode speech request: %w", err)
	}

	endpoint := c.baseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return speech.Audio{}, fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return speech.Audio{}, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return speech.Audio{}, fmt.Errorf("speech request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return speech.Audio{}, fmt.Errorf("read speech response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return speech.Audio{Data: data, ContentType: contentType}, nil
}
