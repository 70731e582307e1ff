package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
	"github.com/yanqian/atmos-assistant/pkg/metrics"
)

// Client issues one-shot text generation calls against the Gemini API. The
// model name is chosen per call so the domain can walk its candidate list.
type Client struct {
	api *genai.Client
}

// NewClient constructs a Gemini client. An empty key yields a client whose
// calls fail with a configuration error instead of blocking startup.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return &Client{}, nil
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{api: api}, nil
}

// Generate sends the prompt to the named model and returns the reply text
// plus reported token usage.
func (c *Client) Generate(ctx context.Context, model, prompt string) (assistant.ModelReply, error) {
	if c.api == nil {
		return assistant.ModelReply{}, errors.New("gemini api key not configured")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := c.api.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return assistant.ModelReply{}, fmt.Errorf("gemini generate (%s): %w", model, err)
	}

	reply := assistant.ModelReply{Text: result.Text()}
	if um := result.UsageMetadata; um != nil {
		reply.Usage = metrics.TokenUsage{
			PromptTokens:     int(um.PromptTokenCount),
			CompletionTokens: int(um.CandidatesTokenCount),
			TotalTokens:      int(um.TotalTokenCount),
		}
	}
	return reply, nil
}
