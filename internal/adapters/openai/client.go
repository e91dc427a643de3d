// Package openai adapts the OpenAI chat-completions API as the vision
// inference provider. It sends the validated images with a fixed instruction
// prompt and returns the model's raw text output for the sanitizer to decode.
package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	sdk "github.com/sashabaranov/go-openai"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

const maxCompletionTokens = 500

const vibePrompt = `Analyze the given image(s) and return only JSON describing its vibe.
Fields:
- aesthetic: short label (e.g., cottagecore, minimalism, streetwear)
- mood: comma-separated adjectives
- recommended_song: suggest a song that fits the vibe
  - song_name
  - artist
Return ONLY valid JSON:
{
  "aesthetic": "",
  "mood": "",
  "recommended_song": { "song_name": "", "artist": "" }
}`

// Client is the vision inference adapter.
type Client struct {
	api *sdk.Client
}

// Config carries the provider settings. BaseURL and HTTPClient exist for test
// stubs and default to the real API otherwise.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// compile-time interface assertion
var _ ports.VibeInferrer = (*Client)(nil)

// NewClient constructs the adapter. An empty API key yields a client whose
// Infer fails fast with a configuration error before any network call.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return &Client{}
	}

	sdkCfg := sdk.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		sdkCfg.HTTPClient = cfg.HTTPClient
	} else {
		// The vision call routinely takes several seconds.
		sdkCfg.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{api: sdk.NewClientWithConfig(sdkCfg)}
}

// Infer sends one multi-part message: the fixed instruction followed by one
// image part per reference. URL references and inline data URIs travel the
// same way; the provider accepts both forms in an image_url part.
func (c *Client) Infer(ctx context.Context, refs []domain.ImageRef) (string, error) {
	if c.api == nil {
		return "", ports.NewError(ports.KindConfiguration, "inference API key not configured", nil)
	}

	parts := make([]sdk.ChatMessagePart, 0, len(refs)+1)
	parts = append(parts, sdk.ChatMessagePart{
		Type: sdk.ChatMessagePartTypeText,
		Text: vibePrompt,
	})
	for _, ref := range refs {
		parts = append(parts, sdk.ChatMessagePart{
			Type:     sdk.ChatMessagePartTypeImageURL,
			ImageURL: &sdk.ChatMessageImageURL{URL: ref.Value},
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, sdk.ChatCompletionRequest{
		Model:     sdk.GPT4oMini,
		MaxTokens: maxCompletionTokens,
		Messages: []sdk.ChatCompletionMessage{{
			Role:         sdk.ChatMessageRoleUser,
			MultiContent: parts,
		}},
	})
	if err != nil {
		return "", ports.NewError(ports.KindInferenceUnavailable, "vision inference call failed", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ports.NewError(ports.KindInferenceError, "vision inference returned no content", nil)
	}
	return resp.Choices[0].Message.Content, nil
}
