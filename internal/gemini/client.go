// filepath: internal/gemini/client.go
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/logging"
	"google.golang.org/genai"
)

// Generator is the minimal surface the analysis pipeline needs from the
// generative-language upstream. Tests substitute a stub.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Compile-time check to ensure Client implements the Generator interface.
var _ Generator = (*Client)(nil)

// Client wraps the official Gemini SDK client.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Gemini client from the configuration. The API key is
// required; everything else has defaults.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("gemini api key is required (set gemini.api_key or MB_GEMINI_API_KEY)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logging.Log.Infof("Gemini client initialized (model: %s)", cfg.Gemini.Model)

	return &Client{
		client:  client,
		model:   cfg.Gemini.Model,
		timeout: time.Duration(cfg.Gemini.TimeoutSec) * time.Second,
	}, nil
}

// GenerateText runs a single generateContent call and returns the trimmed
// response text. Thinking is disabled for latency, matching how the prompts
// in this package are written.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
