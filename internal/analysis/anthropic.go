// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/nutriscan/internal/httputil"
	"github.com/pdiddy/nutriscan/pkg/types"
)

// anthropicAPIURL is the Messages API endpoint. Package-level var for test
// substitution.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// AnthropicClient implements LLMClient against the Anthropic Messages API.
type AnthropicClient struct {
	APIKey     string
	Model      string
	MaxRetries int
	Client     *http.Client
}

// NewAnthropicClient builds a client from configuration. Returns nil when
// enrichment is disabled or no key is configured, which the Enricher
// treats as "always fall back".
func NewAnthropicClient(cfg types.AIConfig) *AnthropicClient {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil
	}
	return &AnthropicClient{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one prompt and returns the first text block of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     c.Model,
		MaxTokens: 1024,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode, string(body))
	}

	var ar anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}

	for _, block := range ar.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in model response")
}
