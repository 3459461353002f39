// Package gemini is the boundary to the Gemini generative API. Every
// structured call constrains the model with a JSON response schema, and every
// reply is defensively cleaned and parsed; callers are expected to fall back
// to local results when anything here errors.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned by NewClient when no credentials are
// configured. Callers treat this the same as any other AI failure: skip the
// model and use local fallbacks.
var ErrMissingAPIKey = errors.New("gemini: API key is not configured")

// Client wraps a genai client with the fixed model and prompt conventions of
// this service.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini client. The API key must be non-empty; detecting
// missing credentials here lets the rest of the service degrade to local
// rules without ever issuing a doomed request.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewClient: create genai client: %w", err)
	}

	return &Client{genai: client, model: model}, nil
}

// generateJSON issues one prompt with a response schema and decodes the reply
// into out. The reply text is cleaned first in case the model ignored the
// MIME-type instruction and wrapped the JSON in Markdown fences.
func (c *Client) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, out interface{}) error {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return fmt.Errorf("generateJSON: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return fmt.Errorf("generateJSON: empty response from model")
	}

	clean := cleanModelJSON(rawText)
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("generateJSON: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}
	return nil
}

// generateText issues one free-text prompt with an optional system
// instruction and returns the raw reply.
func (c *Client) generateText(ctx context.Context, prompt, system string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generateText: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generateText: empty response from model")
	}
	return text, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk that models
// sometimes emit despite strict-JSON instructions, keeping only the outermost
// JSON value.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still prose around the JSON, keep only from the first
	// opening bracket to the matching last closing bracket.
	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return s
	}
	var closer string
	if s[start] == '[' {
		closer = "]"
	} else {
		closer = "}"
	}
	if end := strings.LastIndex(s, closer); end > start {
		s = strings.TrimSpace(s[start : end+1])
	}

	return s
}
