// Package gemini implements the generative and embedding capabilities over
// the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume-quality/internal/analysis"
)

// Client wraps one Gemini API client for both text generation and
// embeddings.
type Client struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

// NewClient constructs a Gemini client. An empty API key returns an error so
// the caller can leave both capabilities nil and let the pipeline degrade.
func NewClient(ctx context.Context, apiKey, model, embeddingModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini API key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	if strings.TrimSpace(embeddingModel) == "" {
		embeddingModel = "gemini-embedding-001"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: client, model: model, embeddingModel: embeddingModel}, nil
}

// Generate sends the prompt to the generative model with temperature 0 and
// returns the plain-text response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	temp := float32(0)
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response has no candidates")
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", errors.New("gemini response empty")
	}
	return out, nil
}

// Encode embeds the text with the embedding model.
func (c *Client) Encode(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Models.EmbedContent(ctx,
		c.embeddingModel,
		genai.Text(text),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini embedding empty")
	}
	return resp.Embeddings[0].Values, nil
}

var (
	_ analysis.Generator = (*Client)(nil)
	_ analysis.Embedder  = (*Client)(nil)
)
