package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the default Gemini model used for query planning and
	// digest synthesis.
	DefaultModel = "gemini-2.5-flash"
	// DefaultTimeout bounds a single model call.
	DefaultTimeout = 30 * time.Second
)

// TextGenerator is the interface consumed by the planner and the digest
// synthesizer. A nil TextGenerator means "no model configured" and every
// consumer degrades to its deterministic fallback.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client wraps the Gemini SDK behind the TextGenerator interface.
type Client struct {
	modelName   string
	temperature float32
	timeout     time.Duration
	gClient     *genai.Client
}

// NewClient creates a new LLM client. The API key is an explicit dependency;
// callers decide how to source it (environment, config file).
func NewClient(apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	ctx := context.Background()
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName:   modelName,
		temperature: 0.3,
		timeout:     DefaultTimeout,
		gClient:     gClient,
	}, nil
}

// Generate sends a single prompt to the model and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.modelName
}

// Close releases client resources.
func (c *Client) Close() {
	// The SDK client doesn't require explicit close
}
