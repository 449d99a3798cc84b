package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerateOptions controls sampling for one completion call
type GenerateOptions struct {
	Tier        ModelTier
	Temperature float32
	// MaxTokens caps the model's output length. Zero means provider default.
	MaxTokens int32
}

// Client is an abstraction over LLM providers. Each call sends one system
// message and one user message and returns the model's text.
type Client interface {
	// GenerateContent generates free text
	GenerateContent(ctx context.Context, system, user string, opts GenerateOptions) (string, error)
	// GenerateJSON generates text in the provider's JSON response mode,
	// with markdown code fences stripped
	GenerateJSON(ctx context.Context, system, user string, opts GenerateOptions) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &MissingCredentialError{}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates free text for a system+user message pair
func (c *GeminiClient) GenerateContent(ctx context.Context, system, user string, opts GenerateOptions) (string, error) {
	model, err := c.model(system, opts)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", &APICallError{Message: "failed to generate content", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates content in JSON response mode and strips any
// markdown code block wrappers.
func (c *GeminiClient) GenerateJSON(ctx context.Context, system, user string, opts GenerateOptions) (string, error) {
	model, err := c.model(system, opts)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", &APICallError{Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// model configures a generative model for one call
func (c *GeminiClient) model(system string, opts GenerateOptions) (*genai.GenerativeModel, error) {
	modelName := c.config.GetModel(opts.Tier)
	if modelName == "" {
		return nil, &APICallError{Message: "no model configured for tier " + string(opts.Tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxTokens)
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	return model, nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &APICallError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &APICallError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &APICallError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
