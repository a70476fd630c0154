// Package ai is the remote resolver: it wraps a text-completion provider,
// builds the lighting context prompt and normalizes the model's free-text
// reply into the same intent shape the local parser produces.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Completer is the opaque remote completion collaborator: prompt in, raw
// text out. The production implementation is Client; tests stub it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client talks to the configured completion provider. Gemini goes through
// the genai SDK; openai-compatible providers go through plain HTTP.
type Client struct {
	provider     string
	apiKey       string
	baseURL      string
	model        string
	temperature  float64
	geminiClient *genai.Client
	debug        bool
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Temperature float64         `json:"temperature,omitempty"`
	Messages    []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func looksLikeEnvVarName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 8 {
		return false
	}
	// Must be all caps/underscores/digits and start with a letter.
	for i, r := range s {
		if i == 0 {
			if r < 'A' || r > 'Z' {
				return false
			}
			continue
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			continue
		}
		return false
	}
	return true
}

// resolveEnvVarKeyPointer lets config carry either a literal key or the
// name of the env var that holds it.
func resolveEnvVarKeyPointer(apiKey string) string {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ""
	}
	if !looksLikeEnvVarName(apiKey) {
		return apiKey
	}
	if v := strings.TrimSpace(os.Getenv(apiKey)); v != "" {
		return v
	}
	return apiKey
}

// NewClient builds a completion client for the configured provider.
// Supported providers: "gemini" (Application Default Credentials),
// "gemini-api" (API key), "openai".
func NewClient(provider, apiKey string, debug bool) (*Client, error) {
	c := &Client{
		provider: provider,
		apiKey:   resolveEnvVarKeyPointer(apiKey),
		debug:    debug,
	}

	c.model = viper.GetString(fmt.Sprintf("ai.providers.%s.model", provider))
	c.temperature = viper.GetFloat64(fmt.Sprintf("ai.providers.%s.temperature", provider))

	switch provider {
	case "gemini":
		// Application Default Credentials, same as the gemini CLI:
		// gcloud auth application-default login
		if c.model == "" {
			c.model = defaultGeminiModel
		}
		gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c.geminiClient = gc
	case "gemini-api":
		if c.apiKey == "" {
			c.apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		}
		if c.apiKey == "" {
			return nil, fmt.Errorf("gemini-api provider configured without API key")
		}
		if c.model == "" {
			c.model = defaultGeminiModel
		}
		gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: c.apiKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c.geminiClient = gc
	case "openai", "":
		c.provider = "openai"
		c.baseURL = viper.GetString("ai.providers.openai.base_url")
		if c.baseURL == "" {
			c.baseURL = "https://api.openai.com/v1"
		}
		if c.model == "" {
			c.model = "gpt-4o-mini"
		}
		if c.apiKey == "" {
			c.apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		}
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}

	return c, nil
}

// Complete sends one prompt to the configured provider.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	switch c.provider {
	case "gemini", "gemini-api":
		return c.completeGemini(ctx, prompt)
	default:
		return c.completeOpenAI(ctx, prompt)
	}
}

func (c *Client) completeGemini(ctx context.Context, prompt string) (string, error) {
	if c.geminiClient == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	content := genai.NewContentFromText(prompt, genai.RoleUser)
	var cfg *genai.GenerateContentConfig
	if c.temperature > 0 {
		cfg = &genai.GenerateContentConfig{Temperature: genai.Ptr(float32(c.temperature))}
	}
	resp, err := c.geminiClient.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.WriteString(part.Text)
		}
	}
	return result.String(), nil
}

func (c *Client) completeOpenAI(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	request := openAIRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	}
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpClient := &http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
