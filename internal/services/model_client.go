package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelClient sends one prompt to a language model and returns its reply.
type ModelClient interface {
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

type MessageRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type MessageResponse struct {
	Text       string
	StopReason string
}

// Refused reports whether the model declined to answer on safety grounds
// or returned no content at all.
func (r *MessageResponse) Refused() bool {
	return r.StopReason == "refusal" || r.Text == ""
}

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-sonnet-4-5-20250929"
)

// AnthropicClient calls Anthropic's messages REST API.
type AnthropicClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		client:  &http.Client{Timeout: 120 * time.Second},
		baseURL: anthropicBaseURL,
		apiKey:  apiKey,
		model:   anthropicModel,
	}
}

// NewAnthropicClientWithBaseURL exists for tests against a local server.
func NewAnthropicClientWithBaseURL(apiKey, baseURL string) *AnthropicClient {
	c := NewAnthropicClient(apiKey)
	c.baseURL = baseURL
	return c
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	payload := anthropicRequest{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded anthropicResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return nil, fmt.Errorf("model provider returned status %d: %s", resp.StatusCode, decoded.Error.Message)
		}
		return nil, fmt.Errorf("model provider returned status %d", resp.StatusCode)
	}

	out := &MessageResponse{StopReason: decoded.StopReason}
	if len(decoded.Content) > 0 {
		out.Text = decoded.Content[0].Text
	}
	return out, nil
}
