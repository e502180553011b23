package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"negscreen/internal/model"
)

// OpenAIClient implements Client against the OpenAI chat completions
// API (or any compatible endpoint via BaseURL).
type OpenAIClient struct {
	client  *openai.Client
	cfg     model.LLMConfig
	timeout time.Duration
}

// NewOpenAIClient builds a live client from configuration.
func NewOpenAIClient(cfg model.LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("completion API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		cfg:     cfg,
		timeout: timeout,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Complete sends one chat completion request and returns the text of
// the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	mdl := req.Model
	if mdl == "" {
		mdl = c.cfg.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	messages := req.Messages
	chatReq := openai.ChatCompletionRequest{
		Model:       mdl,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}

	if req.JSONResponse {
		if SupportsJSONResponse(mdl) {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		} else {
			messages = instructJSON(messages)
		}
	}

	for _, m := range messages {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
