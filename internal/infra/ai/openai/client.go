package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/marineiq/internal/domain/assistant"
	"github.com/bryanwahyu/marineiq/internal/infra/ai/prompt"
)

const (
	maxTokens    = 1024
	DefaultModel = "gpt-4o-mini"
)

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// NewClientWithBaseURL points the client at an OpenAI-compatible endpoint.
func NewClientWithBaseURL(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Ask(ctx context.Context, req domain.Request) (domain.Reply, error) {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	chat := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(req.Question)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if reasoningModel(model) {
		chat.MaxCompletionTokens = maxTokens
	} else {
		chat.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, chat)
	if err != nil {
		if quotaError(err) {
			return domain.Reply{}, fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return domain.Reply{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Reply{}, errors.New("chat completion returned no choices")
	}
	return parseReply(resp.Choices[0].Message.Content), nil
}

func reasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func quotaError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	return errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests
}

// parseReply decodes the JSON reply. Models occasionally ignore the format,
// in which case the raw text becomes the answer.
func parseReply(content string) domain.Reply {
	var r domain.Reply
	if err := json.Unmarshal([]byte(content), &r); err != nil || strings.TrimSpace(r.Answer) == "" {
		return domain.Reply{Answer: strings.TrimSpace(content)}
	}
	return r
}
