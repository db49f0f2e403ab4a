package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/amishk599/oppsim/internal/model"
)

// Ensure OpenAIProvider implements LLMProvider.
var _ LLMProvider = (*OpenAIProvider)(nil)

// OpenAIProvider calls an OpenAI-compatible /chat/completions endpoint.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIProvider creates a provider targeting baseURL (e.g. https://api.openai.com/v1).
// An empty apiKey is sent as-is; the provider rejects it and the call fails as FailureAuth.
func NewOpenAIProvider(baseURL, apiKey, model string, temperature float64, httpClient *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	// Workaround: go-openai tags Temperature with omitempty, so 0 would be
	// dropped and the API would apply its default of 1. The smallest float32
	// (1e-45 on the wire) is effectively 0.
	temp := float32(temperature)
	if temp == 0 {
		temp = math.SmallestNonzeroFloat32
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temp,
	}
}

// Complete sends a single chat completion request and returns the content of
// the first choice. Exactly one HTTP request is made.
func (p *OpenAIProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: p.temperature,
		User:        req.User,
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &model.CompareError{Kind: model.FailureEmptyReply, Err: errors.New("llm returned no choices")}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &model.CompareError{Kind: model.FailureEmptyReply, Err: errors.New("llm returned empty content")}
	}
	return content, nil
}

// classifyError maps a go-openai client error onto a FailureKind.
func classifyError(err error) *model.CompareError {
	wrapped := fmt.Errorf("llm request: %w", err)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &model.CompareError{Kind: model.FailureCanceled, Err: wrapped}
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &model.CompareError{Kind: model.FailureAuth, StatusCode: status, Err: wrapped}
	case status != 0:
		return &model.CompareError{Kind: model.FailureAPI, StatusCode: status, Err: wrapped}
	default:
		return &model.CompareError{Kind: model.FailureTransport, Err: wrapped}
	}
}
