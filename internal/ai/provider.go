// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ProviderConfig holds the endpoint and generation parameters.
type ProviderConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
	Timeout     time.Duration
}

// OpenAIProvider implements [Provider] over the chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	config ProviderConfig
}

// NewOpenAIProvider builds a provider. An empty BaseURL keeps the library
// default (api.openai.com).
func NewOpenAIProvider(config ProviderConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

/*
Complete sends prompt as a single user message and returns the first choice.

Returns:
  - string: Raw completion text (untrimmed)
  - error: Wrapped [ErrInvalidCredential], [ErrQuotaExceeded],
    [ErrSafetyBlocked] or [ErrTimeout] when recognised, the raw error otherwise
*/
func (provider *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if provider.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, provider.config.Timeout)
		defer cancel()
	}

	response, err := provider.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: provider.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: provider.config.Temperature,
		MaxTokens:   provider.config.MaxTokens,
		TopP:        provider.config.TopP,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("ai: empty completion")
	}

	choice := response.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", ErrSafetyBlocked
	}
	return choice.Message.Content, nil
}

// classify maps transport and API failures onto the package sentinels.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	status, detail := 0, ""
	var apiErr *openai.APIError
	var requestErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		detail = strings.ToUpper(fmt.Sprint(apiErr.Code, " ", apiErr.Type, " ", apiErr.Message))
	case errors.As(err, &requestErr):
		status = requestErr.HTTPStatusCode
		detail = strings.ToUpper(requestErr.Error())
	default:
		return err
	}

	switch {
	case strings.Contains(detail, "API_KEY_INVALID"), strings.Contains(detail, "INVALID_API_KEY"),
		status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	case strings.Contains(detail, "QUOTA"), strings.Contains(detail, "RESOURCE_EXHAUSTED"),
		status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	case strings.Contains(detail, "SAFETY"):
		return fmt.Errorf("%w: %w", ErrSafetyBlocked, err)
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
