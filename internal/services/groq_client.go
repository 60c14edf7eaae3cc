package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GroqClient talks to an OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiURL  string
	apiKey  string
	model   string
	timeout time.Duration
}

func NewGroqClient(apiURL, apiKey, model string, timeout time.Duration) *GroqClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqClient{apiURL: apiURL, apiKey: apiKey, model: model, timeout: timeout}
}

// IsConfigured reports whether an API key is present.
func (c *GroqClient) IsConfigured() bool {
	return c.apiKey != ""
}

type chatCompletionRequest struct {
	Model     string                  `json:"model"`
	Messages  []chatCompletionMessage `json:"messages"`
	MaxTokens int                     `json:"max_tokens,omitempty"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user prompt pair and returns the completion text.
// Failures are wrapped in ErrUpstream; there is no retry.
func (c *GroqClient) Complete(system, user string, maxTokens int) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("%w: no API key configured", ErrUpstream)
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.Join(ErrUpstream, errors.New("no usable content in response"))
	}

	return completion.Choices[0].Message.Content, nil
}
