package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const apiURL = "https://api.cohere.com/v1/generate"

// Client calls the Cohere Generate API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Cohere client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("AI_API_KEY is required for Cohere")
	}
	if strings.TrimSpace(model) == "" {
		model = "command"
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("AI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

type generateResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
	Message string `json:"message,omitempty"`
}

// Complete returns the raw model output for the prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   320,
		Temperature: 0.3,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("cohere request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("cohere http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return "", fmt.Errorf("cohere response parse: %w", err)
	}
	if resp.StatusCode >= 400 {
		msg := parsed.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("cohere http status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Generations) == 0 {
		return "", fmt.Errorf("cohere response missing generations")
	}

	return parsed.Generations[0].Text, nil
}
