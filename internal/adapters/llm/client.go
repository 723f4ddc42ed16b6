// Package llm adapts an OpenAI-compatible chat-completions endpoint into the
// planner's two generative ports: free-text order extraction and route
// optimization. Responses are parsed leniently; models wrap JSON in prose
// and code fences more often than not.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"dispatch-route-planner/internal/platform/obs"
)

// Client talks to one chat-completions endpoint with a fixed model.
// It implements both ports.OrderExtractor and ports.RouteOptimizer.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("llm api key is empty")
	}
	if baseURL == "" {
		return nil, errors.New("llm base url is empty")
	}
	if model == "" {
		return nil, errors.New("llm model is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chat issues one completion call and returns the raw assistant text.
func (c *Client) chat(ctx context.Context, system, user string) (_ string, err error) {
	defer obs.Time(ctx, "llm.chat")(&err)

	endpoint := c.baseURL + "/chat/completions"

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(decoded.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// extractJSON pulls the first JSON object or array out of model output,
// tolerating surrounding prose and markdown fences.
func extractJSON(text string, re *regexp.Regexp) (string, error) {
	m := re.FindString(text)
	if m == "" {
		return "", errors.New("no JSON found in model output")
	}
	return m, nil
}
