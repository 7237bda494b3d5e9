package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = `You are an assistant that suggests replacement equipment based on historical borrowing patterns.
Consider the user's role and the borrowing history to suggest the most appropriate replacement equipment and explain your reasoning.
Respond with a JSON object with the fields "suggestedEquipment" (a list of equipment names) and "reasoning".`

// Client talks to an OpenAI compatible chat completions endpoint.
type Client struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
}

func NewClient(url, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Suggest(ctx context.Context, req Request) (*Suggestion, error) {
	s, err := c.suggest(ctx, req)
	if err != nil {
		return nil, &ExternalServiceError{Err: err}
	}
	return s, nil
}

func (c *Client) suggest(ctx context.Context, req Request) (*Suggestion, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(req)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(out.Choices[0].Message.Content), &s); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	return &s, nil
}

func userPrompt(req Request) string {
	return "Broken Equipment Name: " + req.BrokenEquipmentName + "\n" +
		"User Role: " + req.UserRole + "\n" +
		"Historical Borrowing Data: " + req.HistoricalBorrowing
}
