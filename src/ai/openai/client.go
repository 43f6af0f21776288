package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/truthlenz/truthlenz/src/ai/core"
	"github.com/truthlenz/truthlenz/src/webclient"
)

const endpoint = "https://api.openai.com/v1/chat/completions"

func init() {
	core.RegisterProvider("openai", newClient)
}

type client struct {
	apiKey     string
	httpClient *http.Client
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &client{
		apiKey:     cfg.OpenAIKey,
		httpClient: webclient.NewDefault(timeout),
	}, nil
}

func (c *client) Generate(ctx context.Context, req core.Request) (string, error) {
	content := make([]map[string]any, 0, len(req.Parts))
	for _, p := range req.Parts {
		switch {
		case p.InlineData != nil:
			dataURL := fmt.Sprintf("data:%s;base64,%s",
				p.InlineData.MIMEType, base64.StdEncoding.EncodeToString(p.InlineData.Data))
			content = append(content, map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": dataURL},
			})
		case p.Text != "":
			content = append(content, map[string]any{"type": "text", "text": p.Text})
		}
	}

	messages := []map[string]any{}
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]any{"role": "system", "content": req.SystemPrompt})
	}
	messages = append(messages, map[string]any{"role": "user", "content": content})

	body := map[string]any{
		"model":    req.Model,
		"messages": messages,
	}
	if req.JSONOutput {
		body["response_format"] = map[string]any{"type": "json_object"}
	}
	if req.Temperature != 0 {
		body["temperature"] = req.Temperature
	}
	if req.MaxOutputTokens > 0 {
		body["max_completion_tokens"] = req.MaxOutputTokens
	}

	bodyBytes, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai API error (%s): %w", req.Model, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (%s, status %d): %s", req.Model, resp.StatusCode, respBody)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response (%s)", req.Model)
	}
	return parsed.Choices[0].Message.Content, nil
}
