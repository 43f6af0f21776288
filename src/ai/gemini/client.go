package gemini

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

const endpointTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

func init() {
	core.RegisterProvider("gemini", newClient, "google")
}

type client struct {
	apiKey     string
	httpClient *http.Client
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &client{
		apiKey:     cfg.GeminiKey,
		httpClient: webclient.NewDefault(timeout),
	}, nil
}

func (c *client) Generate(ctx context.Context, req core.Request) (string, error) {
	parts := make([]map[string]any, 0, len(req.Parts)+1)
	if req.SystemPrompt != "" {
		parts = append(parts, map[string]any{"text": req.SystemPrompt})
	}
	for _, p := range req.Parts {
		switch {
		case p.InlineData != nil:
			parts = append(parts, map[string]any{
				"inline_data": map[string]any{
					"mime_type": p.InlineData.MIMEType,
					"data":      base64.StdEncoding.EncodeToString(p.InlineData.Data),
				},
			})
		case p.Text != "":
			parts = append(parts, map[string]any{"text": p.Text})
		}
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": parts},
		},
	}
	genCfg := map[string]any{}
	if req.JSONOutput {
		genCfg["response_mime_type"] = "application/json"
	}
	if req.Temperature != 0 {
		genCfg["temperature"] = req.Temperature
	}
	if req.MaxOutputTokens > 0 {
		genCfg["maxOutputTokens"] = req.MaxOutputTokens
	}
	if len(genCfg) > 0 {
		body["generationConfig"] = genCfg
	}

	respBody, err := c.post(ctx, req.Model, body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content in response (%s)", req.Model)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *client) post(ctx context.Context, model string, payload map[string]any) ([]byte, error) {
	bodyBytes, _ := json.Marshal(payload)
	status, body, err := webclient.DoWithRetry(ctx, 2, 2*time.Second, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			fmt.Sprintf(endpointTemplate, model), bytes.NewBuffer(bodyBytes))
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, b, fmt.Errorf("status %d", resp.StatusCode)
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		if len(body) > 0 {
			return nil, fmt.Errorf("gemini API error (%s, status %d): %s", model, status, truncate(body, 300))
		}
		return nil, fmt.Errorf("gemini API error (%s): %w", model, err)
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
