package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/generator"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

func init() {
	generator.RegisterProvider("gemini", func(cfg *config.GeneratorConfig) (port.Generator, error) {
		return NewClient(cfg), nil
	})
}

// Client implements port.Generator against Google's Gemini API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini-backed generator.
func NewClient(cfg *config.GeneratorConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GeneratorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.GeneratorConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// harmCategories are dialed to BLOCK_NONE: financial statements legitimately
// contain terms (liabilities, risk, losses) that trip overcautious filters.
var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

func (c *Client) Generate(ctx context.Context, req *port.Request) (*port.Response, error) {
	parts := make([]map[string]interface{}, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Inline != nil {
			parts = append(parts, map[string]interface{}{
				"inline_data": map[string]interface{}{
					"mime_type": p.Inline.MIMEType,
					"data":      p.Inline.Data,
				},
			})
			continue
		}
		parts = append(parts, map[string]interface{}{"text": p.Text})
	}

	safetySettings := make([]map[string]interface{}, 0, len(harmCategories))
	for _, cat := range harmCategories {
		safetySettings = append(safetySettings, map[string]interface{}{
			"category":  cat,
			"threshold": "BLOCK_NONE",
		})
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema":   json.RawMessage(req.Schema),
			"temperature":      req.Temperature,
			"maxOutputTokens":  req.MaxOutputTokens,
		},
		"safetySettings": safetySettings,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := generator.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, generator.NewRateLimitError("gemini", fmt.Errorf("status 429: %s", truncate(string(respBody), 200)), retryAfter)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody, c.model)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// parseResponse extracts the candidate text and the completion signals. A
// missing candidate or empty text is not an error at this layer: the
// validator decides how to surface it based on the signals.
func parseResponse(body []byte, model string) (*port.Response, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	out := &port.Response{
		ModelUsed:   model,
		BlockReason: resp.PromptFeedback.BlockReason,
	}
	if len(resp.Candidates) == 0 {
		return out, nil
	}

	cand := resp.Candidates[0]
	out.FinishReason = cand.FinishReason

	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}
	out.Text = text.String()
	return out, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
