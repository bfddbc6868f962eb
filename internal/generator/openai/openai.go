package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/generator"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

func init() {
	generator.RegisterProvider("openai", func(cfg *config.GeneratorConfig) (port.Generator, error) {
		return NewClient(cfg), nil
	})
}

// Client implements port.Generator on the OpenAI chat completions API.
// Text and image parts are supported; inline PDFs are not accepted by this
// provider and are rejected up front.
type Client struct {
	client *goopenai.Client
	model  string
}

// NewClient creates an OpenAI-backed generator.
func NewClient(cfg *config.GeneratorConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithBaseURL creates a client pointing at a custom API base URL (for testing).
func NewClientWithBaseURL(cfg *config.GeneratorConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.GeneratorConfig, baseURL string) *Client {
	model := cfg.Model
	if model == "" {
		model = goopenai.GPT4o
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &Client{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (c *Client) Generate(ctx context.Context, req *port.Request) (*port.Response, error) {
	if len(req.Parts) == 0 {
		return nil, domain.ErrInputMissing
	}

	// The first part is always the instruction prompt; it becomes the system
	// message. Everything else rides in one multi-content user message.
	system := req.Parts[0].Text
	var content []goopenai.ChatMessagePart
	for _, p := range req.Parts[1:] {
		if p.Inline == nil {
			content = append(content, goopenai.ChatMessagePart{
				Type: goopenai.ChatMessagePartTypeText,
				Text: p.Text,
			})
			continue
		}
		if !strings.HasPrefix(p.Inline.MIMEType, "image/") {
			return nil, fmt.Errorf("%w: the openai provider accepts text and images only (got %s); use the gemini provider for PDFs",
				domain.ErrUnsupportedFormat, p.Inline.MIMEType)
		}
		content = append(content, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeImageURL,
			ImageURL: &goopenai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", p.Inline.MIMEType, p.Inline.Data),
			},
		})
	}

	chatReq := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: float32(req.Temperature),
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, MultiContent: content},
		},
	}
	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") ||
		strings.HasPrefix(c.model, "o4") || strings.HasPrefix(c.model, "gpt-5") {
		chatReq.MaxCompletionTokens = req.MaxOutputTokens
	} else {
		chatReq.MaxTokens = req.MaxOutputTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return nil, generator.NewRateLimitError("openai", err, 0)
		}
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return &port.Response{ModelUsed: c.model}, nil
	}

	choice := resp.Choices[0]
	out := &port.Response{
		Text:         choice.Message.Content,
		FinishReason: normalizeFinishReason(choice.FinishReason),
		ModelUsed:    c.model,
	}
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		out.BlockReason = string(choice.FinishReason)
	}
	return out, nil
}

// normalizeFinishReason maps OpenAI finish reasons onto the shared signal
// vocabulary used by the validator.
func normalizeFinishReason(r goopenai.FinishReason) string {
	switch r {
	case goopenai.FinishReasonStop:
		return "STOP"
	case goopenai.FinishReasonLength:
		return "MAX_TOKENS"
	case goopenai.FinishReasonContentFilter:
		return "SAFETY"
	default:
		return string(r)
	}
}
