package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/generator/openai"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

func newTestClient(serverURL string) *openai.Client {
	cfg := &config.GeneratorConfig{
		Provider: "openai",
		APIKey:   "test-openai-key",
		Model:    "gpt-4o",
	}
	return openai.NewClientWithBaseURL(cfg, serverURL+"/v1")
}

func chatResponse(content, finishReason string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]interface{}{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
	}
}

func TestGenerate_TextAndImageParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		assert.Equal(t, "gpt-4o", reqBody["model"])
		rf := reqBody["response_format"].(map[string]interface{})
		assert.Equal(t, "json_object", rf["type"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)

		system := messages[0].(map[string]interface{})
		assert.Equal(t, "system", system["role"])
		assert.Equal(t, "you are an analyst", system["content"])

		user := messages[1].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		content := user["content"].([]interface{})
		require.Len(t, content, 2)

		textPart := content[0].(map[string]interface{})
		assert.Equal(t, "text", textPart["type"])
		assert.Equal(t, "Revenue,100", textPart["text"])

		imagePart := content[1].(map[string]interface{})
		assert.Equal(t, "image_url", imagePart["type"])
		imageURL := imagePart["image_url"].(map[string]interface{})
		assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", imageURL["url"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse(`{"summary":"ok"}`, "stop"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.Generate(context.Background(), &port.Request{
		Parts: []port.Part{
			port.TextPart("you are an analyst"),
			port.TextPart("Revenue,100"),
			port.InlinePart("image/png", "iVBORw0KGgo="),
		},
		Temperature:     0.2,
		MaxOutputTokens: 4096,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, resp.Text)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Empty(t, resp.BlockReason)
}

func TestGenerate_PDFRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request must be sent for an unsupported part")
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Generate(context.Background(), &port.Request{
		Parts: []port.Part{
			port.TextPart("you are an analyst"),
			port.InlinePart("application/pdf", "JVBERi0xLjQ="),
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "gemini provider for PDFs")
}

func TestGenerate_ContentFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("", "content_filter"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.Generate(context.Background(), &port.Request{
		Parts: []port.Part{port.TextPart("prompt"), port.TextPart("data")},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Equal(t, "SAFETY", resp.FinishReason)
	assert.Equal(t, "content_filter", resp.BlockReason)
}

func TestGenerate_LengthCutoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse(`{"summary":"trunc`, "length"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.Generate(context.Background(), &port.Request{
		Parts: []port.Part{port.TextPart("prompt"), port.TextPart("data")},
	})

	require.NoError(t, err)
	assert.Equal(t, "MAX_TOKENS", resp.FinishReason)
}
