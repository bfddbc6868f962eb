package port

import (
	"context"
	"encoding/json"
)

// InlineData is an opaque binary payload handed to the model as-is.
type InlineData struct {
	MIMEType string
	// Data is the standard base64 encoding of the raw bytes.
	Data string
}

// Part is one unit of a multi-part generation request. Exactly one of Text
// or Inline is set.
type Part struct {
	Text   string
	Inline *InlineData
}

// TextPart builds a text part.
func TextPart(text string) Part { return Part{Text: text} }

// InlinePart builds an inline binary part.
func InlinePart(mimeType, base64Data string) Part {
	return Part{Inline: &InlineData{MIMEType: mimeType, Data: base64Data}}
}

// Request is one fully assembled generation call: the ordered content parts,
// the response-shape contract, and the sampling parameters.
type Request struct {
	Parts []Part
	// Schema is the response contract in the provider's schema dialect.
	Schema          json.RawMessage
	Temperature     float64
	MaxOutputTokens int
}

// Response is the raw outcome of a generation call before validation.
// Text may be empty; FinishReason and BlockReason carry the provider's
// completion and safety signals, normalized to the STOP / MAX_TOKENS /
// SAFETY vocabulary.
type Response struct {
	Text         string
	FinishReason string
	BlockReason  string
	ModelUsed    string
}

// Generator abstracts one schema-constrained LLM generation call.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}
