package generator

import (
	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

// Builder assembles the final generation request for one analysis attempt:
// the fixed instruction prompt first, then the normalized artifact parts,
// with the response contract and sampling parameters attached.
type Builder struct {
	prompt          string
	schema          []byte
	temperature     float64
	maxOutputTokens int
}

// NewBuilder creates a Builder. The instruction prompt and response schema
// are rendered once and reused for every request.
func NewBuilder(cfg *config.GeneratorConfig) (*Builder, error) {
	prompt, err := RenderPrompt(PromptParams{
		MaxItems: cfg.MaxLineItems,
		Language: cfg.Language,
	})
	if err != nil {
		return nil, err
	}
	return &Builder{
		prompt:          prompt,
		schema:          ResponseSchema(cfg.MaxLineItems),
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// Build prepends the instruction prompt to the normalized parts and attaches
// the generation parameters. It refuses to build an empty request.
func (b *Builder) Build(parts []port.Part) (*port.Request, error) {
	if len(parts) == 0 {
		return nil, domain.ErrInputMissing
	}
	all := make([]port.Part, 0, len(parts)+1)
	all = append(all, port.TextPart(b.prompt))
	all = append(all, parts...)
	return &port.Request{
		Parts:           all,
		Schema:          b.schema,
		Temperature:     b.temperature,
		MaxOutputTokens: b.maxOutputTokens,
	}, nil
}
