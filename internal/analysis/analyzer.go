// Package analysis sequences one financial-analysis attempt: input check,
// format normalization, request assembly, a single generation call, and
// response validation. The generator is an injected dependency; every other
// step is a pure data transformation.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/generator"
	"github.com/chaiyareokput-tech/Finsi/internal/normalize"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

// Analyzer is the single entry point for analyzing one artifact.
type Analyzer struct {
	normalizer *normalize.Normalizer
	builder    *generator.Builder
	gen        port.Generator
	maxItems   int
}

// New creates an Analyzer with explicit dependencies.
func New(n *normalize.Normalizer, b *generator.Builder, gen port.Generator, maxItems int) *Analyzer {
	return &Analyzer{normalizer: n, builder: b, gen: gen, maxItems: maxItems}
}

// Analyze runs the full pipeline for one artifact and returns the validated
// result or a typed failure. Exactly one outbound call is made; a failure at
// any stage terminates the attempt with no retry.
func (a *Analyzer) Analyze(ctx context.Context, artifact domain.Artifact) (*domain.AnalysisResult, error) {
	if !artifact.HasContent() {
		return nil, domain.ErrInputMissing
	}

	parts, err := a.normalizer.Normalize(artifact)
	if err != nil {
		return nil, err
	}

	req, err := a.builder.Build(parts)
	if err != nil {
		return nil, err
	}

	resp, err := a.gen.Generate(ctx, req)
	if err != nil {
		return nil, wrapTransportError(err)
	}

	result, err := CleanResult(resp, a.maxItems)
	if err != nil {
		log.Printf("analysis: response rejected (model %s, finish reason %q): %v",
			resp.ModelUsed, resp.FinishReason, err)
		return nil, err
	}
	return result, nil
}

// wrapTransportError tags a failed call as a transport failure. Rate limits
// pass through untouched so the surface can map them to 429. When the
// provider message looks like a size or position related parse complaint,
// the surfaced message also suggests shrinking the payload, since oversized
// requests are the usual culprit.
func wrapTransportError(err error) error {
	var rle *generator.RateLimitError
	if errors.As(err, &rle) {
		return err
	}
	if looksLikeSizeIssue(err.Error()) {
		return fmt.Errorf("%w: %v (try reducing the size of the uploaded data)", domain.ErrTransportFailure, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
}

func looksLikeSizeIssue(msg string) bool {
	m := strings.ToLower(msg)
	for _, needle := range []string{"too large", "payload size", "exceeds the maximum", "unexpected token", "at position"} {
		if strings.Contains(m, needle) {
			return true
		}
	}
	return false
}
