package analysis

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

// CleanResult converts the raw generation response into a validated
// AnalysisResult. There is no partial recovery: either the whole payload
// parses and satisfies the contract, or the attempt fails.
func CleanResult(resp *port.Response, maxItems int) (*domain.AnalysisResult, error) {
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		if resp.BlockReason != "" {
			return nil, fmt.Errorf("%w (block reason: %s)", domain.ErrContentBlocked, resp.BlockReason)
		}
		if resp.FinishReason == "SAFETY" {
			return nil, fmt.Errorf("%w (finish reason: SAFETY)", domain.ErrContentBlocked)
		}
		reason := resp.FinishReason
		if reason == "" {
			reason = "unspecified"
		}
		return nil, fmt.Errorf("%w (finish reason: %s)", domain.ErrEmptyResponse, reason)
	}

	text = stripCodeFence(text)

	var result domain.AnalysisResult
	if err := sonic.Unmarshal([]byte(text), &result); err != nil {
		hint := "the payload may have been cut short by the output token ceiling"
		if resp.FinishReason == "MAX_TOKENS" {
			hint = "the model hit the output token ceiling and the payload was cut short"
		}
		return nil, fmt.Errorf("%w: %v; %s", domain.ErrMalformedResponse, err, hint)
	}

	if err := validateResult(&result, maxItems); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return &result, nil
}

// stripCodeFence removes a surrounding markdown code fence. The contract
// forbids fences, but models wrap JSON in them often enough that tolerating
// the wrapper is cheaper than failing the attempt.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	trimmed := text
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:] // drop the ``` or ```json line
	} else {
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// validateResult enforces the response contract: required fields present,
// enumerated values inside their closed sets, and the line-item cardinality
// cap respected. Values outside a declared set are rejected outright rather
// than passed through.
func validateResult(r *domain.AnalysisResult, maxItems int) error {
	if !r.Liquidity.Status.Valid() {
		return fmt.Errorf("liquidity.status %q is not one of Healthy, Caution, Critical", r.Liquidity.Status)
	}
	if r.Liquidity.StatusLabel == "" {
		return fmt.Errorf("liquidity.statusLabel is required")
	}
	if r.Liquidity.Description == "" {
		return fmt.Errorf("liquidity.description is required")
	}
	if r.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if r.DetailedReport == "" {
		return fmt.Errorf("detailedReport is required")
	}

	// The list fields are required keys: an absent key decodes to a nil
	// slice, while a present-but-empty list decodes to an empty one.
	if r.FinancialItems == nil {
		return fmt.Errorf("financialItems is required")
	}
	if r.KeyRatios == nil {
		return fmt.Errorf("keyRatios is required")
	}
	if r.FutureTrends == nil {
		return fmt.Errorf("futureTrends is required")
	}
	if r.Recommendations == nil {
		return fmt.Errorf("recommendations is required")
	}

	if len(r.FinancialItems) > maxItems {
		return fmt.Errorf("financialItems has %d entries, contract allows at most %d", len(r.FinancialItems), maxItems)
	}
	for i, item := range r.FinancialItems {
		if item.Name == "" || item.Unit == "" || item.Insight == "" {
			return fmt.Errorf("financialItems[%d] is missing a required field", i)
		}
		if !item.Type.Valid() {
			return fmt.Errorf("financialItems[%d].type %q is not one of revenue, expense, asset, liability", i, item.Type)
		}
		if item.RiskLevel != "" && !item.RiskLevel.Valid() {
			return fmt.Errorf("financialItems[%d].riskLevel %q is not one of High, Medium, Low", i, item.RiskLevel)
		}
	}

	for i, ratio := range r.KeyRatios {
		if ratio.Name == "" || ratio.Value == "" || ratio.Description == "" {
			return fmt.Errorf("keyRatios[%d] is missing a required field", i)
		}
		if !ratio.Evaluation.Valid() {
			return fmt.Errorf("keyRatios[%d].evaluation %q is not one of Good, Fair, Poor", i, ratio.Evaluation)
		}
	}

	for i, trend := range r.FutureTrends {
		if trend.Topic == "" || trend.Prediction == "" {
			return fmt.Errorf("futureTrends[%d] is missing a required field", i)
		}
		if !trend.Impact.Valid() {
			return fmt.Errorf("futureTrends[%d].impact %q is not one of Positive, Negative, Neutral", i, trend.Impact)
		}
	}

	return nil
}
