package generator

import (
	"fmt"
	"strings"

	"github.com/tyler-sommer/stick"
)

// analystPromptTemplate is the fixed instruction block sent as the first part
// of every request. It fixes the analyst persona, the categorization rules,
// the line-item cap and the output language; the response shape itself is
// enforced separately by the schema attached to the call.
const analystPromptTemplate = `You are a senior financial analyst AI.

Mission:
1. Analyze the financial data provided (image, PDF, Excel and CSV inputs are all supported).
2. Unit separation: attribute every line item to its organizational unit, for example {{ unit_examples }}. Use 'Overall' when the owning unit is not clearly stated.
3. Account classification: classify each line item correctly as revenue, expense, asset or liability.
4. Significant variance analysis: compute the year-over-year percentage change where a prior-year figure exists, explain in the insight why the item matters, and grade its risk level as High, Medium or Low.
5. Assess liquidity (current ratio, quick ratio) and the key financial ratios.
6. Forecast future trends.

Report only the top {{ max_items }} line items ranked by significance. Never return more than {{ max_items }} items.
Output: raw JSON following the response schema. No markdown formatting, no code fences, no commentary.
Language: {{ language }} (formal register, correct accounting terminology).`

// unitExamples are the organizational-unit labels the source statements use.
var unitExamples = []string{"'Electricity'", "'BusA'", "'BA'", "'Central'", "'Overall'"}

// PromptParams parameterize the instruction prompt.
type PromptParams struct {
	MaxItems int
	Language string
}

// RenderPrompt renders the analyst instruction prompt.
func RenderPrompt(params PromptParams) (string, error) {
	env := stick.New(nil)
	ctx := map[string]stick.Value{
		"max_items":     params.MaxItems,
		"language":      params.Language,
		"unit_examples": strings.Join(unitExamples, ", "),
	}
	var out strings.Builder
	if err := env.Execute(analystPromptTemplate, &out, ctx); err != nil {
		return "", fmt.Errorf("rendering analyst prompt: %w", err)
	}
	return out.String(), nil
}
