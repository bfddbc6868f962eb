package generator

import (
	"encoding/json"
	"fmt"
)

// responseSchemaTemplate is the response contract in Gemini's schema dialect.
// It is defined once and shared by every request; the single %d is the
// line-item cap. The cap exists to bound response size: uncapped statements
// routinely blow past the output token ceiling and come back truncated.
const responseSchemaTemplate = `{
  "type": "OBJECT",
  "properties": {
    "liquidity": {
      "type": "OBJECT",
      "properties": {
        "currentRatio": {"type": "NUMBER"},
        "quickRatio": {"type": "NUMBER"},
        "status": {"type": "STRING", "enum": ["Healthy", "Caution", "Critical"]},
        "statusLabel": {"type": "STRING"},
        "description": {"type": "STRING"}
      },
      "required": ["currentRatio", "status", "statusLabel", "description"]
    },
    "financialItems": {
      "type": "ARRAY",
      "description": "Every line item as it appears in the statement, ranked by significance",
      "maxItems": %d,
      "items": {
        "type": "OBJECT",
        "properties": {
          "name": {"type": "STRING"},
          "amount": {"type": "NUMBER"},
          "previousAmount": {"type": "NUMBER", "description": "Prior-year amount, when present"},
          "percentageChange": {"type": "NUMBER", "description": "Year-over-year change in percent, when computable"},
          "type": {"type": "STRING", "enum": ["revenue", "expense", "asset", "liability"]},
          "unit": {"type": "STRING", "description": "Organizational unit owning this amount, e.g. 'Electricity', 'BusA', 'BA', 'Central' or 'Overall'"},
          "insight": {"type": "STRING", "description": "Short note on the cause or significance of this item"},
          "riskLevel": {"type": "STRING", "enum": ["High", "Medium", "Low"]}
        },
        "required": ["name", "amount", "type", "unit", "insight"]
      }
    },
    "keyRatios": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "name": {"type": "STRING"},
          "value": {"type": "STRING"},
          "unit": {"type": "STRING"},
          "evaluation": {"type": "STRING", "enum": ["Good", "Fair", "Poor"]},
          "description": {"type": "STRING"}
        },
        "required": ["name", "value", "evaluation", "description"]
      }
    },
    "futureTrends": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "topic": {"type": "STRING"},
          "prediction": {"type": "STRING"},
          "impact": {"type": "STRING", "enum": ["Positive", "Negative", "Neutral"]}
        },
        "required": ["topic", "prediction", "impact"]
      }
    },
    "summary": {"type": "STRING"},
    "detailedReport": {"type": "STRING", "description": "Long-form narrative analysis in markdown, focused on unusual increases and decreases"},
    "recommendations": {
      "type": "ARRAY",
      "items": {"type": "STRING"}
    }
  },
  "required": ["liquidity", "financialItems", "keyRatios", "futureTrends", "summary", "detailedReport", "recommendations"]
}`

// ResponseSchema returns the response contract with the given line-item cap.
func ResponseSchema(maxItems int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(responseSchemaTemplate, maxItems))
}
