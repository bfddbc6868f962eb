package domain

// FileBlob is an uploaded file held in memory for the duration of one
// analysis attempt.
type FileBlob struct {
	Name        string
	ContentType string
	Size        int64
	Bytes       []byte
}

// Artifact is the user-supplied input for one analysis attempt: an uploaded
// file, pasted text, or both. It is never persisted.
type Artifact struct {
	File *FileBlob
	Text string
}

// HasContent reports whether the artifact carries anything to analyze.
func (a Artifact) HasContent() bool {
	return (a.File != nil && len(a.File.Bytes) > 0) || a.Text != ""
}

// LiquidityAnalysis is the model's assessment of short-term solvency.
type LiquidityAnalysis struct {
	CurrentRatio float64         `json:"currentRatio"`
	QuickRatio   float64         `json:"quickRatio"`
	Status       LiquidityStatus `json:"status"`
	StatusLabel  string          `json:"statusLabel"`
	Description  string          `json:"description"`
}

// FinancialItem is one line item from the statement, attributed to an
// organizational unit and classified by account type.
type FinancialItem struct {
	Name             string    `json:"name"`
	Amount           float64   `json:"amount"`
	PreviousAmount   *float64  `json:"previousAmount,omitempty"`
	PercentageChange *float64  `json:"percentageChange,omitempty"`
	Type             ItemType  `json:"type"`
	Unit             string    `json:"unit"`
	Insight          string    `json:"insight"`
	RiskLevel        RiskLevel `json:"riskLevel,omitempty"`
}

// KeyRatio is one computed financial ratio with a qualitative grade.
// Value is a string so the model can return formatted figures ("1.8x", "35%").
type KeyRatio struct {
	Name        string          `json:"name"`
	Value       string          `json:"value"`
	Unit        string          `json:"unit,omitempty"`
	Evaluation  RatioEvaluation `json:"evaluation"`
	Description string          `json:"description"`
}

// FutureTrend is one forward-looking statement derived from the data.
type FutureTrend struct {
	Topic      string      `json:"topic"`
	Prediction string      `json:"prediction"`
	Impact     TrendImpact `json:"impact"`
}

// AnalysisResult is the validated structured output of one analysis attempt.
// Field names and enumerated value domains follow the response contract sent
// to the model; nothing outside that contract is accepted.
type AnalysisResult struct {
	Liquidity       LiquidityAnalysis `json:"liquidity"`
	FinancialItems  []FinancialItem   `json:"financialItems"`
	KeyRatios       []KeyRatio        `json:"keyRatios"`
	FutureTrends    []FutureTrend     `json:"futureTrends"`
	Summary         string            `json:"summary"`
	DetailedReport  string            `json:"detailedReport"`
	Recommendations []string          `json:"recommendations"`
}
