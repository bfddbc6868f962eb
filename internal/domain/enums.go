package domain

// ArtifactKind classifies an uploaded file into one of the formats the
// normalizer knows how to handle.
type ArtifactKind string

const (
	KindPDF         ArtifactKind = "pdf"
	KindImage       ArtifactKind = "image"
	KindSpreadsheet ArtifactKind = "spreadsheet"
	KindText        ArtifactKind = "text"
	KindUnknown     ArtifactKind = "unknown"
)

// ImageExtensions maps image file extensions (without dot) to their MIME type.
var ImageExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"heic": "image/heic",
}

// KindByExtension maps file extensions (without dot) to an ArtifactKind.
var KindByExtension = map[string]ArtifactKind{
	"pdf":  KindPDF,
	"jpg":  KindImage,
	"jpeg": KindImage,
	"png":  KindImage,
	"webp": KindImage,
	"heic": KindImage,
	"xlsx": KindSpreadsheet,
	"xls":  KindSpreadsheet,
	"csv":  KindText,
	"txt":  KindText,
}

// LiquidityStatus is the model's verdict on overall liquidity health.
type LiquidityStatus string

const (
	LiquidityHealthy  LiquidityStatus = "Healthy"
	LiquidityCaution  LiquidityStatus = "Caution"
	LiquidityCritical LiquidityStatus = "Critical"
)

// ItemType classifies a financial line item by account type.
type ItemType string

const (
	ItemRevenue   ItemType = "revenue"
	ItemExpense   ItemType = "expense"
	ItemAsset     ItemType = "asset"
	ItemLiability ItemType = "liability"
)

// RatioEvaluation grades a key financial ratio.
type RatioEvaluation string

const (
	EvaluationGood RatioEvaluation = "Good"
	EvaluationFair RatioEvaluation = "Fair"
	EvaluationPoor RatioEvaluation = "Poor"
)

// TrendImpact is the expected direction of a forecast trend.
type TrendImpact string

const (
	ImpactPositive TrendImpact = "Positive"
	ImpactNegative TrendImpact = "Negative"
	ImpactNeutral  TrendImpact = "Neutral"
)

// RiskLevel grades the risk attached to a financial line item.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

var validLiquidityStatuses = map[LiquidityStatus]bool{
	LiquidityHealthy:  true,
	LiquidityCaution:  true,
	LiquidityCritical: true,
}

var validItemTypes = map[ItemType]bool{
	ItemRevenue:   true,
	ItemExpense:   true,
	ItemAsset:     true,
	ItemLiability: true,
}

var validEvaluations = map[RatioEvaluation]bool{
	EvaluationGood: true,
	EvaluationFair: true,
	EvaluationPoor: true,
}

var validImpacts = map[TrendImpact]bool{
	ImpactPositive: true,
	ImpactNegative: true,
	ImpactNeutral:  true,
}

var validRiskLevels = map[RiskLevel]bool{
	RiskHigh:   true,
	RiskMedium: true,
	RiskLow:    true,
}

// Valid reports whether the value belongs to the declared closed set.
func (s LiquidityStatus) Valid() bool { return validLiquidityStatuses[s] }

// Valid reports whether the value belongs to the declared closed set.
func (t ItemType) Valid() bool { return validItemTypes[t] }

// Valid reports whether the value belongs to the declared closed set.
func (e RatioEvaluation) Valid() bool { return validEvaluations[e] }

// Valid reports whether the value belongs to the declared closed set.
func (i TrendImpact) Valid() bool { return validImpacts[i] }

// Valid reports whether the value belongs to the declared closed set.
func (r RiskLevel) Valid() bool { return validRiskLevels[r] }

// SessionStatus represents the lifecycle of one analysis attempt as seen by
// the upload surface.
type SessionStatus string

const (
	SessionIdle      SessionStatus = "idle"
	SessionUploading SessionStatus = "uploading"
	SessionSuccess   SessionStatus = "success"
	SessionError     SessionStatus = "error"
)
