package types

// ClaimLabel is the outcome of an emergency claim classification
type ClaimLabel string

const (
	ClaimGenuine    ClaimLabel = "genuine"
	ClaimSuspicious ClaimLabel = "suspicious"
	ClaimFalse      ClaimLabel = "false"
)

// ClaimClassification is the result of classifying an emergency claim
type ClaimClassification struct {
	Classification    ClaimLabel `json:"classification"`
	Confidence        float64    `json:"confidence"` // in [0, 1]
	Reasoning         string     `json:"reasoning"`
	RequiresReview    bool       `json:"requires_admin_review"`
	SuggestedPriority string     `json:"suggested_priority"` // EMERGENCY or NORMAL
	MatchedCategories []string   `json:"matched_categories"` // only populated when genuine
}

// AgeVerification is the result of verifying senior citizen status
// from a date of birth
type AgeVerification struct {
	IsSenior         bool    `json:"is_senior"`
	ActualAge        *int    `json:"actual_age"` // nil when the date was unparsable
	Confidence       float64 `json:"confidence"`
	RequiresDocument bool    `json:"requires_document"`
	Reasoning        string  `json:"reasoning"`
}
