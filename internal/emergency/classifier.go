package emergency

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/queuewise/mlservice/internal/types"
)

// genuineKeywords maps emergency categories to their indicator keywords
var genuineKeywords = map[string][]string{
	"medical": {"heart", "stroke", "bleeding", "unconscious", "accident", "injury",
		"pain", "ambulance", "hospital", "surgery", "critical", "urgent", "emergency",
		"fever", "breathing", "chest pain"},
	"legal": {"court", "hearing", "deadline", "arrest", "bail", "warrant",
		"summons", "legal notice"},
	"travel":    {"flight", "train", "departure", "leave", "travel", "visa", "passport"},
	"death":     {"death", "funeral", "deceased", "passed away", "cremation", "burial"},
	"pregnancy": {"pregnant", "delivery", "labor", "maternity", "childbirth"},
}

// falseIndicators are convenience phrases that mark a claim as non-urgent
var falseIndicators = []string{
	"just need", "want to", "prefer", "would like", "hoping for",
	"quick", "fast", "soon", "today only", "busy schedule",
}

// suspiciousPatterns signal generic urgency without specifics
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`urgent.*today`),
	regexp.MustCompile(`very.*urgent`),
	regexp.MustCompile(`please.*fast`),
	regexp.MustCompile(`need.*now`),
	regexp.MustCompile(`important.*work`),
}

// Classifier labels emergency claims. RuleClassifier is the current
// implementation; a trained text model can replace it behind the same contract.
type Classifier interface {
	Classify(reason, emergencyType string) types.ClaimClassification
}

// RuleClassifier scores free-text emergency justifications against
// keyword and phrase tables. Stateless.
type RuleClassifier struct{}

// NewRuleClassifier creates a rule-based emergency claim classifier
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify labels an emergency claim as genuine, suspicious or false.
// Never fails on malformed text; missing or short text is a definitive false.
func (c *RuleClassifier) Classify(reason, emergencyType string) types.ClaimClassification {
	if len(strings.TrimSpace(reason)) < 10 {
		return types.ClaimClassification{
			Classification:    types.ClaimFalse,
			Confidence:        0.95,
			Reasoning:         "Emergency reason too short or missing. Genuine emergencies require detailed explanation.",
			RequiresReview:    false,
			SuggestedPriority: "NORMAL",
			MatchedCategories: []string{},
		}
	}

	lower := strings.ToLower(reason)

	var genuineScore float64
	var matched []string
	for category, keywords := range genuineKeywords {
		count := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > 0 {
			genuineScore += float64(count) * 0.2
			matched = append(matched, category)
		}
	}
	sort.Strings(matched)

	var falseScore float64
	for _, phrase := range falseIndicators {
		if strings.Contains(lower, phrase) {
			falseScore += 0.15
		}
	}

	var suspiciousScore float64
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(lower) {
			suspiciousScore += 0.1
		}
	}

	wordCount := len(strings.Fields(reason))
	if wordCount < 15 {
		falseScore += 0.2
	} else if wordCount > 30 {
		genuineScore += 0.1
	}

	genuineScore = clamp01(genuineScore)
	falseScore = clamp01(falseScore)
	suspiciousScore = clamp01(suspiciousScore)

	switch {
	case genuineScore > 0.6 && falseScore < 0.3:
		requiresReview := genuineScore < 0.8
		reasoning := fmt.Sprintf("Strong indicators of genuine emergency: %s. ", strings.Join(matched, ", "))
		if requiresReview {
			reasoning += "Requires admin verification for final approval."
		} else {
			reasoning += "Automatically approved based on clear emergency indicators."
		}
		return types.ClaimClassification{
			Classification:    types.ClaimGenuine,
			Confidence:        round2(genuineScore),
			Reasoning:         reasoning,
			RequiresReview:    requiresReview,
			SuggestedPriority: "EMERGENCY",
			MatchedCategories: matched,
		}

	case falseScore > 0.5 || genuineScore < 0.2:
		return types.ClaimClassification{
			Classification:    types.ClaimFalse,
			Confidence:        round2(falseScore),
			Reasoning:         "No genuine emergency indicators found. Claim appears to be convenience-based rather than urgent necessity.",
			RequiresReview:    false,
			SuggestedPriority: "NORMAL",
			MatchedCategories: []string{},
		}

	default:
		return types.ClaimClassification{
			Classification:    types.ClaimSuspicious,
			Confidence:        round2(0.5 + suspiciousScore),
			Reasoning:         "Mixed indicators detected. Manual admin review required to verify authenticity of emergency claim.",
			RequiresReview:    true,
			SuggestedPriority: "NORMAL",
			MatchedCategories: []string{},
		}
	}
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
