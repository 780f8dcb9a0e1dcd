package noshow

import (
	"math"

	"github.com/queuewise/mlservice/internal/priority"
	"github.com/queuewise/mlservice/internal/types"
)

// ModelName identifies the rule-based no-show model
const ModelName = "rule_based_v2"

// Scorer predicts no-show probabilities. RuleScorer is the current
// implementation; a trained classifier can replace it behind the same contract.
type Scorer interface {
	Score(p types.PriorityClass, queuePosition, dayOfWeek, hourOfDay, estimatedWait int) types.NoShowEstimate
}

// RuleScorer computes no-show probability from priority, queue position,
// time of day and estimated wait. Pure function, no state.
type RuleScorer struct{}

// NewRuleScorer creates a rule-based no-show scorer
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

// Score predicts the probability that a ticket holder will not show.
// dayOfWeek is Monday-indexed (0=Monday .. 6=Sunday).
func (s *RuleScorer) Score(p types.PriorityClass, queuePosition, dayOfWeek, hourOfDay, estimatedWait int) types.NoShowEstimate {
	prob := priority.NoShowBase(p)

	// Deep queue positions drift away
	if queuePosition > 15 {
		prob += 0.05
	}
	if queuePosition > 30 {
		prob += 0.10
	}

	// Long estimated waits. The >90 bonus replaces the >60 bonus,
	// it does not stack on top of it.
	if estimatedWait > 90 {
		prob += 0.15
	} else if estimatedWait > 60 {
		prob += 0.08
	}

	// Late afternoon and lunch hours
	if hourOfDay >= 17 {
		prob += 0.08
	}
	if hourOfDay >= 12 && hourOfDay <= 14 {
		prob += 0.05
	}

	// Fridays run high, weekends slightly low
	if dayOfWeek == 4 {
		prob += 0.05
	}
	if dayOfWeek >= 5 {
		prob -= 0.03
	}

	if prob > 0.70 {
		prob = 0.70
	}
	if prob < 0.01 {
		prob = 0.01
	}
	prob = math.Round(prob*1000) / 1000

	riskLevel := types.RiskHigh
	if prob < 0.15 {
		riskLevel = types.RiskLow
	} else if prob < 0.35 {
		riskLevel = types.RiskMedium
	}

	var recommendations []string
	if prob > 0.40 {
		recommendations = append(recommendations,
			"Send additional reminder notification",
			"Consider calling next token as backup")
	} else if prob < 0.10 {
		recommendations = append(recommendations,
			"Low risk - standard notification sufficient")
	}

	return types.NoShowEstimate{
		NoShowProbability: prob,
		Confidence:        0.75,
		RiskLevel:         riskLevel,
		ModelUsed:         ModelName,
		Recommendations:   recommendations,
	}
}
