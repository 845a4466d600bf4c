package gemini

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asingla/credscope/internal/core/domain"
)

// rawScore mirrors the oracle's response shape with pointer scores so a
// missing aggregate can be told apart from an explicit zero.
type rawScore struct {
	IncomeStability    *float64        `json:"income_stability_score"`
	SpendingDiscipline *float64        `json:"spending_discipline_score"`
	SavingsBehavior    *float64        `json:"savings_behavior_score"`
	PaymentDiscipline  *float64        `json:"payment_discipline_score"`
	DigitalBehavior    *float64        `json:"digital_behavior_score"`
	LifestyleStability *float64        `json:"lifestyle_stability_score"`
	Aggregate          *float64        `json:"behavior_score"`
	Explanation        string          `json:"explanation"`
	KeyInsights        domain.Insights `json:"key_insights"`
	RedFlags           []string        `json:"red_flags"`
	ImprovementTips    []string        `json:"improvement_tips"`
}

// parseBehaviorScore extracts the first JSON object from the model output
// and normalizes it: every score clamped to [0,10], a missing aggregate
// recomputed from the sub-scores, nil slices replaced with empty ones.
func parseBehaviorScore(raw string) (*domain.BehaviorScore, error) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return nil, errors.New("no JSON object in model output")
	}

	var parsed rawScore
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal score object: %w", err)
	}

	score := domain.BehaviorScore{
		IncomeStability:    clampScore(parsed.IncomeStability),
		SpendingDiscipline: clampScore(parsed.SpendingDiscipline),
		SavingsBehavior:    clampScore(parsed.SavingsBehavior),
		PaymentDiscipline:  clampScore(parsed.PaymentDiscipline),
		DigitalBehavior:    clampScore(parsed.DigitalBehavior),
		LifestyleStability: clampScore(parsed.LifestyleStability),
		Explanation:        parsed.Explanation,
		KeyInsights:        parsed.KeyInsights,
		RedFlags:           parsed.RedFlags,
		ImprovementTips:    parsed.ImprovementTips,
	}
	if parsed.Aggregate != nil {
		score.Aggregate = clampScore(parsed.Aggregate)
	} else {
		score.Aggregate = score.WeightedAggregate()
	}

	if score.KeyInsights.Positive == nil {
		score.KeyInsights.Positive = []string{}
	}
	if score.KeyInsights.Negative == nil {
		score.KeyInsights.Negative = []string{}
	}
	if score.RedFlags == nil {
		score.RedFlags = []string{}
	}
	if score.ImprovementTips == nil {
		score.ImprovementTips = []string{}
	}

	return &score, nil
}

func clampScore(v *float64) float64 {
	if v == nil {
		return 0
	}
	if *v < 0 {
		return 0
	}
	if *v > 10 {
		return 10
	}
	return *v
}

// firstJSONObject scans for the first balanced top-level object, tracking
// string literals and escapes so braces inside explanations do not break the
// balance count.
func firstJSONObject(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
