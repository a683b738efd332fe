package rules

import (
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

// FallbackRule applies when neither the cancer type nor "default" has a configured rule.
var FallbackRule = models.AlertRule{
	CancerType:         models.AlertRuleDefault,
	SDMThreshold:       -3,
	NutritionThreshold: -5,
}

// RuleFor looks up the rule for cancerType: exact match, then "default", then FallbackRule.
func RuleFor(cancerType string, rules []models.AlertRule) models.AlertRule {
	for _, r := range rules {
		if r.CancerType == cancerType {
			return r
		}
	}
	for _, r := range rules {
		if r.CancerType == models.AlertRuleDefault {
			return r
		}
	}
	return FallbackRule
}

// ResolveAlert returns the intervention kind a change rate triggers, if any.
// The severe (nutrition) threshold is checked first so it dominates.
func ResolveAlert(rate float64, cancerType string, rules []models.AlertRule) (models.InterventionType, bool) {
	rule := RuleFor(cancerType, rules)
	switch {
	case rate <= rule.NutritionThreshold:
		return models.InterventionTypeNutrition, true
	case rate <= rule.SDMThreshold:
		return models.InterventionTypeSDM, true
	}
	return "", false
}

func ValidateAlertRule(rule models.AlertRule) error {
	if rule.CancerType == "" {
		return apperrors.NewValidationError("alert rule needs a cancer type or %q", models.AlertRuleDefault)
	}
	if rule.SDMThreshold >= 0 || rule.NutritionThreshold >= 0 {
		return apperrors.NewValidationError("alert rule %s: thresholds must be negative", rule.CancerType)
	}
	if rule.NutritionThreshold > rule.SDMThreshold {
		return apperrors.NewValidationError(
			"alert rule %s: nutrition threshold %.2f must not be above sdm threshold %.2f",
			rule.CancerType, rule.NutritionThreshold, rule.SDMThreshold)
	}
	return nil
}

// ValidateAlertRules checks every rule and rejects duplicate cancer types.
func ValidateAlertRules(rules []models.AlertRule) error {
	seen := map[string]bool{}
	for _, r := range rules {
		if err := ValidateAlertRule(r); err != nil {
			return err
		}
		if seen[r.CancerType] {
			return apperrors.NewValidationError("alert rule %s is configured twice", r.CancerType)
		}
		seen[r.CancerType] = true
	}
	return nil
}
