// Package rules holds the pure decision functions of the weight monitor:
// change rate, tracking status and alert rule resolution.
package rules

import "liyu1981.xyz/sela-weight-tracker/pkg/models"

// ChangeRate returns the percentage delta of current against baseline, or nil
// when either value is missing or zero. The raw fraction is kept; rounding is
// left to whoever displays it.
func ChangeRate(current *float64, baseline *float64) *float64 {
	if current == nil || baseline == nil || *current == 0 || *baseline == 0 {
		return nil
	}
	rate := (*current - *baseline) / *baseline * 100
	return &rate
}

// BandOf buckets a change rate the way the report distribution does.
func BandOf(rate float64) models.WeightBand {
	switch {
	case rate >= 0:
		return models.WeightBandStable
	case rate > -3:
		return models.WeightBandMild
	case rate > -5:
		return models.WeightBandModerate
	default:
		return models.WeightBandSevere
	}
}
