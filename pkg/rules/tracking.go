package rules

import (
	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

const (
	NormalWithinDays  = 5
	PendingWithinDays = 7
)

// Classify maps days elapsed since the last measurement to a tracking status.
func Classify(days int) models.TrackingStatus {
	d := days
	switch {
	case days <= NormalWithinDays:
		return models.TrackingStatus{State: models.TrackingStateNormal, Severity: models.SeverityOK, DaysSince: &d}
	case days <= PendingWithinDays:
		return models.TrackingStatus{State: models.TrackingStatePending, Severity: models.SeverityWarning, DaysSince: &d}
	default:
		return models.TrackingStatus{State: models.TrackingStateOverdue, Severity: models.SeverityCritical, DaysSince: &d}
	}
}

// NeverMeasured is the status of a treatment without any reference date.
func NeverMeasured() models.TrackingStatus {
	return models.TrackingStatus{State: models.TrackingStateOverdue, Severity: models.SeverityCritical}
}

// TrackingStatusOf derives the status of lastMeasureDate relative to today on c.
// An empty or unparsable date counts as never measured.
func TrackingStatusOf(lastMeasureDate string, c clock.Clock) models.TrackingStatus {
	if lastMeasureDate == "" {
		return NeverMeasured()
	}
	days, err := clock.DaysSince(lastMeasureDate, c)
	if err != nil {
		return NeverMeasured()
	}
	return Classify(days)
}
