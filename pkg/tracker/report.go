package tracker

import (
	"context"
	"math"

	"liyu1981.xyz/sela-weight-tracker/pkg/models"
	"liyu1981.xyz/sela-weight-tracker/pkg/rules"
)

// stats summarises the ward. Distributions and the overdue count cover active
// treatments only, totals cover everything stored.
func (t *Tracker) stats(ctx context.Context) (*models.Stats, error) {
	active, err := t.Treatment.ListByStatus(ctx, models.TreatmentStatusActive)
	if err != nil {
		return nil, err
	}
	paused, err := t.Treatment.ListByStatus(ctx, models.TreatmentStatusPaused)
	if err != nil {
		return nil, err
	}
	pending, err := t.Intervention.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		ActiveCount:        len(active),
		PausedCount:        len(paused),
		PendingCount:       len(pending),
		CancerDistribution: map[string]int{},
		WeightDistribution: map[models.WeightBand]int{
			models.WeightBandStable:   0,
			models.WeightBandMild:     0,
			models.WeightBandModerate: 0,
			models.WeightBandSevere:   0,
		},
	}

	for _, view := range active {
		if view.TrackingStatus.State == models.TrackingStateOverdue {
			stats.OverdueCount++
		}
		stats.CancerDistribution[view.CancerTypeLabel]++
		if view.ChangeRate != nil {
			stats.WeightDistribution[rules.BandOf(*view.ChangeRate)]++
		}
	}

	session := t.Db.Session(ctx)
	if err := session.Model(&models.Patient{}).Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}
	if err := session.Model(&models.Treatment{}).Count(&stats.TotalTreatments).Error; err != nil {
		return nil, err
	}
	if err := session.Model(&models.Intervention{}).Count(&stats.TotalInterventions).Error; err != nil {
		return nil, err
	}
	if err := session.Model(&models.Intervention{}).
		Where("status = ?", models.InterventionStatusExecuted).
		Count(&stats.ExecutedInterventions).Error; err != nil {
		return nil, err
	}

	if stats.TotalInterventions > 0 {
		stats.InterventionRatePct = int(math.Round(
			float64(stats.ExecutedInterventions) / float64(stats.TotalInterventions) * 100))
	}
	return stats, nil
}

type IReportImpl struct {
	tracker *Tracker
}

func (ir *IReportImpl) Stats(ctx context.Context) (*models.Stats, error) {
	return ir.tracker.stats(ctx)
}

func (t *Tracker) GetIReport() IReport {
	return &IReportImpl{tracker: t}
}
