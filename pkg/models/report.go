package models

import "time"

type WeightBand string

const (
	WeightBandStable   WeightBand = "stable"   // >= 0%
	WeightBandMild     WeightBand = "mild"     // 0% .. -3%
	WeightBandModerate WeightBand = "moderate" // -3% .. -5%
	WeightBandSevere   WeightBand = "severe"   // below -5%
)

type Stats struct {
	ActiveCount           int                `json:"active_count"`
	PausedCount           int                `json:"paused_count"`
	PendingCount          int                `json:"pending_count"`
	OverdueCount          int                `json:"overdue_count"`
	TotalPatients         int64              `json:"total_patients"`
	TotalTreatments       int64              `json:"total_treatments"`
	CancerDistribution    map[string]int     `json:"cancer_distribution"`
	WeightDistribution    map[WeightBand]int `json:"weight_distribution"`
	ExecutedInterventions int64              `json:"executed_interventions"`
	TotalInterventions    int64              `json:"total_interventions"`
	InterventionRatePct   int                `json:"intervention_rate"`
}

const SnapshotVersion = 1

// Snapshot is the full backup image of the store.
type Snapshot struct {
	Version       int            `json:"version"`
	ExportedAt    time.Time      `json:"exported_at"`
	Patients      []Patient      `json:"patients"`
	Treatments    []Treatment    `json:"treatments"`
	WeightRecords []WeightRecord `json:"weight_records"`
	Interventions []Intervention `json:"interventions"`
	Settings      []Setting      `json:"settings"`
}
