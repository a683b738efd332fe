package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type TreatmentStatus string

const (
	TreatmentStatusActive     TreatmentStatus = "active"
	TreatmentStatusPaused     TreatmentStatus = "paused"
	TreatmentStatusCompleted  TreatmentStatus = "completed"
	TreatmentStatusTerminated TreatmentStatus = "terminated"
)

// IsOngoing reports whether the treatment still blocks a new one for the same patient.
func (s TreatmentStatus) IsOngoing() bool {
	return s == TreatmentStatusActive || s == TreatmentStatusPaused
}

type InterventionType string

const (
	InterventionTypeSDM         InterventionType = "sdm"
	InterventionTypeNutrition   InterventionType = "nutrition"
	InterventionTypeManual      InterventionType = "manual"
	InterventionTypeNGTube      InterventionType = "ng_tube"
	InterventionTypeGastrostomy InterventionType = "gastrostomy"
)

// IsAutomatic reports whether the type is spawned by an alert rule.
func (t InterventionType) IsAutomatic() bool {
	return t == InterventionTypeSDM || t == InterventionTypeNutrition
}

func (t InterventionType) IsKnown() bool {
	switch t {
	case InterventionTypeSDM, InterventionTypeNutrition, InterventionTypeManual,
		InterventionTypeNGTube, InterventionTypeGastrostomy:
		return true
	}
	return false
}

type InterventionStatus string

const (
	InterventionStatusPending  InterventionStatus = "pending"
	InterventionStatusExecuted InterventionStatus = "executed"
	InterventionStatusSkipped  InterventionStatus = "skipped"
)

type Patient struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	MedicalID string    `gorm:"uniqueIndex;type:varchar(7);not null" json:"medical_id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Gender    Gender    `gorm:"type:varchar(1)" json:"gender"`
	BirthDate string    `gorm:"type:varchar(10)" json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Treatment struct {
	ID                   string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PatientID            string          `gorm:"index;type:varchar(36);not null" json:"patient_id"`
	CancerType           string          `gorm:"type:varchar(32);not null" json:"cancer_type"`
	TreatmentIntent      string          `gorm:"type:varchar(32)" json:"treatment_intent"`
	StartDate            string          `gorm:"type:varchar(10);not null" json:"treatment_start"`
	EndDate              string          `gorm:"type:varchar(10)" json:"treatment_end,omitempty"`
	BaselineWeight       *float64        `json:"baseline_weight"`
	BaselineUnmeasurable bool            `json:"unable_to_measure"`
	UnmeasurableReason   string          `gorm:"type:varchar(32)" json:"unable_reason,omitempty"`
	Status               TreatmentStatus `gorm:"index;type:varchar(12);not null;check:status IN ('active','paused','completed','terminated')" json:"status"`
	PauseReason          string          `json:"pause_reason,omitempty"`
	PauseNote            string          `json:"pause_note,omitempty"`
	PausedAt             *time.Time      `json:"paused_at,omitempty"`
	TerminateReason      string          `json:"terminate_reason,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type WeightRecord struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TreatmentID     string    `gorm:"index;uniqueIndex:idx_weight_treatment_date;type:varchar(36);not null" json:"treatment_id"`
	MeasureDate     string    `gorm:"index;uniqueIndex:idx_weight_treatment_date;type:varchar(10);not null" json:"measure_date"`
	Weight          *float64  `json:"weight"`
	UnableToMeasure bool      `json:"unable_to_measure"`
	ChangeRate      *float64  `json:"change_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Intervention struct {
	ID          string             `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TreatmentID string             `gorm:"index;type:varchar(36);not null" json:"treatment_id"`
	Type        InterventionType   `gorm:"type:varchar(16);not null;check:type IN ('sdm','nutrition','manual','ng_tube','gastrostomy')" json:"type"`
	TriggerRate *float64           `json:"trigger_rate"`
	Status      InterventionStatus `gorm:"index;type:varchar(10);not null;check:status IN ('pending','executed','skipped')" json:"status"`
	Executor    string             `json:"executor,omitempty"`
	ExecuteDate string             `gorm:"type:varchar(10)" json:"execute_date,omitempty"`
	ExecutedAt  *time.Time         `json:"executed_at,omitempty"`
	SkippedAt   *time.Time         `json:"skipped_at,omitempty"`
	SkipReason  string             `json:"skip_reason,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Setting is one row of the key/value settings collection.
type Setting struct {
	Key       string         `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

const (
	SettingKeyCancerTypes      = "cancer_types"
	SettingKeyTreatmentIntents = "treatment_intents"
	SettingKeyStaffList        = "staff_list"
	SettingKeyAlertRules       = "alert_rules"
	SettingKeyUnableReasons    = "unable_reasons"
	SettingKeyPauseReasons     = "pause_reasons"
	SettingKeyInitialized      = "initialized"

	AlertRuleDefault = "default"
)

type CodeLabel struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type PauseReason struct {
	Code         string `json:"code"`
	Label        string `json:"label"`
	RequiresText bool   `json:"requires_text"`
}

// AlertRule holds the two loss thresholds (negative percentages) for a cancer type.
// NutritionThreshold is the severe one and must not be above SDMThreshold.
type AlertRule struct {
	CancerType         string  `json:"cancer_type"`
	SDMThreshold       float64 `json:"sdm_threshold"`
	NutritionThreshold float64 `json:"nutrition_threshold"`
}

// Catalog is the reference data read by the core. It is owned by the settings collection.
type Catalog struct {
	CancerTypes      []CodeLabel   `json:"cancer_types"`
	TreatmentIntents []CodeLabel   `json:"treatment_intents"`
	StaffList        []string      `json:"staff_list"`
	AlertRules       []AlertRule   `json:"alert_rules"`
	UnableReasons    []CodeLabel   `json:"unable_reasons"`
	PauseReasons     []PauseReason `json:"pause_reasons"`
}

func labelOf(list []CodeLabel, code string) string {
	for _, cl := range list {
		if cl.Code == code {
			return cl.Label
		}
	}
	return code
}

func (c *Catalog) CancerTypeLabel(code string) string {
	return labelOf(c.CancerTypes, code)
}

func (c *Catalog) TreatmentIntentLabel(code string) string {
	return labelOf(c.TreatmentIntents, code)
}

func (c *Catalog) FindPauseReason(code string) (PauseReason, bool) {
	for _, r := range c.PauseReasons {
		if r.Code == code {
			return r, true
		}
	}
	return PauseReason{}, false
}

type TrackingState string

const (
	TrackingStateNormal  TrackingState = "normal"
	TrackingStatePending TrackingState = "pending"
	TrackingStateOverdue TrackingState = "overdue"
)

type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type TrackingStatus struct {
	State     TrackingState `json:"status"`
	Severity  Severity      `json:"severity"`
	DaysSince *int          `json:"days_since,omitempty"`
}

// TreatmentView is the read-side projection used by list and detail views.
type TreatmentView struct {
	Treatment
	CancerTypeLabel      string         `json:"cancer_type_label"`
	TreatmentIntentLabel string         `json:"treatment_intent_label"`
	Patient              *Patient       `json:"patient,omitempty"`
	LatestWeight         *WeightRecord  `json:"latest_weight"`
	ChangeRate           *float64       `json:"change_rate"`
	TrackingStatus       TrackingStatus `json:"tracking_status"`
	PendingInterventions []Intervention `json:"pending_interventions"`
}

// TreatmentInput carries the editable fields of a treatment.
// Exactly one of BaselineWeight and BaselineUnmeasurable is set on create.
type TreatmentInput struct {
	PatientID            string   `json:"patient_id"`
	CancerType           string   `json:"cancer_type"`
	TreatmentIntent      string   `json:"treatment_intent"`
	StartDate            string   `json:"treatment_start"`
	BaselineWeight       *float64 `json:"baseline_weight"`
	BaselineUnmeasurable bool     `json:"unable_to_measure"`
	UnmeasurableReason   string   `json:"unable_reason"`
}

// InterventionEdit is a partial update, empty fields are left untouched.
type InterventionEdit struct {
	Type        InterventionType `json:"type"`
	ExecuteDate string           `json:"execute_date"`
	Executor    string           `json:"executor"`
	Notes       string           `json:"notes"`
}

type PendingIntervention struct {
	Intervention
	Treatment Treatment `json:"treatment"`
	Patient   Patient   `json:"patient"`
}

type PatientWithTreatments struct {
	Patient
	Treatments       []TreatmentView `json:"treatments"`
	OngoingTreatment *TreatmentView  `json:"ongoing_treatment"`
}
