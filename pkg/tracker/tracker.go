package tracker

//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"

	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	"liyu1981.xyz/sela-weight-tracker/pkg/db"
	"liyu1981.xyz/sela-weight-tracker/pkg/metrics"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

type IPatient interface {
	Create(ctx context.Context, input *models.Patient) (*models.Patient, error)
	Update(ctx context.Context, id string, input *models.Patient) (*models.Patient, error)
	Get(ctx context.Context, id string) (*models.Patient, error)
	GetByMedicalID(ctx context.Context, medicalID string) (*models.Patient, error)
	GetWithTreatments(ctx context.Context, id string) (*models.PatientWithTreatments, error)
	List(ctx context.Context) ([]models.Patient, error)
	Search(ctx context.Context, keyword string) ([]models.Patient, error)
	Delete(ctx context.Context, id string) error
}

type ITreatment interface {
	Create(ctx context.Context, input models.TreatmentInput) (*models.Treatment, error)
	Update(ctx context.Context, id string, input models.TreatmentInput) (*models.Treatment, error)
	Pause(ctx context.Context, id string, reasonCode string, note string) (*models.Treatment, error)
	Resume(ctx context.Context, id string) (*models.Treatment, error)
	Complete(ctx context.Context, id string) (*models.Treatment, error)
	Terminate(ctx context.Context, id string, reason string) (*models.Treatment, error)
	Get(ctx context.Context, id string) (*models.TreatmentView, error)
	ListByStatus(ctx context.Context, status models.TreatmentStatus) ([]models.TreatmentView, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.TreatmentView, error)
}

type IWeight interface {
	AddRecord(ctx context.Context, treatmentID string, weight float64, date string) (*models.WeightRecord, error)
	AddUnmeasurable(ctx context.Context, treatmentID string, date string) (*models.WeightRecord, error)
	UpdateRecord(ctx context.Context, id string, weight float64, date string) (*models.WeightRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string) (*models.WeightRecord, error)
	ListByTreatment(ctx context.Context, treatmentID string) ([]models.WeightRecord, error)
}

type IAlert interface {
	CheckAndStoreAlerts(ctx context.Context, treatment *models.Treatment, record *models.WeightRecord) (*models.Intervention, error)
}

type IIntervention interface {
	EnsurePending(ctx context.Context, treatmentID string, kind models.InterventionType, triggerRate *float64) (*models.Intervention, bool, error)
	Execute(ctx context.Context, id string, executor string, notes string, executeDate string) (*models.Intervention, error)
	Skip(ctx context.Context, id string, reason string) (*models.Intervention, error)
	CreateManual(ctx context.Context, treatmentID string, notes string, executor string, date string) (*models.Intervention, error)
	Update(ctx context.Context, id string, input models.InterventionEdit) (*models.Intervention, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Intervention, error)
	ListByTreatment(ctx context.Context, treatmentID string) ([]models.Intervention, error)
	ListPending(ctx context.Context) ([]models.PendingIntervention, error)
}

type ISettings interface {
	Catalog(ctx context.Context) (*models.Catalog, error)
	SetCancerTypes(ctx context.Context, items []models.CodeLabel) error
	SetTreatmentIntents(ctx context.Context, items []models.CodeLabel) error
	SetUnableReasons(ctx context.Context, items []models.CodeLabel) error
	SetPauseReasons(ctx context.Context, items []models.PauseReason) error
	SetStaffList(ctx context.Context, staff []string) error
	SetAlertRules(ctx context.Context, rules []models.AlertRule) error
	EnsureDefaults(ctx context.Context) error
	Invalidate()
}

type IReport interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

type IBackup interface {
	Export(ctx context.Context) (*models.Snapshot, error)
	Import(ctx context.Context, snapshot *models.Snapshot) error
}

type Options struct {
	// AlertOnUpdate also runs the alert rules when an existing weight record is edited.
	// Off by default: alerts fire on first ingestion only.
	AlertOnUpdate bool
}

type Tracker struct {
	Db      db.DB
	Clock   clock.Clock
	Metrics *metrics.Metrics
	Options Options

	Patient      IPatient
	Treatment    ITreatment
	Weight       IWeight
	Alert        IAlert
	Intervention IIntervention
	Settings     ISettings
	Report       IReport
	Backup       IBackup

	cacheOnce sync.Once
	cache     *cache.Cache
}

type ServiceOpts struct {
	Patient      IPatient
	Treatment    ITreatment
	Weight       IWeight
	Alert        IAlert
	Intervention IIntervention
	Settings     ISettings
	Report       IReport
	Backup       IBackup
}

func (t *Tracker) WithServices(opts ServiceOpts) *Tracker {
	if opts.Patient != nil {
		t.Patient = opts.Patient
	}
	if opts.Treatment != nil {
		t.Treatment = opts.Treatment
	}
	if opts.Weight != nil {
		t.Weight = opts.Weight
	}
	if opts.Alert != nil {
		t.Alert = opts.Alert
	}
	if opts.Intervention != nil {
		t.Intervention = opts.Intervention
	}
	if opts.Settings != nil {
		t.Settings = opts.Settings
	}
	if opts.Report != nil {
		t.Report = opts.Report
	}
	if opts.Backup != nil {
		t.Backup = opts.Backup
	}
	return t
}

// WithDefaultServices wires every service to its database backed implementation.
func (t *Tracker) WithDefaultServices() *Tracker {
	if t.Clock == nil {
		t.Clock = clock.SystemClock{}
	}
	return t.WithServices(ServiceOpts{
		Patient:      t.GetIPatient(),
		Treatment:    t.GetITreatment(),
		Weight:       t.GetIWeight(),
		Alert:        t.GetIAlert(),
		Intervention: t.GetIIntervention(),
		Settings:     t.GetISettings(),
		Report:       t.GetIReport(),
		Backup:       t.GetIBackup(),
	})
}

func (t *Tracker) today() string {
	return clock.Today(t.Clock)
}
