package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

type PatientRequest struct {
	MedicalID string `json:"medical_id" zog:"medical_id"`
	Name      string `json:"name" zog:"name"`
	Gender    string `json:"gender" zog:"gender"`
	BirthDate string `json:"birth_date" zog:"birth_date"`
}

var patientRequestSchema = z.Struct(z.Shape{
	"MedicalID": z.String().Required(),
	"Name":      z.String().Required(),
	"Gender":    z.String(),
	"BirthDate": z.String(),
})

func (req PatientRequest) toModel() *models.Patient {
	return &models.Patient{
		MedicalID: req.MedicalID,
		Name:      req.Name,
		Gender:    models.Gender(req.Gender),
		BirthDate: req.BirthDate,
	}
}

func (rs *RestfulServer) ListPatients(c *gin.Context) {
	if medicalID := c.Query("medical_id"); medicalID != "" {
		patient, err := rs.Tracker.Patient.GetByMedicalID(c.Request.Context(), medicalID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, []models.Patient{*patient})
		return
	}

	var patients []models.Patient
	var err error
	if keyword, ok := c.GetQuery("q"); ok {
		patients, err = rs.Tracker.Patient.Search(c.Request.Context(), keyword)
	} else {
		patients, err = rs.Tracker.Patient.List(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (rs *RestfulServer) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if issues := patientRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	patient, err := rs.Tracker.Patient.Create(c.Request.Context(), req.toModel())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (rs *RestfulServer) GetPatient(c *gin.Context) {
	patient, err := rs.Tracker.Patient.GetWithTreatments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (rs *RestfulServer) UpdatePatient(c *gin.Context) {
	var req PatientRequest
	if issues := patientRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	patient, err := rs.Tracker.Patient.Update(c.Request.Context(), c.Param("id"), req.toModel())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (rs *RestfulServer) DeletePatient(c *gin.Context) {
	if err := rs.Tracker.Patient.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) ListPatientTreatments(c *gin.Context) {
	views, err := rs.Tracker.Treatment.ListByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type TreatmentRequest struct {
	PatientID            string   `json:"patient_id" zog:"patient_id"`
	CancerType           string   `json:"cancer_type" zog:"cancer_type"`
	TreatmentIntent      string   `json:"treatment_intent" zog:"treatment_intent"`
	StartDate            string   `json:"treatment_start" zog:"treatment_start"`
	BaselineWeight       *float64 `json:"baseline_weight" zog:"baseline_weight"`
	BaselineUnmeasurable bool     `json:"unable_to_measure" zog:"unable_to_measure"`
	UnmeasurableReason   string   `json:"unable_reason" zog:"unable_reason"`
}

func (req TreatmentRequest) toInput() models.TreatmentInput {
	return models.TreatmentInput(req)
}

var treatmentRequestSchema = z.Struct(z.Shape{
	"PatientID":            z.String(),
	"CancerType":           z.String(),
	"TreatmentIntent":      z.String(),
	"StartDate":            z.String(),
	"BaselineWeight":       z.Ptr(z.Float64()),
	"BaselineUnmeasurable": z.Bool(),
	"UnmeasurableReason":   z.String(),
})

func (rs *RestfulServer) ListTreatments(c *gin.Context) {
	status := models.TreatmentStatus(c.DefaultQuery("status", string(models.TreatmentStatusActive)))

	views, err := rs.Tracker.Treatment.ListByStatus(c.Request.Context(), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (rs *RestfulServer) CreateTreatment(c *gin.Context) {
	var req TreatmentRequest
	if issues := treatmentRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}
	if req.PatientID == "" {
		writeError(c, apperrors.NewValidationError("patient_id is required"))
		return
	}

	treatment, err := rs.Tracker.Treatment.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, treatment)
}

func (rs *RestfulServer) GetTreatment(c *gin.Context) {
	view, err := rs.Tracker.Treatment.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (rs *RestfulServer) UpdateTreatment(c *gin.Context) {
	var req TreatmentRequest
	if issues := treatmentRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	treatment, err := rs.Tracker.Treatment.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatment)
}

type ReasonRequest struct {
	Reason string `json:"reason" zog:"reason"`
	Note   string `json:"note" zog:"note"`
}

var reasonRequestSchema = z.Struct(z.Shape{
	"Reason": z.String(),
	"Note":   z.String(),
})

func (rs *RestfulServer) PauseTreatment(c *gin.Context) {
	var req ReasonRequest
	if issues := reasonRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	treatment, err := rs.Tracker.Treatment.Pause(c.Request.Context(), c.Param("id"), req.Reason, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatment)
}

func (rs *RestfulServer) ResumeTreatment(c *gin.Context) {
	treatment, err := rs.Tracker.Treatment.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatment)
}

func (rs *RestfulServer) CompleteTreatment(c *gin.Context) {
	treatmentID := c.Param("id")
	treatment, err := rs.Tracker.Treatment.Complete(c.Request.Context(), treatmentID)
	if err != nil {
		writeError(c, err)
		return
	}
	rs.RateLimiterStore.Forget(treatmentID)
	c.JSON(http.StatusOK, treatment)
}

func (rs *RestfulServer) TerminateTreatment(c *gin.Context) {
	var req ReasonRequest
	if issues := reasonRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	treatmentID := c.Param("id")
	treatment, err := rs.Tracker.Treatment.Terminate(c.Request.Context(), treatmentID, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	rs.RateLimiterStore.Forget(treatmentID)
	c.JSON(http.StatusOK, treatment)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().GT(0).Required(),
	"burst": z.Int().GT(0).Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	treatmentID := c.Param("id")

	var req LimiterRequest
	if issues := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	rs.SetLimiter(treatmentID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

type WeightRequest struct {
	Weight          *float64 `json:"weight" zog:"weight"`
	MeasureDate     string   `json:"measure_date" zog:"measure_date"`
	UnableToMeasure bool     `json:"unable_to_measure" zog:"unable_to_measure"`
}

var weightRequestSchema = z.Struct(z.Shape{
	"Weight":          z.Ptr(z.Float64()),
	"MeasureDate":     z.String(),
	"UnableToMeasure": z.Bool(),
})

func (rs *RestfulServer) ListWeights(c *gin.Context) {
	records, err := rs.Tracker.Weight.ListByTreatment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (rs *RestfulServer) PostWeight(c *gin.Context) {
	treatmentID := c.Param("id")

	if !rs.CheckTreatmentLimiter(treatmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req WeightRequest
	if issues := weightRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}

	var record *models.WeightRecord
	var err error
	switch {
	case req.UnableToMeasure:
		record, err = rs.Tracker.Weight.AddUnmeasurable(c.Request.Context(), treatmentID, req.MeasureDate)
	case req.Weight != nil:
		record, err = rs.Tracker.Weight.AddRecord(c.Request.Context(), treatmentID, *req.Weight, req.MeasureDate)
	default:
		err = apperrors.NewValidationError("weight or unable_to_measure is required")
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (rs *RestfulServer) GetWeight(c *gin.Context) {
	record, err := rs.Tracker.Weight.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (rs *RestfulServer) UpdateWeight(c *gin.Context) {
	var req WeightRequest
	if issues := weightRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return
	}
	if req.Weight == nil {
		writeError(c, apperrors.NewValidationError("weight is required"))
		return
	}

	record, err := rs.Tracker.Weight.UpdateRecord(c.Request.Context(), c.Param("id"), *req.Weight, req.MeasureDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (rs *RestfulServer) DeleteWeight(c *gin.Context) {
	if err := rs.Tracker.Weight.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type InterventionRequest struct {
	Type        string `json:"type" zog:"type"`
	Executor    string `json:"executor" zog:"executor"`
	ExecuteDate string `json:"execute_date" zog:"execute_date"`
	Notes       string `json:"notes" zog:"notes"`
	Reason      string `json:"reason" zog:"reason"`
}

var interventionRequestSchema = z.Struct(z.Shape{
	"Type":        z.String(),
	"Executor":    z.String(),
	"ExecuteDate": z.String(),
	"Notes":       z.String(),
	"Reason":      z.String(),
})

func parseInterventionRequest(c *gin.Context) (InterventionRequest, bool) {
	var req InterventionRequest
	if issues := interventionRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		writeIssues(c, issues)
		return req, false
	}
	return req, true
}

func (rs *RestfulServer) ListInterventions(c *gin.Context) {
	interventions, err := rs.Tracker.Intervention.ListByTreatment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, interventions)
}

func (rs *RestfulServer) CreateManualIntervention(c *gin.Context) {
	req, ok := parseInterventionRequest(c)
	if !ok {
		return
	}

	intervention, err := rs.Tracker.Intervention.CreateManual(c.Request.Context(), c.Param("id"), req.Notes, req.Executor, req.ExecuteDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intervention)
}

func (rs *RestfulServer) ListPendingInterventions(c *gin.Context) {
	pending, err := rs.Tracker.Intervention.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (rs *RestfulServer) GetIntervention(c *gin.Context) {
	intervention, err := rs.Tracker.Intervention.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, intervention)
}

func (rs *RestfulServer) UpdateIntervention(c *gin.Context) {
	req, ok := parseInterventionRequest(c)
	if !ok {
		return
	}

	intervention, err := rs.Tracker.Intervention.Update(c.Request.Context(), c.Param("id"), models.InterventionEdit{
		Type:        models.InterventionType(req.Type),
		ExecuteDate: req.ExecuteDate,
		Executor:    req.Executor,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, intervention)
}

func (rs *RestfulServer) DeleteIntervention(c *gin.Context) {
	if err := rs.Tracker.Intervention.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) ExecuteIntervention(c *gin.Context) {
	req, ok := parseInterventionRequest(c)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Executor) == "" {
		writeError(c, apperrors.NewValidationError("executor is required"))
		return
	}

	intervention, err := rs.Tracker.Intervention.Execute(c.Request.Context(), c.Param("id"), req.Executor, req.Notes, req.ExecuteDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, intervention)
}

func (rs *RestfulServer) SkipIntervention(c *gin.Context) {
	req, ok := parseInterventionRequest(c)
	if !ok {
		return
	}

	intervention, err := rs.Tracker.Intervention.Skip(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, intervention)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
