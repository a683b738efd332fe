package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"liyu1981.xyz/sela-weight-tracker/pkg/common"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/metrics"
	"liyu1981.xyz/sela-weight-tracker/pkg/tracker"
)

type RestfulServer struct {
	Server           *gin.Engine
	Tracker          *tracker.Tracker
	RateLimiterStore *tracker.RateLimiterStore
	Metrics          *metrics.Metrics
}

func (rs *RestfulServer) CheckTreatmentLimiter(treatmentID string) bool {
	return rs.RateLimiterStore.Allow(treatmentID)
}

func (rs *RestfulServer) SetLimiter(treatmentID string, treatmentRate float64, treatmentBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(treatmentID, rate.Limit(treatmentRate), treatmentBurst)
}

func (rs *RestfulServer) observe(c *gin.Context) {
	start := time.Now()
	c.Next()
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	rs.Metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
}

var statusOfErrorType = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeValidation: http.StatusBadRequest,
	apperrors.ErrorTypeConflict:   http.StatusConflict,
	apperrors.ErrorTypeNotFound:   http.StatusNotFound,
	apperrors.ErrorTypeInternal:   http.StatusInternalServerError,
}

// writeError renders err as {"error_type", "code", "message"} with the matching status.
func writeError(c *gin.Context, err error) {
	errType := apperrors.TypeOf(err)
	status := statusOfErrorType[errType]

	message := err.Error()
	if errType == apperrors.ErrorTypeInternal {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		message = "internal error"
	}

	c.JSON(status, gin.H{
		"error_type": errType,
		"code":       apperrors.CodeOf(err),
		"message":    message,
	})
}

func writeIssues(c *gin.Context, issues any) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_type": apperrors.ErrorTypeValidation,
		"code":       apperrors.CodeInvalidValue,
		"message":    fmt.Sprintf("%v", issues),
	})
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(rs.observe)

	rs.Server.GET("/healthz", rs.HealthCheck)
	if rs.Metrics != nil {
		rs.Server.GET("/metrics", gin.WrapH(rs.Metrics.Handler()))
	}

	api := rs.Server.Group("/api")

	patients := api.Group("/patients")
	{
		patients.GET("", rs.ListPatients)
		patients.POST("", rs.CreatePatient)
		patients.GET("/:id", rs.GetPatient)
		patients.PUT("/:id", rs.UpdatePatient)
		patients.DELETE("/:id", rs.DeletePatient)
		patients.GET("/:id/treatments", rs.ListPatientTreatments)
	}

	treatments := api.Group("/treatments")
	{
		treatments.GET("", rs.ListTreatments)
		treatments.POST("", rs.CreateTreatment)
		treatments.GET("/:id", rs.GetTreatment)
		treatments.PUT("/:id", rs.UpdateTreatment)
		treatments.POST("/:id/pause", rs.PauseTreatment)
		treatments.POST("/:id/resume", rs.ResumeTreatment)
		treatments.POST("/:id/complete", rs.CompleteTreatment)
		treatments.POST("/:id/terminate", rs.TerminateTreatment)
		treatments.POST("/:id/limiter", rs.PostLimiter)

		treatments.GET("/:id/weights", rs.ListWeights)
		treatments.POST("/:id/weights", rs.PostWeight)
		treatments.GET("/:id/interventions", rs.ListInterventions)
		treatments.POST("/:id/interventions", rs.CreateManualIntervention)
	}

	weights := api.Group("/weights")
	{
		weights.GET("/:id", rs.GetWeight)
		weights.PUT("/:id", rs.UpdateWeight)
		weights.DELETE("/:id", rs.DeleteWeight)
	}

	api.GET("/pending-interventions", rs.ListPendingInterventions)
	interventions := api.Group("/interventions")
	{
		interventions.GET("/:id", rs.GetIntervention)
		interventions.PUT("/:id", rs.UpdateIntervention)
		interventions.DELETE("/:id", rs.DeleteIntervention)
		interventions.POST("/:id/execute", rs.ExecuteIntervention)
		interventions.POST("/:id/skip", rs.SkipIntervention)
	}

	settings := api.Group("/settings")
	{
		settings.GET("", rs.GetSettings)
		settings.PUT("/:key", rs.PutSetting)
	}

	api.GET("/report/stats", rs.GetStats)
	api.GET("/backup/export", rs.ExportBackup)
	api.POST("/backup/import", rs.ImportBackup)
}
