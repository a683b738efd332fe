package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeySelaDBType string = "SELA_DB_TYPE"
	EnvKeySelaDbPath string = "SELA_DB_PATH"

	EnvKeySelaHttpHostPort string = "SELA_HTTP_HOST_PORT"
	EnvKeySelaGrpcHostPort string = "SELA_GRPC_HOST_PORT"

	EnvKeySelaDefaultRate  string = "SELA_DEFAULT_RATE"
	EnvKeySelaDefaultBurst string = "SELA_DEFAULT_BURST"

	EnvKeySelaAlertOnUpdate string = "SELA_ALERT_ON_UPDATE"
	EnvKeySelaLogDir        string = "SELA_LOG_DIR"

	LoggerNameTrackerCore   string = "tracker_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameCli           string = "cli"

	LoggerFieldCategory            string = "category"
	LoggerCategoryPatient          string = "patient"
	LoggerCategoryTreatment        string = "treatment"
	LoggerCategoryWeight           string = "weight"
	LoggerCategoryAlert            string = "alert"
	LoggerCategoryIntervention     string = "intervention"
	LoggerCategorySettings         string = "settings"
	LoggerCategoryBackup           string = "backup"
	LoggerFieldTreatmentID         string = "treatment_id"
	LoggerFieldInterventionID      string = "intervention_id"
	LoggerFieldInterventionType    string = "intervention_type"
	LoggerFieldPatientID           string = "patient_id"
	LoggerFieldWeightRecordID      string = "weight_record_id"
	LoggerFieldTreatmentStatusFrom string = "from"
	LoggerFieldTreatmentStatusTo   string = "to"
)
