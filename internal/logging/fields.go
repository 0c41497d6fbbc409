package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService     = "service"
	FieldVersion     = "version"
	FieldEndpoint    = "endpoint"
	FieldRequestID   = "request_id"
	FieldPath        = "path"
	FieldMethod      = "method"
	FieldStatusCode  = "status_code"
	FieldCompetition = "competition_id"
	FieldSeason      = "season_id"
	FieldTeam        = "team_id"
	FieldJob         = "job_id"
	FieldCount       = "count"
	FieldDurationMS  = "duration_ms"
)
