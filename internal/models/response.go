package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ResearchResponse is returned by POST /api/v1/research
type ResearchResponse struct {
	Status     string                 `json:"status"`
	Query      string                 `json:"query"`
	Answer     string                 `json:"answer,omitempty"`
	Agent      string                 `json:"agent"`
	DurationMs int64                  `json:"duration_ms"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
