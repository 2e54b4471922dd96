package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger logs security-relevant events with hashed identifiers
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogResearch records a research execution event. Queries and API keys are
// hashed so the audit trail never stores raw user input.
func (a *AuditLogger) LogResearch(
	query, apiKey, agentName string,
	validationPassed bool,
	executionTimeMs int64,
	success bool,
	errMsg string,
) {
	if !a.enabled {
		return
	}
	queryHash := hashStr(query)[:16]
	keyHash := ""
	if apiKey != "" {
		keyHash = hashStr(apiKey)[:16]
	}

	evt := log.Info().
		Str("event", "research_audit").
		Str("query_hash", queryHash).
		Str("api_key_hash", keyHash).
		Str("agent", agentName).
		Bool("validation_passed", validationPassed).
		Int64("execution_time_ms", executionTimeMs).
		Bool("success", success)

	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
