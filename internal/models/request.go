package models

// ResearchRequest for POST /api/v1/research
type ResearchRequest struct {
	Query   string  `json:"query"`
	Agent   *string `json:"agent,omitempty"` // "search" | "reasoning" | "solo"; empty = orchestrator
	Timeout int     `json:"timeout"`
}

func (r *ResearchRequest) SetDefaults() {
	if r.Timeout == 0 {
		r.Timeout = 300
	}
	if r.Timeout < 10 {
		r.Timeout = 10
	}
	if r.Timeout > 600 {
		r.Timeout = 600
	}
}
