package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scoutai/scout/internal/agent"
	"github.com/scoutai/scout/internal/archive"
	"github.com/scoutai/scout/internal/models"
	"github.com/scoutai/scout/internal/security"
	"github.com/scoutai/scout/internal/store"
)

// ResearchHandler handles POST /api/v1/research
type ResearchHandler struct {
	orchestrator agent.Agent
	search       agent.Agent
	reasoning    agent.Agent
	solo         agent.Agent
	router       *agent.TaskRouter
	validator    *security.PromptValidator
	pii          *security.PIIDetector
	audit        *security.AuditLogger
	store        *store.Store
	archive      *archive.Archive
}

func NewResearchHandler(
	orchestrator, search, reasoning, solo agent.Agent,
	router *agent.TaskRouter,
	validator *security.PromptValidator,
	pii *security.PIIDetector,
	audit *security.AuditLogger,
	st *store.Store,
	arch *archive.Archive,
) *ResearchHandler {
	return &ResearchHandler{
		orchestrator: orchestrator,
		search:       search,
		reasoning:    reasoning,
		solo:         solo,
		router:       router,
		validator:    validator,
		pii:          pii,
		audit:        audit,
		store:        st,
		archive:      arch,
	}
}

// Research handles POST /api/v1/research
func (h *ResearchHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req models.ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.SetDefaults()

	if req.Query == "" {
		models.WriteError(w, http.StatusBadRequest, "query is required")
		return
	}

	apiKey := r.Header.Get("X-API-Key")

	if v := h.validator.Validate(req.Query); !v.Valid {
		h.audit.LogResearch(req.Query, apiKey, "", false, 0, false, v.Message)
		models.WriteError(w, http.StatusBadRequest, "query rejected: "+v.Message)
		return
	}
	if found, kw := h.pii.Detect(req.Query); found {
		h.audit.LogResearch(req.Query, apiKey, "", false, 0, false, "pii keyword: "+kw)
		models.WriteError(w, http.StatusBadRequest, "query contains sensitive keyword: "+kw)
		return
	}

	target, taskType, routingMeta, err := h.pickAgent(req)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(req.Timeout)*time.Second)
	defer cancel()

	start := time.Now()
	resp := target.Execute(ctx, agent.Request{Task: req.Query, Type: taskType})
	elapsed := time.Since(start)
	resp.Metadata = mergeMeta(resp.Metadata, routingMeta)

	h.audit.LogResearch(req.Query, apiKey, resp.Agent, true, elapsed.Milliseconds(), resp.Success, resp.Err)
	h.record(req.Query, resp, elapsed)

	if !resp.Success {
		models.WriteJSON(w, http.StatusUnprocessableEntity, models.ResearchResponse{
			Status:     "error",
			Query:      req.Query,
			Agent:      resp.Agent,
			DurationMs: elapsed.Milliseconds(),
			Metadata:   withErr(resp.Metadata, resp.Err),
		})
		return
	}

	models.WriteJSON(w, http.StatusOK, models.ResearchResponse{
		Status:     "success",
		Query:      req.Query,
		Answer:     resp.Result,
		Agent:      resp.Agent,
		DurationMs: elapsed.Milliseconds(),
		Metadata:   resp.Metadata,
	})
}

// pickAgent resolves the target agent and the routing metadata attached to
// the response. An explicit agent choice wins with confidence 1.0; "auto"
// and the default orchestrator path expose the keyword router's decision.
func (h *ResearchHandler) pickAgent(req models.ResearchRequest) (agent.Agent, agent.TaskType, map[string]interface{}, error) {
	explicit := map[string]interface{}{
		"routing_confidence": 1.0,
		"routing_reasoning":  "explicitly specified by user",
	}

	if req.Agent == nil || *req.Agent == "" {
		routing := h.router.Route(req.Query)
		return h.orchestrator, agent.TaskGeneral, routingMeta(routing), nil
	}
	switch *req.Agent {
	case "search":
		return h.search, agent.TaskSearch, explicit, nil
	case "reasoning":
		return h.reasoning, agent.TaskReasoning, explicit, nil
	case "solo":
		return h.solo, agent.TaskGeneral, explicit, nil
	case "auto":
		routing := h.router.Route(req.Query)
		if routing.Type == agent.TaskReasoning {
			return h.reasoning, agent.TaskReasoning, routingMeta(routing), nil
		}
		return h.search, agent.TaskSearch, routingMeta(routing), nil
	default:
		return nil, agent.TaskGeneral, nil, fmt.Errorf("unknown agent %q (expected search, reasoning, solo or auto)", *req.Agent)
	}
}

func routingMeta(r agent.RoutingResult) map[string]interface{} {
	return map[string]interface{}{
		"routing_confidence": r.Confidence,
		"routing_reasoning":  r.Reasoning,
	}
}

func mergeMeta(meta, extra map[string]interface{}) map[string]interface{} {
	if meta == nil {
		meta = make(map[string]interface{})
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}

// record persists the run to whichever backends are configured.
func (h *ResearchHandler) record(query string, resp agent.Response, elapsed time.Duration) {
	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if h.store != nil {
		run := store.Run{
			ID:         id,
			Query:      query,
			Answer:     resp.Result,
			Agent:      resp.Agent,
			Success:    resp.Success,
			DurationMs: elapsed.Milliseconds(),
		}
		if err := h.store.SaveRun(ctx, run); err != nil {
			log.Warn().Err(err).Msg("failed to save run to postgres")
		}
	}
	if h.archive != nil && resp.Success {
		rec := archive.Record{
			ID:         id,
			Query:      query,
			Answer:     resp.Result,
			Agent:      resp.Agent,
			DurationMs: elapsed.Milliseconds(),
			CreatedAt:  time.Now().UTC(),
		}
		if err := h.archive.Save(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("failed to archive run to elasticsearch")
		}
	}
}

func withErr(meta map[string]interface{}, errMsg string) map[string]interface{} {
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["error"] = errMsg
	return meta
}
