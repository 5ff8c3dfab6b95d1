// Package consult exposes the advisory sessions and the metrics engine
// over HTTP for the web frontend.
package consult

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"business_consultant/pkg/core/advisor"
	"business_consultant/pkg/core/agent"
	"business_consultant/pkg/core/calc"
	"business_consultant/pkg/core/consult"
	"business_consultant/pkg/core/llm"
	"business_consultant/pkg/core/scenario"
)

// Generation covers all three advisors in sequence, so the budget is
// generous.
const sessionTimeout = 120 * time.Second

// Handler provides the HTTP handlers for advisory sessions.
type Handler struct {
	agentMgr *agent.Manager
	logger   *zap.Logger
}

// NewHandler creates a new consult handler.
func NewHandler(mgr *agent.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{agentMgr: mgr, logger: logger}
}

// BusinessRequest carries both input sections for a full board session.
type BusinessRequest struct {
	Financial calc.FinancialInputs `json:"financial"`
	Marketing calc.MarketingInputs `json:"marketing"`
}

// orchestrator builds a session wired to the manager's current provider
// selection. Built per request so /api/config/switch takes effect
// immediately.
func (h *Handler) orchestrator() *consult.Orchestrator {
	opts := []consult.Option{consult.WithLogger(h.logger)}
	for _, role := range advisor.Roles() {
		opts = append(opts, consult.WithRoleGenerator(role, h.agentMgr.GeneratorFor(string(role))))
	}
	return consult.NewOrchestrator(h.agentMgr.GeneratorFor(""), opts...)
}

// corsPreflight writes the CORS headers and answers OPTIONS probes.
// Returns true when the request is already handled.
func corsPreflight(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeSessionError maps an advisory session failure to a status code.
// Backend failures are the upstream's fault, everything else is ours.
func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	h.logger.Warn("advisory session failed", zap.Error(err))
	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// HandleBusiness runs the full board session: CFO, CMO, then the CEO
// synthesis.
func (h *Handler) HandleBusiness(w http.ResponseWriter, r *http.Request) {
	if corsPreflight(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	req := BusinessRequest{Financial: scenario.DefaultFinancialInputs()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Financial.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Marketing.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()

	review, err := h.orchestrator().AnalyzeBusiness(ctx, req.Financial, req.Marketing)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, review)
}

// HandleFinancial runs the CFO review alone.
func (h *Handler) HandleFinancial(w http.ResponseWriter, r *http.Request) {
	if corsPreflight(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	in := scenario.DefaultFinancialInputs()
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()

	review, err := h.orchestrator().ReviewFinancials(ctx, in)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, review)
}

// HandleMarketing runs the CMO review alone.
func (h *Handler) HandleMarketing(w http.ResponseWriter, r *http.Request) {
	if corsPreflight(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var in calc.MarketingInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()

	review, err := h.orchestrator().ReviewMarketing(ctx, in)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, review)
}

// HandleFinancialMetrics computes the ratio report without consulting
// any advisor. Pure local math, no backend calls.
func (h *Handler) HandleFinancialMetrics(w http.ResponseWriter, r *http.Request) {
	if corsPreflight(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	in := scenario.DefaultFinancialInputs()
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rep, err := consult.FinancialMetrics(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, rep)
}

// HandleMarketingMetrics computes the unit economics without consulting
// any advisor.
func (h *Handler) HandleMarketingMetrics(w http.ResponseWriter, r *http.Request) {
	if corsPreflight(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var in calc.MarketingInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rep, err := consult.MarketingMetrics(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, rep)
}

// HandleSampleScenario serves the canned demo scenario so the frontend
// can prefill its forms.
func (h *Handler) HandleSampleScenario(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	writeJSON(w, scenario.Sample())
}
