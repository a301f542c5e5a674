package handlers

import (
	"encoding/json"
	"net/http"

	"postcards/application/queries"
	querybus "postcards/application/queries/bus"
	"postcards/domain/narrative"
	"postcards/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FlowHandler handles story flow HTTP requests
type FlowHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewFlowHandler creates a new flow handler
func NewFlowHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *FlowHandler {
	return &FlowHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetFlow handles GET /flow
func (h *FlowHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetFlowQuery{})
	if err != nil {
		h.logger.Error("Failed to build flow", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to build flow")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// AdvanceRequest represents the request body for advancing the walk
type AdvanceRequest struct {
	CurrentID string `json:"currentId" validate:"required,max=120"`
}

// Advance handles POST /flow/advance
func (h *FlowHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.AdvanceFlowQuery{CurrentID: req.CurrentID})
	if err != nil {
		h.logger.Error("Failed to advance flow",
			zap.String("currentId", req.CurrentID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Failed to advance flow")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetChoices handles GET /choices/{choiceSetID}
func (h *FlowHandler) GetChoices(w http.ResponseWriter, r *http.Request) {
	choiceSetID := chi.URLParam(r, "choiceSetID")
	if choiceSetID == "" {
		h.respondError(w, http.StatusBadRequest, "Choice set ID is required")
		return
	}

	set, ok := narrative.ChoiceSetFor(choiceSetID)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Choice set not found")
		return
	}

	h.respondJSON(w, http.StatusOK, set)
}

// ResolveChoiceRequest represents the request body for resolving a choice
type ResolveChoiceRequest struct {
	ChoiceID string `json:"choiceId" validate:"required,max=120"`
}

// ResolveChoiceResponse represents a resolved choice
type ResolveChoiceResponse struct {
	NextID   string `json:"nextId,omitempty"`
	Resolved bool   `json:"resolved"`
}

// ResolveChoice handles POST /choices/{choiceSetID}/resolve. An unknown
// choice is not an error: the response just reports it unresolved and
// the client keeps its continue button disabled.
func (h *FlowHandler) ResolveChoice(w http.ResponseWriter, r *http.Request) {
	choiceSetID := chi.URLParam(r, "choiceSetID")
	if choiceSetID == "" {
		h.respondError(w, http.StatusBadRequest, "Choice set ID is required")
		return
	}

	var req ResolveChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	nextID, ok := narrative.ResolveChoice(choiceSetID, req.ChoiceID)
	if !ok {
		h.logger.Debug("Unresolved choice",
			zap.String("choiceSetId", choiceSetID),
			zap.String("choiceId", req.ChoiceID),
		)
	}

	h.respondJSON(w, http.StatusOK, ResolveChoiceResponse{
		NextID:   nextID,
		Resolved: ok,
	})
}

// Helper methods

func (h *FlowHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *FlowHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
