package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"postcards/application/commands"
	"postcards/application/commands/bus"
	"postcards/application/queries"
	querybus "postcards/application/queries/bus"
	"postcards/pkg/common"
	"postcards/pkg/session"
	"postcards/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostcardHandler handles postcard-related HTTP requests
type PostcardHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewPostcardHandler creates a new postcard handler
func NewPostcardHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *PostcardHandler {
	return &PostcardHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// maxCreateBodyBytes caps the write-back request body; the message
// itself is limited to 2000 runes, so anything near this is abuse.
const maxCreateBodyBytes = 64 * 1024

// CreatePostcardRequest represents the request body for writing back
type CreatePostcardRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	To      string `json:"to,omitempty" validate:"omitempty,max=80"`
	From    string `json:"from,omitempty" validate:"omitempty,max=80"`
	Scene   string `json:"scene,omitempty" validate:"omitempty,max=40"`
}

// CreatePostcardResponse represents the response for a created postcard
type CreatePostcardResponse struct {
	SlugID    string `json:"slugId"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// CreatePostcard handles POST /postcards
func (h *PostcardHandler) CreatePostcard(w http.ResponseWriter, r *http.Request) {
	var req CreatePostcardRequest
	if err := common.ParseJSONBody(r, &req, maxCreateBodyBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// A signed-in visitor's name wins over the body when the body left
	// the sender blank.
	if req.From == "" {
		if visitor, err := session.GetVisitorFromContext(r.Context()); err == nil {
			req.From = visitor.Name
		}
	}

	// Generate the slug here so the response can return it without a
	// follow-up read.
	slugID := "user-" + uuid.New().String()

	cmd := commands.CreatePostcardCommand{
		SlugID:  slugID,
		Message: req.Message,
		To:      req.To,
		From:    req.From,
		Scene:   req.Scene,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create postcard",
			zap.String("slugId", slugID),
			zap.Error(err),
		)
		errText := strings.ToLower(err.Error())
		switch {
		case strings.Contains(errText, "validation"):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(errText, "slug_taken") || strings.Contains(errText, "conflict"):
			h.respondError(w, http.StatusConflict, "Postcard already exists")
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to create postcard")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, CreatePostcardResponse{
		SlugID:    slugID,
		Message:   "Postcard created successfully",
		CreatedAt: utils.NowRFC3339(),
	})
}

// GetPostcard handles GET /postcards/{slugID}
func (h *PostcardHandler) GetPostcard(w http.ResponseWriter, r *http.Request) {
	slugID := chi.URLParam(r, "slugID")
	if slugID == "" {
		h.respondError(w, http.StatusBadRequest, "Slug is required")
		return
	}

	query := queries.GetPostcardQuery{SlugID: slugID}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to get postcard",
			zap.String("slugId", slugID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Postcard not found")
		} else if strings.Contains(err.Error(), "invalid") {
			h.respondError(w, http.StatusBadRequest, "Invalid slug format")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to retrieve postcard")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ListPostcards handles GET /postcards
func (h *PostcardHandler) ListPostcards(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	grouped := r.URL.Query().Get("grouped") == "true"

	query := queries.ListPostcardsQuery{
		Source:  r.URL.Query().Get("source"),
		Scene:   r.URL.Query().Get("scene"),
		Grouped: grouped,
		Limit:   limit,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list postcards", zap.Error(err))
		if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to list postcards")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Helper methods

func (h *PostcardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *PostcardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
