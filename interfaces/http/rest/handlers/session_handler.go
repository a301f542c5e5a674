package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"postcards/pkg/session"
	"postcards/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHandler issues anonymous visitor sessions
type SessionHandler struct {
	tokens *session.TokenManager
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(tokens *session.TokenManager, ttl time.Duration, secure bool, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		tokens: tokens,
		ttl:    ttl,
		secure: secure,
		logger: logger,
	}
}

// CreateSessionRequest represents the request body for starting a session
type CreateSessionRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=80"`
}

// CreateSessionResponse represents an issued session
type CreateSessionResponse struct {
	VisitorID string `json:"visitorId"`
	Name      string `json:"name,omitempty"`
	ExpiresIn int    `json:"expiresIn"`
}

// CreateSession handles POST /session. An existing valid session is
// reused so reloading the page keeps the visitor's identity; only the
// name can change.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	visitorID := ""
	if token := session.TokenFromRequest(r); token != "" {
		if claims, err := h.tokens.Validate(token); err == nil {
			visitorID = claims.VisitorID
			if req.Name == "" {
				req.Name = claims.Name
			}
		}
	}
	if visitorID == "" {
		visitorID = uuid.New().String()
	}

	token, err := h.tokens.Generate(visitorID, req.Name)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	session.SetCookie(w, token, h.ttl, h.secure)

	h.respondJSON(w, http.StatusCreated, CreateSessionResponse{
		VisitorID: visitorID,
		Name:      req.Name,
		ExpiresIn: int(h.ttl.Seconds()),
	})
}

// Helper methods

func (h *SessionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *SessionHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
