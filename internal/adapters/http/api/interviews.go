// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
)

// InterviewsDependencies defines the interface for session listing.
type InterviewsDependencies interface {
	ListSessions(ctx context.Context, ownerID string) ([]model.Session, error)
}

// InterviewsHandler handles interview listing requests.
type InterviewsHandler struct {
	deps InterviewsDependencies
}

// NewInterviewsHandler creates a new interviews handler.
func NewInterviewsHandler(deps InterviewsDependencies) *InterviewsHandler {
	return &InterviewsHandler{deps: deps}
}

type interviewsRequest struct {
	Email string `json:"email"`
}

// HandleList handles POST /api/interviews requests. Sessions come back
// oldest first.
func (h *InterviewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req interviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "validation", errors.New("missing email"))
		return
	}

	sessions, err := h.deps.ListSessions(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}
