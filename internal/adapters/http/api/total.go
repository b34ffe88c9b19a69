// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// TotalDependencies defines the interface for session total queries.
type TotalDependencies interface {
	SessionTotal(ctx context.Context, sessionID, ownerID string) (float64, error)
}

// TotalHandler handles session total requests.
type TotalHandler struct {
	deps TotalDependencies
}

// NewTotalHandler creates a new total handler.
func NewTotalHandler(deps TotalDependencies) *TotalHandler {
	return &TotalHandler{deps: deps}
}

type totalRequest struct {
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}

func (t totalRequest) validate() error {
	switch {
	case strings.TrimSpace(t.Email) == "":
		return errors.New("missing email")
	case strings.TrimSpace(t.SessionID) == "":
		return errors.New("missing session_id")
	}
	return nil
}

type totalResponse struct {
	TotalScore float64 `json:"total_score"`
}

// HandleTotal handles POST /api/total requests.
func (h *TotalHandler) HandleTotal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req totalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err)
		return
	}

	total, err := h.deps.SessionTotal(r.Context(), req.SessionID, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totalResponse{TotalScore: total})
}
