// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// SubmitDependencies defines the interface for answer submission.
type SubmitDependencies interface {
	SubmitAnswer(ctx context.Context, sessionID, ownerID string, slotIndex int, answer, difficulty string) (int, float64, error)
}

// SubmitHandler handles answer submission requests.
type SubmitHandler struct {
	deps SubmitDependencies
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps SubmitDependencies) *SubmitHandler {
	return &SubmitHandler{deps: deps}
}

// submitRequest mirrors the request schema for POST /api/submit.
type submitRequest struct {
	Email          string `json:"email"`
	SessionID      string `json:"session_id"`
	QuestionIndex  *int   `json:"question_index"`
	Answer         string `json:"answer"`
	InterviewLevel string `json:"interview_level"`
}

func (s submitRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Email) == "":
		return errors.New("missing email")
	case strings.TrimSpace(s.SessionID) == "":
		return errors.New("missing session_id")
	case s.QuestionIndex == nil:
		return errors.New("missing question_index")
	case strings.TrimSpace(s.Answer) == "":
		return errors.New("missing answer")
	}
	return nil
}

// submitResponse carries the per-answer score and the running session total.
type submitResponse struct {
	Score      int     `json:"score"`
	TotalScore float64 `json:"total_score"`
}

// HandleSubmit handles POST /api/submit requests.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err)
		return
	}

	score, total, err := h.deps.SubmitAnswer(r.Context(), req.SessionID, req.Email, *req.QuestionIndex, req.Answer, req.InterviewLevel)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Score: score, TotalScore: total})
}
