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

// QuestionsDependencies defines the interface for session generation.
type QuestionsDependencies interface {
	GenerateSession(ctx context.Context, ownerID, jobDescription, jobRequirements, difficulty string) (model.Session, error)
}

// QuestionsHandler handles session generation requests.
type QuestionsHandler struct {
	deps QuestionsDependencies
}

// NewQuestionsHandler creates a new questions handler.
func NewQuestionsHandler(deps QuestionsDependencies) *QuestionsHandler {
	return &QuestionsHandler{deps: deps}
}

// generateRequest mirrors the request schema for POST /api/questions.
type generateRequest struct {
	Email           string `json:"email"`
	JobDescription  string `json:"job_description"`
	JobRequirements string `json:"job_requirements"`
	InterviewLevel  string `json:"interview_level"`
}

func (g generateRequest) validate() error {
	switch {
	case strings.TrimSpace(g.Email) == "":
		return errors.New("missing email")
	case strings.TrimSpace(g.JobDescription) == "":
		return errors.New("missing job_description")
	case strings.TrimSpace(g.JobRequirements) == "":
		return errors.New("missing job_requirements")
	case strings.TrimSpace(g.InterviewLevel) == "":
		return errors.New("missing interview_level")
	}
	return nil
}

// HandleGenerate handles POST /api/questions requests.
func (h *QuestionsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err)
		return
	}

	sess, err := h.deps.GenerateSession(r.Context(), req.Email, req.JobDescription, req.JobRequirements, req.InterviewLevel)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}
