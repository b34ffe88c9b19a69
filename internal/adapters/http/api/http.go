// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/CulturalProfessor/mettl-hack/internal/adapters/repository"
	service "github.com/CulturalProfessor/mettl-hack/internal/app"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/questions"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	GenerateSession(ctx context.Context, ownerID, jobDescription, jobRequirements, difficulty string) (model.Session, error)
	SubmitAnswer(ctx context.Context, sessionID, ownerID string, slotIndex int, answer, difficulty string) (int, float64, error)
	SessionTotal(ctx context.Context, sessionID, ownerID string) (float64, error)
	UserBadge(ctx context.Context, email string) (model.User, error)
	ListSessions(ctx context.Context, ownerID string) ([]model.Session, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	questionsHandler  *QuestionsHandler
	submitHandler     *SubmitHandler
	totalHandler      *TotalHandler
	badgeHandler      *BadgeHandler
	interviewsHandler *InterviewsHandler
	usersHandler      *UsersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		questionsHandler:  NewQuestionsHandler(deps),
		submitHandler:     NewSubmitHandler(deps),
		totalHandler:      NewTotalHandler(deps),
		badgeHandler:      NewBadgeHandler(deps),
		interviewsHandler: NewInterviewsHandler(deps),
		usersHandler:      NewUsersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/questions", MetricsMiddleware(s.questionsHandler.HandleGenerate, "questions"))
	mux.HandleFunc("/api/submit", MetricsMiddleware(s.submitHandler.HandleSubmit, "submit"))
	mux.HandleFunc("/api/total", MetricsMiddleware(s.totalHandler.HandleTotal, "total"))
	mux.HandleFunc("/api/badge", MetricsMiddleware(s.badgeHandler.HandleBadge, "badge"))
	mux.HandleFunc("/api/interviews", MetricsMiddleware(s.interviewsHandler.HandleList, "interviews"))
	mux.HandleFunc("/api/user", MetricsMiddleware(s.usersHandler.HandleCreate, "user"))
	mux.HandleFunc("/api/users", MetricsMiddleware(s.usersHandler.HandleList, "users"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer error kinds into HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, model.ErrSlotIndex):
		writeError(w, http.StatusBadRequest, "validation", err)
	case errors.Is(err, repository.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "already_exists", err)
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	// Collaborator and unknown failures wrap upstream detail (provider
	// messages, URLs, auth errors). The 500-class responses carry only the
	// stable kind; the detail stays in the service logs.
	case errors.Is(err, questions.ErrGeneration):
		writeError(w, http.StatusInternalServerError, "generation_failed", questions.ErrGeneration)
	case errors.Is(err, scoring.ErrScoring):
		writeError(w, http.StatusInternalServerError, "scoring_failed", scoring.ErrScoring)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
