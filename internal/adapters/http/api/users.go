// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
)

// UsersDependencies defines the interface for user profile operations.
type UsersDependencies interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// UsersHandler handles user profile requests.
type UsersHandler struct {
	deps UsersDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UsersDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// createUserRequest mirrors the request schema for POST /api/user.
type createUserRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ResumeImage string `json:"resume_image"`
}

// HandleCreate handles POST /api/user requests. Field validation and the
// email/phone uniqueness checks live in the service layer.
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", ErrBadRequest)
		return
	}

	created, err := h.deps.CreateUser(r.Context(), model.User{
		Name:        req.Name,
		Age:         req.Age,
		Phone:       req.Phone,
		Email:       req.Email,
		ResumeImage: req.ResumeImage,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleList handles GET /api/users requests. Users come back ordered by
// badge score descending.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	users, err := h.deps.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
