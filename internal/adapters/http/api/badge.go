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

// BadgeDependencies defines the interface for badge recomputation.
type BadgeDependencies interface {
	UserBadge(ctx context.Context, email string) (model.User, error)
}

// BadgeHandler handles badge requests.
type BadgeHandler struct {
	deps BadgeDependencies
}

// NewBadgeHandler creates a new badge handler.
func NewBadgeHandler(deps BadgeDependencies) *BadgeHandler {
	return &BadgeHandler{deps: deps}
}

type badgeRequest struct {
	Email string `json:"email"`
}

type badgeResponse struct {
	Badge      model.Tier `json:"badge"`
	BadgeScore float64    `json:"badge_score"`
}

// HandleBadge handles POST /api/badge requests. Recomputing an unchanged
// session set returns the same tier and score.
func (h *BadgeHandler) HandleBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req badgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "validation", errors.New("missing email"))
		return
	}

	user, err := h.deps.UserBadge(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse{Badge: user.BadgeTier, BadgeScore: user.BadgeScore})
}
