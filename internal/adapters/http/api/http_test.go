package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CulturalProfessor/mettl-hack/internal/adapters/http/api"
	repository "github.com/CulturalProfessor/mettl-hack/internal/adapters/repository"
	service "github.com/CulturalProfessor/mettl-hack/internal/app"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/questions"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies implements api.Dependencies with injectable results.
type mockDependencies struct {
	session  model.Session
	sessions []model.Session
	user     model.User
	users    []model.User
	score    int
	total    float64

	generateErr error
	submitErr   error
	totalErr    error
	badgeErr    error
	listErr     error
	createErr   error
	usersErr    error
}

func (m *mockDependencies) GenerateSession(ctx context.Context, ownerID, jobDescription, jobRequirements, difficulty string) (model.Session, error) {
	if m.generateErr != nil {
		return model.Session{}, m.generateErr
	}
	return m.session, nil
}

func (m *mockDependencies) SubmitAnswer(ctx context.Context, sessionID, ownerID string, slotIndex int, answer, difficulty string) (int, float64, error) {
	if m.submitErr != nil {
		return 0, 0, m.submitErr
	}
	return m.score, m.total, nil
}

func (m *mockDependencies) SessionTotal(ctx context.Context, sessionID, ownerID string) (float64, error) {
	if m.totalErr != nil {
		return 0, m.totalErr
	}
	return m.total, nil
}

func (m *mockDependencies) UserBadge(ctx context.Context, email string) (model.User, error) {
	if m.badgeErr != nil {
		return model.User{}, m.badgeErr
	}
	return m.user, nil
}

func (m *mockDependencies) ListSessions(ctx context.Context, ownerID string) ([]model.Session, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sessions, nil
}

func (m *mockDependencies) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if m.createErr != nil {
		return model.User{}, m.createErr
	}
	u.BadgeTier = model.TierNewbie
	return u, nil
}

func (m *mockDependencies) ListUsers(ctx context.Context) ([]model.User, error) {
	if m.usersErr != nil {
		return nil, m.usersErr
	}
	return m.users, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func tenQuestions() []string {
	qs := make([]string, model.SlotCount)
	for i := range qs {
		qs[i] = fmt.Sprintf("Q%d", i)
	}
	return qs
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newTestMux(&mockDependencies{})

		Convey("Then the health endpoint should be accessible", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should be accessible", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "started")
		})
	})
}

func TestQuestionsEndpoint(t *testing.T) {
	Convey("Given the questions endpoint", t, func() {
		sess, err := model.NewSession("sess-1", "a@b.com", tenQuestions())
		So(err, ShouldBeNil)

		Convey("When posting a valid generation request", func() {
			mux := newTestMux(&mockDependencies{session: sess})
			w := postJSON(mux, "/api/questions", `{
				"email": "a@b.com",
				"job_description": "Backend engineer",
				"job_requirements": "Go",
				"interview_level": "medium"
			}`)

			Convey("Then it should return 201 with the session", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				var got model.Session
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.ID, ShouldEqual, "sess-1")
				So(len(got.Slots), ShouldEqual, model.SlotCount)
			})
		})

		Convey("When posting with a missing field", func() {
			mux := newTestMux(&mockDependencies{session: sess})
			w := postJSON(mux, "/api/questions", `{"email": "a@b.com"}`)

			Convey("Then it should return 400 validation", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "validation")
			})
		})

		Convey("When posting malformed JSON", func() {
			mux := newTestMux(&mockDependencies{session: sess})
			w := postJSON(mux, "/api/questions", `{not json`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When generation fails upstream", func() {
			mux := newTestMux(&mockDependencies{generateErr: fmt.Errorf("model said no: %w", questions.ErrGeneration)})
			w := postJSON(mux, "/api/questions", `{
				"email": "a@b.com",
				"job_description": "Backend engineer",
				"job_requirements": "Go",
				"interview_level": "medium"
			}`)

			Convey("Then it should return 500 generation_failed without upstream detail", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "generation_failed")
				So(w.Body.String(), ShouldNotContainSubstring, "model said no")
			})
		})

		Convey("When using the wrong method", func() {
			mux := newTestMux(&mockDependencies{session: sess})
			req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSubmitEndpoint(t *testing.T) {
	validBody := `{
		"email": "a@b.com",
		"session_id": "sess-1",
		"question_index": 3,
		"answer": "Channels share memory by communicating.",
		"interview_level": "medium"
	}`

	Convey("Given the submit endpoint", t, func() {
		Convey("When submitting a valid answer", func() {
			mux := newTestMux(&mockDependencies{score: 8, total: 0.8})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return 200 with score and total", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got struct {
					Score      int     `json:"score"`
					TotalScore float64 `json:"total_score"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Score, ShouldEqual, 8)
				So(got.TotalScore, ShouldEqual, 0.8)
			})
		})

		Convey("When the question index is missing", func() {
			mux := newTestMux(&mockDependencies{})
			w := postJSON(mux, "/api/submit", `{
				"email": "a@b.com",
				"session_id": "sess-1",
				"answer": "something"
			}`)

			Convey("Then it should return 400 validation", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "question_index")
			})
		})

		Convey("When the slot index is out of range", func() {
			mux := newTestMux(&mockDependencies{submitErr: fmt.Errorf("%w: slot 10 outside [0,10)", model.ErrSlotIndex)})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return 400 validation", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "validation")
			})
		})

		Convey("When the caller does not own the session", func() {
			mux := newTestMux(&mockDependencies{submitErr: fmt.Errorf("session sess-1: %w", service.ErrUnauthorized)})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return 403 unauthorized", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
				So(w.Body.String(), ShouldContainSubstring, "unauthorized")
			})
		})

		Convey("When the session does not exist", func() {
			mux := newTestMux(&mockDependencies{submitErr: fmt.Errorf("session sess-1: %w", repository.ErrNotFound)})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return 404 not_found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "not_found")
			})
		})

		Convey("When a concurrent submission wins the same slot", func() {
			mux := newTestMux(&mockDependencies{submitErr: fmt.Errorf("session sess-1 slot 3: %w", service.ErrConflict)})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return 409 conflict", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(w.Body.String(), ShouldContainSubstring, "conflict")
			})
		})

		Convey("When scoring fails upstream", func() {
			upstream := fmt.Errorf("%w: Post %q: 401 Incorrect API key sk-test-123",
				scoring.ErrScoring, "https://api.openai.com/v1/chat/completions")
			mux := newTestMux(&mockDependencies{submitErr: upstream})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return 500 scoring_failed", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "scoring_failed")
			})

			Convey("And the provider internals must not reach the caller", func() {
				So(w.Body.String(), ShouldNotContainSubstring, "sk-test-123")
				So(w.Body.String(), ShouldNotContainSubstring, "api.openai.com")

				var got struct {
					Message string `json:"message"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Message, ShouldEqual, scoring.ErrScoring.Error())
			})
		})

		Convey("When an unclassified error escapes the service", func() {
			mux := newTestMux(&mockDependencies{submitErr: fmt.Errorf("dial tcp 10.0.0.7:5432: connection refused")})
			w := postJSON(mux, "/api/submit", validBody)

			Convey("Then it should return a generic 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "internal_error")
				So(w.Body.String(), ShouldNotContainSubstring, "10.0.0.7")
			})
		})
	})
}

func TestTotalEndpoint(t *testing.T) {
	Convey("Given the total endpoint", t, func() {
		Convey("When requesting an owned session total", func() {
			mux := newTestMux(&mockDependencies{total: 5.6})
			w := postJSON(mux, "/api/total", `{"email": "a@b.com", "session_id": "sess-1"}`)

			Convey("Then it should return 200 with the total", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got struct {
					TotalScore float64 `json:"total_score"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.TotalScore, ShouldEqual, 5.6)
			})
		})

		Convey("When the session id is missing", func() {
			mux := newTestMux(&mockDependencies{})
			w := postJSON(mux, "/api/total", `{"email": "a@b.com"}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the session belongs to someone else", func() {
			mux := newTestMux(&mockDependencies{totalErr: fmt.Errorf("session sess-1: %w", service.ErrUnauthorized)})
			w := postJSON(mux, "/api/total", `{"email": "a@b.com", "session_id": "sess-1"}`)

			Convey("Then it should return 403", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
			})
		})
	})
}

func TestBadgeEndpoint(t *testing.T) {
	Convey("Given the badge endpoint", t, func() {
		Convey("When recomputing a known user's badge", func() {
			mux := newTestMux(&mockDependencies{user: model.User{
				Email:      "a@b.com",
				BadgeTier:  model.TierAdvanced,
				BadgeScore: 7.5,
			}})
			w := postJSON(mux, "/api/badge", `{"email": "a@b.com"}`)

			Convey("Then it should return 200 with tier and score", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got struct {
					Badge      string  `json:"badge"`
					BadgeScore float64 `json:"badge_score"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Badge, ShouldEqual, string(model.TierAdvanced))
				So(got.BadgeScore, ShouldEqual, 7.5)
			})
		})

		Convey("When the user does not exist", func() {
			mux := newTestMux(&mockDependencies{badgeErr: fmt.Errorf("user a@b.com: %w", repository.ErrNotFound)})
			w := postJSON(mux, "/api/badge", `{"email": "a@b.com"}`)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the email is missing", func() {
			mux := newTestMux(&mockDependencies{})
			w := postJSON(mux, "/api/badge", `{}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestInterviewsEndpoint(t *testing.T) {
	Convey("Given the interviews endpoint", t, func() {
		sess, err := model.NewSession("sess-1", "a@b.com", tenQuestions())
		So(err, ShouldBeNil)

		Convey("When listing sessions for an owner", func() {
			mux := newTestMux(&mockDependencies{sessions: []model.Session{sess}})
			w := postJSON(mux, "/api/interviews", `{"email": "a@b.com"}`)

			Convey("Then it should return 200 with the sessions", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []model.Session
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "sess-1")
			})
		})

		Convey("When the owner has no sessions", func() {
			mux := newTestMux(&mockDependencies{})
			w := postJSON(mux, "/api/interviews", `{"email": "a@b.com"}`)

			Convey("Then it should return 200 with an empty array", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}

func TestUserEndpoints(t *testing.T) {
	Convey("Given the user endpoints", t, func() {
		Convey("When creating a valid user", func() {
			mux := newTestMux(&mockDependencies{})
			w := postJSON(mux, "/api/user", `{
				"name": "Ada",
				"age": 30,
				"phone": "1234567890",
				"email": "ada@b.com",
				"resume_image": "https://example.com/r.png"
			}`)

			Convey("Then it should return 201 with the created user", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				var got model.User
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Email, ShouldEqual, "ada@b.com")
				So(got.BadgeTier, ShouldEqual, model.TierNewbie)
			})
		})

		Convey("When the service rejects the user as invalid", func() {
			mux := newTestMux(&mockDependencies{createErr: fmt.Errorf("%w: phone number must be a 10-digit string", service.ErrValidation)})
			w := postJSON(mux, "/api/user", `{"name": "Ada", "age": 30, "phone": "123", "email": "ada@b.com", "resume_image": "x"}`)

			Convey("Then it should return 400 validation", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "validation")
			})
		})

		Convey("When the email or phone is already taken", func() {
			mux := newTestMux(&mockDependencies{createErr: fmt.Errorf("user ada@b.com: %w", repository.ErrAlreadyExists)})
			w := postJSON(mux, "/api/user", `{"name": "Ada", "age": 30, "phone": "1234567890", "email": "ada@b.com", "resume_image": "x"}`)

			Convey("Then it should return 400 already_exists", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "already_exists")
			})
		})

		Convey("When listing users", func() {
			mux := newTestMux(&mockDependencies{users: []model.User{
				{Email: "top@b.com", BadgeTier: model.TierExpert, BadgeScore: 10},
				{Email: "mid@b.com", BadgeTier: model.TierIntermediate, BadgeScore: 5},
			}})
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 200 with the ordered users", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []model.User
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].Email, ShouldEqual, "top@b.com")
			})
		})

		Convey("When posting to the list endpoint", func() {
			mux := newTestMux(&mockDependencies{})
			w := postJSON(mux, "/api/users", `{}`)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
