package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ascendhq/ascend/api"
	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository/mock"
	"github.com/gorilla/mux"
)

func newCareerHandler(m *mock.Mocks) *api.CareerHandler {
	return api.NewCareerHandler(m.Companies, m.Paths, m.Roadmaps)
}

func TestCreateRoadmap(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "StudentForbidden",
			role:       models.RoleStudent,
			body:       map[string]any{"title": "t", "description": "d"},
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized",
		},
		{
			name:       "MissingTitle",
			role:       models.RoleMentor,
			body:       map[string]any{"description": "d"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Title and description are required",
		},
		{
			name:       "StepsNotAnArray",
			role:       models.RoleMentor,
			body:       map[string]any{"title": "t", "description": "d", "steps": "step one"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Steps must be an array of strings",
		},
		{
			name:       "StepsWrongItemType",
			role:       models.RoleMentor,
			body:       map[string]any{"title": "t", "description": "d", "steps": []any{"learn", 2}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Steps must be an array of strings",
		},
		{
			name:       "MentorSuccess",
			role:       models.RoleMentor,
			body:       map[string]any{"title": "t", "description": "d", "steps": []string{"learn", "build"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "AdminWithoutSteps",
			role:       models.RoleAdmin,
			body:       map[string]any{"title": "t", "description": "d"},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			user := seedUser(t, mocks, "creator", "creator@example.com", "pw", tt.role)
			handler := newCareerHandler(mocks)

			req := withUser(httptest.NewRequest(http.MethodPost, "/api/roadmaps", jsonBody(t, tt.body)), user)
			w := httptest.NewRecorder()
			handler.CreateRoadmap(w, req)

			res := w.Result()
			defer res.Body.Close()
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d", tt.wantStatus, res.StatusCode)
			}
			if tt.wantError != "" {
				var body struct {
					Error string `json:"error"`
				}
				decodeBody(t, res, &body)
				if body.Error != tt.wantError {
					t.Fatalf("expected error %q got %q", tt.wantError, body.Error)
				}
				if len(mocks.Roadmaps.Stored) != 0 {
					t.Fatalf("failed creation must not store a roadmap")
				}
				return
			}

			if len(mocks.Roadmaps.Stored) != 1 {
				t.Fatalf("expected a stored roadmap")
			}
			if mocks.Roadmaps.Stored[0].CreatorID != user.ID {
				t.Fatalf("roadmap not attributed to creator")
			}
		})
	}
}

func TestRoadmapDetail(t *testing.T) {
	mocks := mock.NewMocks()
	creator := seedUser(t, mocks, "creator", "creator@example.com", "pw", models.RoleMentor)
	mocks.Profiles.Set(models.ProfileInfo{UserID: creator.ID, FullName: "Cory Creator"})
	handler := newCareerHandler(mocks)

	id, err := mocks.Roadmaps.CreateRoadmap(context.Background(), &models.Roadmap{
		Title: "Backend 101", Description: "from zero", Steps: `["learn go"]`, CreatorID: creator.ID,
	})
	if err != nil {
		t.Fatalf("create roadmap: %v", err)
	}

	t.Run("Found", func(t *testing.T) {
		idStr := strconv.FormatInt(id, 10)
		req := httptest.NewRequest(http.MethodGet, "/api/career/roadmaps/"+idStr, nil)
		req = mux.SetURLVars(req, map[string]string{"id": idStr})
		w := httptest.NewRecorder()
		handler.RoadmapDetail(w, req)

		res := w.Result()
		defer res.Body.Close()
		var body struct {
			Title       string `json:"title"`
			Steps       string `json:"steps"`
			Creator     string `json:"creator"`
			CreatorRole string `json:"creator_role"`
			Saves       int    `json:"saves"`
		}
		decodeBody(t, res, &body)
		if body.Title != "Backend 101" || body.Creator != "Cory Creator" || body.CreatorRole != "mentor" || body.Saves != 120 {
			t.Fatalf("unexpected detail: %+v", body)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/career/roadmaps/999", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "999"})
		w := httptest.NewRecorder()
		handler.RoadmapDetail(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPublicCareerReads(t *testing.T) {
	mocks := mock.NewMocks()
	ctx := context.Background()
	if _, err := mocks.Companies.CreateCompany(ctx, &models.Company{Name: "Acme", Description: "rockets"}); err != nil {
		t.Fatalf("create company: %v", err)
	}
	if _, err := mocks.Paths.CreatePath(ctx, &models.CareerPath{Title: "SRE", Description: "keep it up"}); err != nil {
		t.Fatalf("create path: %v", err)
	}
	handler := newCareerHandler(mocks)

	t.Run("Companies", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListCompanies(w, httptest.NewRequest(http.MethodGet, "/api/companies", nil))
		var list []struct {
			Name string `json:"name"`
		}
		decodeBody(t, w.Result(), &list)
		if len(list) != 1 || list[0].Name != "Acme" {
			t.Fatalf("unexpected companies: %+v", list)
		}
	})

	t.Run("Paths", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListPaths(w, httptest.NewRequest(http.MethodGet, "/api/career/paths", nil))
		var list []struct {
			Title string `json:"title"`
		}
		decodeBody(t, w.Result(), &list)
		if len(list) != 1 || list[0].Title != "SRE" {
			t.Fatalf("unexpected paths: %+v", list)
		}
	})
}
