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

func newAdminHandler(m *mock.Mocks) *api.AdminHandler {
	return api.NewAdminHandler(m.Users, m.Companies, m.Paths, m.Roadmaps, m.Threads)
}

func TestAdminGates(t *testing.T) {
	mocks := mock.NewMocks()
	student := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
	handler := newAdminHandler(mocks)

	endpoints := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
	}{
		{"Dashboard", handler.Dashboard},
		{"ListUsers", handler.ListUsers},
		{"Content", handler.Content},
	}
	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin", nil), student)
			w := httptest.NewRecorder()
			ep.call(w, req)
			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403 for non-admin, got %d", w.Code)
			}
		})
	}
}

func TestVerifyUser(t *testing.T) {
	mocks := mock.NewMocks()
	admin := seedUser(t, mocks, "root", "root@example.com", "pw", models.RoleAdmin)
	mentor := seedUser(t, mocks, "men", "men@example.com", "pw", models.RoleMentor)
	handler := newAdminHandler(mocks)

	t.Run("NotFound", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/verify_user/999", nil), admin)
		req = mux.SetURLVars(req, map[string]string{"id": "999"})
		w := httptest.NewRecorder()
		handler.VerifyUser(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("Success", func(t *testing.T) {
		idStr := strconv.FormatInt(mentor.ID, 10)
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/verify_user/"+idStr, nil), admin)
		req = mux.SetURLVars(req, map[string]string{"id": idStr})
		w := httptest.NewRecorder()
		handler.VerifyUser(w, req)

		res := w.Result()
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", res.StatusCode)
		}
		var body struct {
			Message string `json:"message"`
		}
		decodeBody(t, res, &body)
		if body.Message != "User men verified successfully" {
			t.Fatalf("unexpected message: %q", body.Message)
		}
		stored, _ := mocks.Users.GetUserByID(context.Background(), mentor.ID)
		if !stored.IsVerified {
			t.Fatalf("user not verified in store")
		}
	})
}

func TestAdminDashboardAndContent(t *testing.T) {
	mocks := mock.NewMocks()
	admin := seedUser(t, mocks, "root", "root@example.com", "pw", models.RoleAdmin)
	seedUser(t, mocks, "men", "men@example.com", "pw", models.RoleMentor)
	seedUser(t, mocks, "alu", "alu@example.com", "pw", models.RoleAlumni)
	seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)

	ctx := context.Background()
	if _, err := mocks.Threads.CreateThread(ctx, &models.DiscussionThread{UserID: admin.ID, Title: "welcome"}); err != nil {
		t.Fatalf("create thread: %v", err)
	}
	if _, err := mocks.Companies.CreateCompany(ctx, &models.Company{Name: "Acme"}); err != nil {
		t.Fatalf("create company: %v", err)
	}
	if _, err := mocks.Paths.CreatePath(ctx, &models.CareerPath{Title: "SRE"}); err != nil {
		t.Fatalf("create path: %v", err)
	}
	handler := newAdminHandler(mocks)

	t.Run("Dashboard", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil), admin)
		w := httptest.NewRecorder()
		handler.Dashboard(w, req)

		res := w.Result()
		defer res.Body.Close()
		var body struct {
			UserName string `json:"user_name"`
			Stats    struct {
				Users       int64 `json:"users"`
				Mentors     int64 `json:"mentors"`
				Discussions int64 `json:"discussions"`
			} `json:"stats"`
			Users []struct {
				Username string `json:"username"`
			} `json:"users"`
		}
		decodeBody(t, res, &body)
		if body.UserName != "root" {
			t.Fatalf("unexpected user_name: %q", body.UserName)
		}
		if body.Stats.Users != 4 || body.Stats.Mentors != 2 || body.Stats.Discussions != 1 {
			t.Fatalf("unexpected stats: %+v", body.Stats)
		}
		// Most recent registrations first.
		if len(body.Users) != 4 || body.Users[0].Username != "stu" {
			t.Fatalf("unexpected recent users: %+v", body.Users)
		}
	})

	t.Run("Content", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/content", nil), admin)
		w := httptest.NewRecorder()
		handler.Content(w, req)

		res := w.Result()
		defer res.Body.Close()
		var body struct {
			Companies int64 `json:"companies_count"`
			Paths     int64 `json:"paths_count"`
			Roadmaps  int64 `json:"roadmaps_count"`
		}
		decodeBody(t, res, &body)
		if body.Companies != 1 || body.Paths != 1 || body.Roadmaps != 0 {
			t.Fatalf("unexpected content stats: %+v", body)
		}
	})
}
