package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ascendhq/ascend/api"
	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository/mock"
)

func newDashboardHandler(m *mock.Mocks) *api.DashboardHandler {
	return api.NewDashboardHandler(m.Users, m.Profiles, m.Experiences, m.Questions, m.Threads, m.Requests)
}

func TestStudentDashboard(t *testing.T) {
	mocks := mock.NewMocks()
	student := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
	mentor := seedUser(t, mocks, "men", "men@example.com", "pw", models.RoleMentor)
	mocks.Profiles.Set(models.ProfileInfo{UserID: student.ID, FullName: "Sam Tudent", CurrentGoal: "Land an internship"})

	ctx := context.Background()
	acme, err := mocks.Companies.CreateCompany(ctx, &models.Company{Name: "Acme"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	globex, err := mocks.Companies.CreateCompany(ctx, &models.Company{Name: "Globex"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}

	// The first row has the later end date; the second is inserted last and
	// must still win as the mentor's shown position.
	if _, err := mocks.Experiences.CreateExperience(ctx, &models.Experience{
		UserID: mentor.ID, CompanyID: acme, Role: "Engineer", EndDate: "2026-01-01",
	}); err != nil {
		t.Fatalf("create experience: %v", err)
	}
	if _, err := mocks.Experiences.CreateExperience(ctx, &models.Experience{
		UserID: mentor.ID, CompanyID: globex, Role: "Manager", EndDate: "2024-01-01",
	}); err != nil {
		t.Fatalf("create experience: %v", err)
	}

	seedQuestion(t, mocks, student.ID, "how do I start", false, 0)
	if _, err := mocks.Threads.CreateThread(ctx, &models.DiscussionThread{UserID: student.ID, Title: "intro"}); err != nil {
		t.Fatalf("create thread: %v", err)
	}

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), student)
	w := httptest.NewRecorder()
	newDashboardHandler(mocks).StudentDashboard(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		UserName string `json:"user_name"`
		Points   int64  `json:"points"`
		Stats    struct {
			Questions int64 `json:"questions"`
			Threads   int64 `json:"threads"`
			Responses int64 `json:"responses"`
			Roadmaps  int64 `json:"roadmaps"`
		} `json:"stats"`
		CurrentGoal string `json:"current_goal"`
		Mentors     []struct {
			Name       string `json:"name"`
			Role       string `json:"role"`
			Company    string `json:"company"`
			TrustScore int    `json:"trust_score"`
		} `json:"mentors"`
		Activity []struct {
			Text string `json:"text"`
		} `json:"activity"`
	}
	decodeBody(t, res, &body)

	if body.UserName != "Sam Tudent" || body.Points != 100 || body.CurrentGoal != "Land an internship" {
		t.Fatalf("unexpected header fields: %+v", body)
	}
	if body.Stats.Questions != 1 || body.Stats.Threads != 1 || body.Stats.Responses != 0 || body.Stats.Roadmaps != 0 {
		t.Fatalf("unexpected stats: %+v", body.Stats)
	}
	if len(body.Mentors) != 1 {
		t.Fatalf("expected one recommended mentor, got %d", len(body.Mentors))
	}
	m := body.Mentors[0]
	if m.Role != "Manager" || m.Company != "Globex" {
		t.Fatalf("expected last inserted experience to win, got %+v", m)
	}
	if m.TrustScore != 95 {
		t.Fatalf("expected trust score 95, got %d", m.TrustScore)
	}
	if len(body.Activity) != 1 || body.Activity[0].Text != "<strong>Sam Tudent</strong> asked: how do I start" {
		t.Fatalf("unexpected activity: %+v", body.Activity)
	}
}

func TestMentorDashboard(t *testing.T) {
	mocks := mock.NewMocks()
	student := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
	mentor := seedUser(t, mocks, "men", "men@example.com", "pw", models.RoleMentor)
	handler := newDashboardHandler(mocks)

	t.Run("StudentForbidden", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/mentor/dashboard", nil), student)
		w := httptest.NewRecorder()
		handler.MentorDashboard(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	ctx := context.Background()
	if _, err := mocks.Requests.CreateRequest(ctx, &models.MentorshipRequest{
		StudentID: student.ID, MentorID: mentor.ID, Message: "hi",
	}); err != nil {
		t.Fatalf("create request: %v", err)
	}

	seedQuestion(t, mocks, student.ID, "general one", false, 0)
	seedQuestion(t, mocks, student.ID, "urgent small", true, 10)
	seedQuestion(t, mocks, student.ID, "urgent big", true, 50)

	t.Run("StatsAndQueues", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/mentor/dashboard", nil), mentor)
		w := httptest.NewRecorder()
		handler.MentorDashboard(w, req)

		res := w.Result()
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", res.StatusCode)
		}

		var body struct {
			Stats struct {
				Mentees    int64 `json:"mentees"`
				Requests   int64 `json:"requests"`
				Unanswered int64 `json:"unanswered_questions"`
			} `json:"stats"`
			Questions []struct {
				Title string `json:"title"`
			} `json:"questions"`
			Urgent []struct {
				Title  string `json:"title"`
				Bounty int64  `json:"bounty"`
			} `json:"urgent_questions"`
		}
		decodeBody(t, res, &body)

		if body.Stats.Mentees != 0 || body.Stats.Requests != 1 || body.Stats.Unanswered != 3 {
			t.Fatalf("unexpected stats: %+v", body.Stats)
		}
		if len(body.Questions) != 1 || body.Questions[0].Title != "general one" {
			t.Fatalf("unexpected general queue: %+v", body.Questions)
		}
		if len(body.Urgent) != 2 || body.Urgent[0].Title != "urgent big" || body.Urgent[0].Bounty != 50 {
			t.Fatalf("urgent queue must be bounty first: %+v", body.Urgent)
		}
	})
}
