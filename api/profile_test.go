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

func newProfileHandler(m *mock.Mocks) *api.ProfileHandler {
	return api.NewProfileHandler(m.Profiles, m.Skills, m.Experiences)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("CreatesProfileAndSkillsFromArray", func(t *testing.T) {
		mocks := mock.NewMocks()
		user := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
		handler := newProfileHandler(mocks)

		body := map[string]any{
			"full_name":    "Sam Tudent",
			"current_goal": "Pass the interview",
			"skills":       []string{"Go", " SQL ", ""},
		}
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/user/profile", jsonBody(t, body)), user)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		profile, err := mocks.Profiles.GetByUserID(context.Background(), user.ID)
		if err != nil || profile == nil {
			t.Fatalf("profile not stored: %v", err)
		}
		if profile.FullName != "Sam Tudent" || profile.CurrentGoal != "Pass the interview" {
			t.Fatalf("unexpected profile: %+v", profile)
		}
		skills, err := mocks.Skills.ListSkillsByUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("list skills: %v", err)
		}
		if len(skills) != 2 || skills[0].Name != "Go" || skills[1].Name != "SQL" {
			t.Fatalf("unexpected skills: %+v", skills)
		}
	})

	t.Run("ReplacesSkillsFromCommaString", func(t *testing.T) {
		mocks := mock.NewMocks()
		user := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
		handler := newProfileHandler(mocks)

		if err := mocks.Skills.ReplaceForUser(context.Background(), user.ID, []string{"Java", "Spring"}); err != nil {
			t.Fatalf("seed skills: %v", err)
		}

		body := map[string]any{"skills": "Go, Kubernetes"}
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/user/profile", jsonBody(t, body)), user)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		skills, err := mocks.Skills.ListSkillsByUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("list skills: %v", err)
		}
		if len(skills) != 2 || skills[0].Name != "Go" || skills[1].Name != "Kubernetes" {
			t.Fatalf("old skills must be replaced: %+v", skills)
		}
	})

	t.Run("AbsentFieldsKeepValues", func(t *testing.T) {
		mocks := mock.NewMocks()
		user := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
		mocks.Profiles.Set(models.ProfileInfo{UserID: user.ID, Bio: "old bio", University: "MIT"})
		handler := newProfileHandler(mocks)

		body := map[string]any{"bio": "new bio"}
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/user/profile", jsonBody(t, body)), user)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		profile, _ := mocks.Profiles.GetByUserID(context.Background(), user.ID)
		if profile.Bio != "new bio" || profile.University != "MIT" {
			t.Fatalf("absent field overwritten: %+v", profile)
		}
	})
}

func TestGetProfile(t *testing.T) {
	mocks := mock.NewMocks()
	user := seedUser(t, mocks, "stu", "stu@example.com", "pw", models.RoleStudent)
	mocks.Profiles.Set(models.ProfileInfo{UserID: user.ID, FullName: "Sam Tudent", University: "MIT"})
	if err := mocks.Skills.ReplaceForUser(context.Background(), user.ID, []string{"Go"}); err != nil {
		t.Fatalf("seed skills: %v", err)
	}
	companyID, err := mocks.Companies.CreateCompany(context.Background(), &models.Company{Name: "Acme"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	if _, err := mocks.Experiences.CreateExperience(context.Background(), &models.Experience{
		UserID: user.ID, CompanyID: companyID, Role: "Intern", StartDate: "2025-06-01",
	}); err != nil {
		t.Fatalf("create experience: %v", err)
	}

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), user)
	w := httptest.NewRecorder()
	newProfileHandler(mocks).GetProfile(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Username string `json:"username"`
		Profile  struct {
			FullName   string `json:"full_name"`
			University string `json:"university"`
		} `json:"profile"`
		Skills      []string `json:"skills"`
		Experiences []struct {
			Role    string `json:"role"`
			Company string `json:"company"`
		} `json:"experiences"`
	}
	decodeBody(t, res, &body)

	if body.Username != "stu" || body.Profile.FullName != "Sam Tudent" || body.Profile.University != "MIT" {
		t.Fatalf("unexpected profile payload: %+v", body)
	}
	if len(body.Skills) != 1 || body.Skills[0] != "Go" {
		t.Fatalf("unexpected skills: %+v", body.Skills)
	}
	if len(body.Experiences) != 1 || body.Experiences[0].Company != "Acme" {
		t.Fatalf("unexpected experiences: %+v", body.Experiences)
	}
}
