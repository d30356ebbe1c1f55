package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

type DashboardHandler struct {
	userRepo       repository.UserRepo
	profileRepo    repository.ProfileRepo
	experienceRepo repository.ExperienceRepo
	questionRepo   repository.QuestionRepo
	threadRepo     repository.ThreadRepo
	requestRepo    repository.MentorshipRepo
}

func NewDashboardHandler(ur repository.UserRepo, pr repository.ProfileRepo, er repository.ExperienceRepo, qr repository.QuestionRepo, tr repository.ThreadRepo, mr repository.MentorshipRepo) *DashboardHandler {
	return &DashboardHandler{userRepo: ur, profileRepo: pr, experienceRepo: er, questionRepo: qr, threadRepo: tr, requestRepo: mr}
}

// displayName resolves a user's display name: profile full name when set,
// username otherwise.
func displayName(ctx context.Context, profiles repository.ProfileRepo, u *models.User) string {
	profile, err := profiles.GetByUserID(ctx, u.ID)
	if err == nil && profile != nil && profile.FullName != "" {
		return profile.FullName
	}
	return u.Username
}

// currentPosition resolves a mentor's shown job title and company from the
// last inserted experience row, defaulting to "Mentor" at "Unknown".
func currentPosition(ctx context.Context, experiences repository.ExperienceRepo, userID int64) (jobRole, company string) {
	jobRole, company = "Mentor", "Unknown"
	latest, err := experiences.LatestByUser(ctx, userID)
	if err == nil && latest != nil {
		jobRole = latest.Role
		company = latest.CompanyName
	}
	return jobRole, company
}

func (h *DashboardHandler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	ctx := r.Context()

	userName := displayName(ctx, h.profileRepo, user)

	questionCount, err := h.questionRepo.CountQuestionsByUser(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	threadCount, err := h.threadRepo.CountThreadsByUser(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	mentors, err := h.userRepo.ListByRoles(ctx, models.MentorRoles(), 3)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	mentorsData := make([]map[string]any, 0, len(mentors))
	for i := range mentors {
		m := &mentors[i]
		jobRole, company := currentPosition(ctx, h.experienceRepo, m.ID)
		mentorsData = append(mentorsData, map[string]any{
			"id":          m.ID,
			"name":        displayName(ctx, h.profileRepo, m),
			"role":        jobRole,
			"company":     company,
			"trust_score": 95,
		})
	}

	latest, err := h.questionRepo.ListLatest(ctx, 3)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	activity := make([]map[string]any, 0, len(latest))
	for _, q := range latest {
		activity = append(activity, map[string]any{
			"text": fmt.Sprintf("<strong>%s</strong> asked: %s", q.AuthorName, q.Title),
			"time": formatDay(q.Created),
		})
	}

	goal := "Set a goal!"
	if profile, err := h.profileRepo.GetByUserID(ctx, user.ID); err == nil && profile != nil {
		goal = profile.CurrentGoal
	}

	writeJSON(w, map[string]any{
		"user_name": userName,
		"points":    user.Points,
		"stats": map[string]any{
			"questions": questionCount,
			"threads":   threadCount,
			"responses": 0,
			"roadmaps":  0,
		},
		"current_goal": goal,
		"mentors":      mentorsData,
		"activity":     activity,
	}, http.StatusOK)
}

func (h *DashboardHandler) MentorDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsMentor() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}
	ctx := r.Context()

	menteeCount, err := h.requestRepo.CountByMentor(ctx, user.ID, models.RequestAccepted)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	requestCount, err := h.requestRepo.CountByMentor(ctx, user.ID, models.RequestPending)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	unansweredTotal, err := h.questionRepo.CountUnanswered(ctx)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	general, err := h.questionRepo.ListUnanswered(ctx, repository.FilterNonUrgentOnly, 5)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	questionsData := make([]map[string]any, 0, len(general))
	for _, q := range general {
		questionsData = append(questionsData, map[string]any{
			"id":              q.ID,
			"title":           q.Title,
			"content":         q.Content,
			"author":          q.AuthorName,
			"author_initials": initials(q.AuthorName),
			"time":            formatDay(q.Created),
		})
	}

	urgent, err := h.questionRepo.ListUnanswered(ctx, repository.FilterUrgentOnly, 5)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	urgentData := make([]map[string]any, 0, len(urgent))
	for _, q := range urgent {
		urgentData = append(urgentData, map[string]any{
			"id":              q.ID,
			"title":           q.Title,
			"content":         q.Content,
			"author":          q.AuthorName,
			"author_initials": initials(q.AuthorName),
			"time":            formatDay(q.Created),
			"bounty":          q.Bounty,
		})
	}

	writeJSON(w, map[string]any{
		"user_name": displayName(ctx, h.profileRepo, user),
		"stats": map[string]any{
			"mentees":              menteeCount,
			"requests":             requestCount,
			"sessions":             0,
			"unanswered_questions": unansweredTotal,
		},
		"questions":        questionsData,
		"urgent_questions": urgentData,
	}, http.StatusOK)
}
