package api

import (
	"context"
	"net/http"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

type MentorsHandler struct {
	userRepo       repository.UserRepo
	profileRepo    repository.ProfileRepo
	experienceRepo repository.ExperienceRepo
	requestRepo    repository.MentorshipRepo
}

func NewMentorsHandler(ur repository.UserRepo, pr repository.ProfileRepo, er repository.ExperienceRepo, mr repository.MentorshipRepo) *MentorsHandler {
	return &MentorsHandler{userRepo: ur, profileRepo: pr, experienceRepo: er, requestRepo: mr}
}

func (h *MentorsHandler) mentorCard(ctx context.Context, m *models.User) map[string]any {
	jobRole, company := currentPosition(ctx, h.experienceRepo, m.ID)

	name := m.Username
	bio := "No bio available."
	if profile, err := h.profileRepo.GetByUserID(ctx, m.ID); err == nil && profile != nil {
		bio = profile.Bio
		if profile.FullName != "" {
			name = profile.FullName
		}
	}

	return map[string]any{
		"id":       m.ID,
		"name":     name,
		"role":     jobRole,
		"company":  company,
		"bio":      bio,
		"initials": initials(name),
	}
}

// ListMentors returns every alumni and mentor account as a mentor card.
func (h *MentorsHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mentors, err := h.userRepo.ListByRoles(ctx, models.MentorRoles(), 0)
	if err != nil {
		writeError(w, "Failed to load mentors", http.StatusInternalServerError)
		return
	}

	cards := make([]map[string]any, 0, len(mentors))
	for i := range mentors {
		cards = append(cards, h.mentorCard(ctx, &mentors[i]))
	}
	writeJSON(w, cards, http.StatusOK)
}

// ConnectedMentors returns the mentors whose requests from this student
// were accepted.
func (h *MentorsHandler) ConnectedMentors(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	ctx := r.Context()

	mentors, err := h.requestRepo.ListMentorsForStudent(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load mentors", http.StatusInternalServerError)
		return
	}

	cards := make([]map[string]any, 0, len(mentors))
	for i := range mentors {
		cards = append(cards, h.mentorCard(ctx, &mentors[i]))
	}
	writeJSON(w, cards, http.StatusOK)
}
