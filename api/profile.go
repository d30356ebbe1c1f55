package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

type ProfileHandler struct {
	profileRepo    repository.ProfileRepo
	skillRepo      repository.SkillRepo
	experienceRepo repository.ExperienceRepo
}

func NewProfileHandler(pr repository.ProfileRepo, sr repository.SkillRepo, er repository.ExperienceRepo) *ProfileHandler {
	return &ProfileHandler{profileRepo: pr, skillRepo: sr, experienceRepo: er}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	ctx := r.Context()

	profile, err := h.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	profileData := map[string]any{}
	if profile != nil {
		profileData = map[string]any{
			"bio":             profile.Bio,
			"university":      profile.University,
			"full_name":       profile.FullName,
			"degree":          profile.Degree,
			"graduation_year": profile.GraduationYear,
			"current_goal":    profile.CurrentGoal,
		}
	}

	skillRows, err := h.skillRepo.ListSkillsByUser(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load skills", http.StatusInternalServerError)
		return
	}
	skills := make([]string, 0, len(skillRows))
	for _, s := range skillRows {
		skills = append(skills, s.Name)
	}

	expRows, err := h.experienceRepo.ListExperiencesByUser(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load experiences", http.StatusInternalServerError)
		return
	}
	experiences := make([]map[string]any, 0, len(expRows))
	for _, e := range expRows {
		experiences = append(experiences, map[string]any{
			"role":        e.Role,
			"company":     e.CompanyName,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
			"description": e.Description,
		})
	}

	writeJSON(w, map[string]any{
		"username":    user.Username,
		"email":       user.Email,
		"role":        user.Role,
		"profile":     profileData,
		"skills":      skills,
		"experiences": experiences,
	}, http.StatusOK)
}

// updateProfileRequest uses pointers so absent fields keep their stored
// values. Skills accepts either a comma-separated string or an array.
type updateProfileRequest struct {
	Bio            *string         `json:"bio"`
	University     *string         `json:"university"`
	FullName       *string         `json:"full_name"`
	Degree         *string         `json:"degree"`
	GraduationYear *int64          `json:"graduation_year"`
	CurrentGoal    *string         `json:"current_goal"`
	Skills         json.RawMessage `json:"skills"`
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	ctx := r.Context()

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	profile, err := h.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		profile = &models.ProfileInfo{UserID: user.ID}
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.University != nil {
		profile.University = *req.University
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Degree != nil {
		profile.Degree = *req.Degree
	}
	if req.GraduationYear != nil {
		profile.GraduationYear = *req.GraduationYear
	}
	if req.CurrentGoal != nil {
		profile.CurrentGoal = *req.CurrentGoal
	}

	if err := h.profileRepo.UpsertProfile(ctx, profile); err != nil {
		writeError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	if len(req.Skills) > 0 {
		names, err := parseSkills(req.Skills)
		if err != nil {
			writeError(w, "Invalid skills format", http.StatusBadRequest)
			return
		}
		if err := h.skillRepo.ReplaceForUser(ctx, user.ID, names); err != nil {
			writeError(w, "Failed to update skills", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, map[string]string{"message": "Profile updated successfully"}, http.StatusOK)
}

func parseSkills(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimSkills(list), nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil, err
	}
	return trimSkills(strings.Split(joined, ",")), nil
}

func trimSkills(names []string) []string {
	out := names[:0]
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
