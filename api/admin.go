package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	userRepo    repository.UserRepo
	companyRepo repository.CompanyRepo
	pathRepo    repository.CareerPathRepo
	roadmapRepo repository.RoadmapRepo
	threadRepo  repository.ThreadRepo
}

func NewAdminHandler(ur repository.UserRepo, cr repository.CompanyRepo, pr repository.CareerPathRepo, rr repository.RoadmapRepo, tr repository.ThreadRepo) *AdminHandler {
	return &AdminHandler{userRepo: ur, companyRepo: cr, pathRepo: pr, roadmapRepo: rr, threadRepo: tr}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsAdmin() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}
	ctx := r.Context()

	totalUsers, err := h.userRepo.CountUsers(ctx)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	totalMentors, err := h.userRepo.CountByRoles(ctx, models.MentorRoles())
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	totalThreads, err := h.threadRepo.CountThreads(ctx)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	recent, err := h.userRepo.ListUsers(ctx, 5)
	if err != nil {
		writeError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	usersData := make([]map[string]any, 0, len(recent))
	for _, u := range recent {
		usersData = append(usersData, map[string]any{
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
			"joined":   formatDay(u.Created),
		})
	}

	writeJSON(w, map[string]any{
		"user_name": user.Username,
		"stats": map[string]any{
			"users":       totalUsers,
			"mentors":     totalMentors,
			"discussions": totalThreads,
		},
		"users": usersData,
	}, http.StatusOK)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsAdmin() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	users, err := h.userRepo.ListUsers(r.Context(), 0)
	if err != nil {
		writeError(w, "Failed to load users", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]any{
			"id":          u.ID,
			"username":    u.Username,
			"email":       u.Email,
			"role":        u.Role,
			"is_verified": u.IsVerified,
			"joined":      formatDay(u.Created),
		})
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *AdminHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsAdmin() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || targetID <= 0 {
		writeError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	target, err := h.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		writeError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}
	if target == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	if err := h.userRepo.SetVerified(ctx, targetID); err != nil {
		writeError(w, "Failed to verify user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": fmt.Sprintf("User %s verified successfully", target.Username)}, http.StatusOK)
}

// Content reports how much career content exists.
func (h *AdminHandler) Content(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsAdmin() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}
	ctx := r.Context()

	companies, err := h.companyRepo.CountCompanies(ctx)
	if err != nil {
		writeError(w, "Failed to load content stats", http.StatusInternalServerError)
		return
	}
	paths, err := h.pathRepo.CountPaths(ctx)
	if err != nil {
		writeError(w, "Failed to load content stats", http.StatusInternalServerError)
		return
	}
	roadmaps, err := h.roadmapRepo.CountRoadmaps(ctx)
	if err != nil {
		writeError(w, "Failed to load content stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"companies_count": companies,
		"paths_count":     paths,
		"roadmaps_count":  roadmaps,
	}, http.StatusOK)
}
