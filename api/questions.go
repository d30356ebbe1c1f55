package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type QuestionsHandler struct {
	userRepo     repository.UserRepo
	questionRepo repository.QuestionRepo
	replyRepo    repository.ReplyRepo
	validate     *validator.Validate
}

func NewQuestionsHandler(ur repository.UserRepo, qr repository.QuestionRepo, rr repository.ReplyRepo) *QuestionsHandler {
	return &QuestionsHandler{userRepo: ur, questionRepo: qr, replyRepo: rr, validate: validator.New()}
}

// ListQuestions returns the full feed, urgent and high-bounty first, each
// question carrying its replies.
func (h *QuestionsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	questions, err := h.questionRepo.ListFeed(ctx)
	if err != nil {
		writeError(w, "Failed to load questions", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		replyRows, err := h.replyRepo.ListByQuestion(ctx, q.ID)
		if err != nil {
			writeError(w, "Failed to load questions", http.StatusInternalServerError)
			return
		}
		replies := make([]map[string]any, 0, len(replyRows))
		for _, rp := range replyRows {
			replies = append(replies, map[string]any{
				"id":          rp.ID,
				"content":     rp.Content,
				"author_name": rp.AuthorName,
				"author_role": rp.AuthorRole,
				"created_at":  formatDay(rp.Created),
			})
		}

		out = append(out, map[string]any{
			"id":              q.ID,
			"title":           q.Title,
			"content":         q.Content,
			"is_urgent":       q.IsUrgent,
			"bounty":          q.Bounty,
			"author_name":     q.AuthorName,
			"author_initials": initials(q.AuthorUsername),
			"created_at":      formatDay(q.Created),
			"replies":         replies,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

type createQuestionRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsUrgent bool   `json:"is_urgent"`
	Bounty   int64  `json:"bounty" validate:"gte=0"`
}

func (h *QuestionsHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "Title and content are required", http.StatusBadRequest)
		return
	}
	if !req.IsUrgent {
		req.Bounty = 0
	}

	ctx := r.Context()

	// The deduction is a single conditional update, so two concurrent
	// bounty posts cannot overdraw the balance.
	remaining := user.Points
	if req.IsUrgent {
		var err error
		remaining, err = h.userRepo.DeductPoints(ctx, user.ID, req.Bounty)
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientPoints) {
				writeError(w, "Insufficient points for this bounty", http.StatusBadRequest)
				return
			}
			writeError(w, "Failed to create question", http.StatusInternalServerError)
			return
		}
	}

	question := models.Question{
		UserID:   user.ID,
		Title:    req.Title,
		Content:  req.Content,
		IsUrgent: req.IsUrgent,
		Bounty:   req.Bounty,
	}
	id, err := h.questionRepo.CreateQuestion(ctx, &question)
	if err != nil {
		writeError(w, "Failed to create question", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"message":          "Question created successfully",
		"id":               id,
		"points_remaining": remaining,
	}, http.StatusCreated)
}

type createReplyRequest struct {
	Content string `json:"content"`
}

func (h *QuestionsHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.CanReply() {
		writeError(w, "Unauthorized role", http.StatusForbidden)
		return
	}
	if user.Role.IsMentor() && !user.IsVerified {
		writeError(w, "Account not verified by admin", http.StatusForbidden)
		return
	}

	var req createReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		writeError(w, "Content is required", http.StatusBadRequest)
		return
	}

	questionID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || questionID <= 0 {
		writeError(w, "Invalid question id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	question, err := h.questionRepo.GetQuestion(ctx, questionID)
	if err != nil {
		writeError(w, "Failed to load question", http.StatusInternalServerError)
		return
	}
	if question == nil {
		writeError(w, "Question not found", http.StatusNotFound)
		return
	}

	reply := models.Reply{
		QuestionID: question.ID,
		UserID:     user.ID,
		Content:    req.Content,
	}
	if _, err := h.replyRepo.CreateReply(ctx, &reply); err != nil {
		writeError(w, "Failed to create reply", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Reply added successfully"}, http.StatusCreated)
}

// MentorQuestions lists every unanswered question for the mentor queue.
func (h *QuestionsHandler) MentorQuestions(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsMentor() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	questions, err := h.questionRepo.ListUnanswered(r.Context(), repository.FilterAll, 0)
	if err != nil {
		writeError(w, "Failed to load questions", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		out = append(out, map[string]any{
			"id":              q.ID,
			"title":           q.Title,
			"content":         q.Content,
			"author":          q.AuthorName,
			"author_initials": initials(q.AuthorName),
			"time":            formatDay(q.Created),
			"is_urgent":       q.IsUrgent,
			"bounty":          q.Bounty,
		})
	}
	writeJSON(w, out, http.StatusOK)
}
