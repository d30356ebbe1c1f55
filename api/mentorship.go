package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
	"github.com/gorilla/mux"
)

type MentorshipHandler struct {
	requestRepo repository.MentorshipRepo
}

func NewMentorshipHandler(mr repository.MentorshipRepo) *MentorshipHandler {
	return &MentorshipHandler{requestRepo: mr}
}

type mentorshipRequestBody struct {
	MentorID int64  `json:"mentor_id"`
	Message  string `json:"message"`
}

func (h *MentorshipHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.CanRequestMentorship() {
		writeError(w, "Only students can request mentorship", http.StatusForbidden)
		return
	}

	var req mentorshipRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.MentorID <= 0 || req.Message == "" {
		writeError(w, "Mentor ID and message are required", http.StatusBadRequest)
		return
	}

	request := models.MentorshipRequest{
		StudentID: user.ID,
		MentorID:  req.MentorID,
		Status:    models.RequestPending,
		Message:   req.Message,
	}
	if _, err := h.requestRepo.CreateRequest(r.Context(), &request); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			writeError(w, "Request already pending", http.StatusBadRequest)
			return
		}
		writeError(w, "Failed to create request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Request sent successfully"}, http.StatusCreated)
}

type respondRequestBody struct {
	Action string `json:"action"`
}

// Respond accepts or rejects a pending request. A second response simply
// overwrites the status.
func (h *MentorshipHandler) Respond(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsMentor() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	requestID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || requestID <= 0 {
		writeError(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	request, err := h.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		writeError(w, "Failed to load request", http.StatusInternalServerError)
		return
	}
	if request == nil {
		writeError(w, "Request not found", http.StatusNotFound)
		return
	}
	if request.MentorID != user.ID {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	var body respondRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var status string
	switch body.Action {
	case "accept":
		status = models.RequestAccepted
	case "reject":
		status = models.RequestRejected
	default:
		writeError(w, "Invalid action", http.StatusBadRequest)
		return
	}

	if err := h.requestRepo.UpdateStatus(ctx, requestID, status); err != nil {
		writeError(w, "Failed to update request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Request " + body.Action + "ed"}, http.StatusOK)
}

// PendingRequests lists requests waiting on this mentor.
func (h *MentorshipHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsMentor() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	requests, err := h.requestRepo.ListByMentor(r.Context(), user.ID, models.RequestPending)
	if err != nil {
		writeError(w, "Failed to load requests", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(requests))
	for _, req := range requests {
		out = append(out, map[string]any{
			"id":       req.ID,
			"name":     req.StudentName,
			"initials": initials(req.StudentName),
			"date":     formatDay(req.Created),
			"message":  req.Message,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

// Mentees lists the students this mentor has accepted.
func (h *MentorshipHandler) Mentees(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.IsMentor() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	requests, err := h.requestRepo.ListByMentor(r.Context(), user.ID, models.RequestAccepted)
	if err != nil {
		writeError(w, "Failed to load mentees", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(requests))
	for _, req := range requests {
		goal := req.StudentGoal
		if goal == "" {
			goal = "No goal set"
		}
		out = append(out, map[string]any{
			"id":       req.StudentID,
			"name":     req.StudentName,
			"initials": initials(req.StudentName),
			"goal":     goal,
		})
	}
	writeJSON(w, out, http.StatusOK)
}
