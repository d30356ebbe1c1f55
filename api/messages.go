package api

import (
	"encoding/json"
	"net/http"
)

type MessagesHandler struct{}

type sendMessageRequest struct {
	RecipientID int64  `json:"recipient_id"`
	Content     string `json:"content"`
}

// SendMessage validates the payload and reports success without storing
// anything. There is no message model yet.
func (h *MessagesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.RecipientID <= 0 || req.Content == "" {
		writeError(w, "Recipient and content are required", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]string{"message": "Message sent successfully"}, http.StatusOK)
}
