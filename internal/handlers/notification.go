package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/henry215/partyrsvp/internal/services"
)

// NotificationHandler serves the admin email diagnostics endpoint.
type NotificationHandler struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationHandler(notificationService services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type TestEmailRequest struct {
	Recipient string `json:"recipient"`
}

// TestEmail sends a diagnostic email so the admin can verify provider
// configuration without waiting for a real RSVP.
func (h *NotificationHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req TestEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Recipient = strings.TrimSpace(req.Recipient)
	if _, err := mail.ParseAddress(req.Recipient); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient address")
		return
	}

	sent := h.notificationService.SendTest(r.Context(), req.Recipient)
	writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}
