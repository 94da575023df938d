package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/henry215/partyrsvp/internal/models"
	"github.com/henry215/partyrsvp/internal/services"
)

// RSVPHandler serves the guest-facing invitation and RSVP endpoints. Guests
// are identified only by the UUID in their personalized link; there is no
// guest login.
type RSVPHandler struct {
	rsvpService     services.RSVPServiceInterface
	guestService    services.GuestServiceInterface
	settingsService services.SettingsServiceInterface
}

func NewRSVPHandler(rsvpService services.RSVPServiceInterface, guestService services.GuestServiceInterface, settingsService services.SettingsServiceInterface) *RSVPHandler {
	return &RSVPHandler{
		rsvpService:     rsvpService,
		guestService:    guestService,
		settingsService: settingsService,
	}
}

type InvitationResponse struct {
	Guest    *models.Guest         `json:"guest,omitempty"`
	Settings *models.PartySettings `json:"settings"`
	Error    string                `json:"error,omitempty"`
}

type RSVPRequest struct {
	GuestID string `json:"guestId"`
	Status  string `json:"status"`
}

type ContactRequest struct {
	GuestID string `json:"guestId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type SkipContactRequest struct {
	GuestID string `json:"guestId"`
}

// Invitation returns the guest record and party settings for the invitation
// page. Settings are always present (defaults when unconfigured); an unknown
// guest id still gets the settings so the page can render a friendly
// not-found state with the party details.
func (h *RSVPHandler) Invitation(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetLatest(r.Context())
	if err != nil {
		log.Printf("Error loading party settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	guestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, InvitationResponse{
			Settings: settings,
			Error:    "Invitation not found",
		})
		return
	}

	guest, err := h.guestService.GetByID(r.Context(), guestID)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeJSON(w, http.StatusNotFound, InvitationResponse{
			Settings: settings,
			Error:    "Invitation not found",
		})
		return
	}
	if err != nil {
		log.Printf("Error getting guest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, InvitationResponse{Guest: guest, Settings: settings})
}

func (h *RSVPHandler) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req RSVPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	status := models.RSVPStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	result, err := h.rsvpService.SubmitRSVP(r.Context(), guestID, status)
	if errors.Is(err, services.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "Status must be ACCEPTED or DECLINED")
		return
	}
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Invitation not found")
		return
	}
	if err != nil {
		log.Printf("Error submitting RSVP: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not save your response, please try again")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *RSVPHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	guest, err := h.rsvpService.SubmitContact(r.Context(), guestID, strings.TrimSpace(req.Email), req.Phone)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Invitation not found")
		return
	}
	if err != nil {
		log.Printf("Error saving contact info: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not save your contact info, please try again")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"guest": guest})
}

func (h *RSVPHandler) SkipContact(w http.ResponseWriter, r *http.Request) {
	var req SkipContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	result, err := h.rsvpService.SkipContact(r.Context(), guestID)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Invitation not found")
		return
	}
	if err != nil {
		log.Printf("Error skipping contact info: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SendNotification re-fires the organizer notification for a guest without
// changing the stored RSVP.
func (h *RSVPHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req RSVPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	status := models.RSVPStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	outcome, err := h.rsvpService.ResendNotification(r.Context(), guestID, status)
	if errors.Is(err, services.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "Status must be ACCEPTED or DECLINED")
		return
	}
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Guest not found")
		return
	}
	if errors.Is(err, services.ErrNoRecipients) {
		writeError(w, http.StatusInternalServerError, "No notification recipients configured")
		return
	}
	if err != nil {
		log.Printf("Error sending notification: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
