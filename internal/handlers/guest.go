package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/henry215/partyrsvp/internal/models"
	"github.com/henry215/partyrsvp/internal/services"
)

// GuestHandler serves the admin guest-management endpoints.
type GuestHandler struct {
	guestService services.GuestServiceInterface
	baseURL      string
}

func NewGuestHandler(guestService services.GuestServiceInterface, baseURL string) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

type CreateGuestRequest struct {
	Name string `json:"name"`
}

type UpdateGuestRequest struct {
	Status string  `json:"status,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// GuestResponse augments the stored record with the personalized invitation
// link the admin hands out.
type GuestResponse struct {
	*models.Guest
	InvitationURL string `json:"invitation_url"`
}

func (h *GuestHandler) toResponse(guest *models.Guest) GuestResponse {
	return GuestResponse{
		Guest:         guest,
		InvitationURL: h.baseURL + "/" + guest.ID.String(),
	}
}

func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	guests, err := h.guestService.ListAll(r.Context())
	if err != nil {
		log.Printf("Error listing guests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	responses := make([]GuestResponse, 0, len(guests))
	for _, guest := range guests {
		responses = append(responses, h.toResponse(guest))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"guests": responses})
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	guest, err := h.guestService.Create(r.Context(), models.CreateGuestParams{Name: req.Name})
	if errors.Is(err, services.ErrNameRequired) {
		writeError(w, http.StatusBadRequest, "Guest name is required")
		return
	}
	if err != nil {
		log.Printf("Error creating guest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, h.toResponse(guest))
}

func (h *GuestHandler) Get(w http.ResponseWriter, r *http.Request) {
	guestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	guest, err := h.guestService.GetByID(r.Context(), guestID)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Guest not found")
		return
	}
	if err != nil {
		log.Printf("Error getting guest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(guest))
}

// Update lets the admin correct a guest's status or contact info on their
// behalf. Admin status writes go through the guest service directly and do
// not fire notifications.
func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	guestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	var req UpdateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status != "" {
		status := models.RSVPStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "Status must be PENDING, ACCEPTED or DECLINED")
			return
		}
		if err := h.guestService.UpdateStatus(r.Context(), guestID, status); err != nil {
			if errors.Is(err, services.ErrGuestNotFound) {
				writeError(w, http.StatusNotFound, "Guest not found")
				return
			}
			log.Printf("Error updating guest status: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	if req.Email != nil || req.Phone != nil {
		guest, err := h.guestService.GetByID(r.Context(), guestID)
		if errors.Is(err, services.ErrGuestNotFound) {
			writeError(w, http.StatusNotFound, "Guest not found")
			return
		}
		if err != nil {
			log.Printf("Error getting guest: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		params := models.UpdateContactParams{Email: guest.Email, Phone: guest.Phone}
		if req.Email != nil {
			params.Email = normalizeOptional(req.Email)
		}
		if req.Phone != nil {
			params.Phone = normalizeOptional(req.Phone)
		}
		if err := h.guestService.UpdateContact(r.Context(), guestID, params); err != nil {
			log.Printf("Error updating guest contact: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	guest, err := h.guestService.GetByID(r.Context(), guestID)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Guest not found")
		return
	}
	if err != nil {
		log.Printf("Error getting guest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(guest))
}

func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	guestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	err = h.guestService.Delete(r.Context(), guestID)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Guest not found")
		return
	}
	if err != nil {
		log.Printf("Error deleting guest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Guest deleted"})
}

func (h *GuestHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid guest id %q", raw))
			return
		}
		ids = append(ids, id)
	}

	deleted, err := h.guestService.DeleteMany(r.Context(), ids)
	if err != nil {
		log.Printf("Error deleting guests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// QRCode renders the guest's invitation link as a PNG for printing on a
// physical invite.
func (h *GuestHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	guestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}

	guest, err := h.guestService.GetByID(r.Context(), guestID)
	if errors.Is(err, services.ErrGuestNotFound) {
		writeError(w, http.StatusNotFound, "Guest not found")
		return
	}
	if err != nil {
		log.Printf("Error getting guest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	png, err := qrcode.Encode(h.baseURL+"/"+guest.ID.String(), qrcode.Medium, 512)
	if err != nil {
		log.Printf("Error encoding QR code: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invite-"+guest.ID.String()+".png"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// normalizeOptional maps empty or whitespace-only strings to nil so they are
// stored as NULL.
func normalizeOptional(s *string) *string {
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
