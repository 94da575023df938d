package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/henry215/partyrsvp/internal/models"
	"github.com/henry215/partyrsvp/internal/services"
)

// SettingsHandler serves the admin party-settings endpoints.
type SettingsHandler struct {
	settingsService services.SettingsServiceInterface
}

func NewSettingsHandler(settingsService services.SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetLatest(r.Context())
	if err != nil {
		log.Printf("Error loading party settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings models.PartySettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.settingsService.Upsert(r.Context(), &settings)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		log.Printf("Error saving party settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// Refresh drops the settings cache so guest pages pick up external edits
// immediately instead of waiting out the TTL.
func (h *SettingsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.Refresh(r.Context()); err != nil {
		log.Printf("Error refreshing settings cache: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	settings, err := h.settingsService.GetLatest(r.Context())
	if err != nil {
		log.Printf("Error loading party settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
