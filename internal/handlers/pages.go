package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"
)

// PageHandler serves the HTML shells. Pages fetch their data from the JSON
// API; the templates only carry the page chrome.
type PageHandler struct {
	templates *template.Template
}

func NewPageHandler(templatesDir string) (*PageHandler, error) {
	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}

	return &PageHandler{templates: templates}, nil
}

type PageData struct {
	Title   string
	GuestID string
}

// Invitation serves the guest-facing RSVP page. Guest lookup happens client
// side via /api/invitation/{id}, so an unknown id still renders the shell.
func (h *PageHandler) Invitation(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:   "You're Invited!",
		GuestID: r.PathValue("id"),
	}
	h.render(w, "invitation.html", data)
}

func (h *PageHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin.html", PageData{Title: "RSVP Dashboard"})
}

func (h *PageHandler) AdminGuest(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:   "Guest Details",
		GuestID: r.PathValue("id"),
	}
	h.render(w, "admin.html", data)
}

// NotFound renders the 404 error page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.templates.ExecuteTemplate(w, "404.html", nil); err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
