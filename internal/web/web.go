package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the embedded tracker pages
type Handler struct {
	templates *template.Template
}

// NewHandler parses the embedded templates
func NewHandler() *Handler {
	return &Handler{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// HandleIndex handles GET / — the daily tracker page
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		log.Printf("WARN web: failed to render index: %v", err)
	}
}

// HandleAbout handles GET /about
func (h *Handler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "about.html", nil); err != nil {
		log.Printf("WARN web: failed to render about: %v", err)
	}
}
