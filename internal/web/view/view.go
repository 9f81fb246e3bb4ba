// Package view renders the HTML pages of the diary. Templates are
// embedded so the binary is self-contained.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"diary/internal/model"
	"diary/internal/services/cards"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages that pair with the layout template
var pageNames = []string{"home", "login", "register", "index", "card", "form_create"}

// FlashMessage is a one-shot notification shown on the next page load
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData holds fields common to every page
type PageData struct {
	Title       string
	CurrentUser string // empty when not logged in
	Flash       *FlashMessage
}

// HomeData is the data for the informational home page
type HomeData struct {
	PageData
}

// LoginData is the data for the login page
type LoginData struct {
	PageData
	Username string // echoed form value
	Error    string
}

// RegisterData is the data for the registration page
type RegisterData struct {
	PageData
	Username string
	Error    string
}

// IndexData is the data for the paginated card list
type IndexData struct {
	PageData
	Page *cards.Page
	// ShowCreateSlot is true when the inline "add card" tile should be
	// rendered; the handler sets it on the last page only.
	ShowCreateSlot bool
	PrevPage       int
	NextPage       int
}

// CardData is the data for the card detail page
type CardData struct {
	PageData
	Card *model.Card
}

// CreateCardData is the data for the card creation form
type CreateCardData struct {
	PageData
	CardTitle string
	Subtitle  string
	Text      string
	Error     string
}

// Renderer renders named pages into the shared layout
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// New parses the embedded templates and returns a Renderer
func New(logger *slog.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		templates[name] = t
	}
	return &Renderer{templates: templates, logger: logger}, nil
}

// Render writes the named page to the response. Template failures are
// logged and surfaced as a 500; they never panic.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.logger.Error("unknown template", slog.String("name", name))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		r.logger.Error("template render failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
