package handler

import (
	"net/http"

	"diary/internal/web/middleware"
	"diary/internal/web/view"
)

// HomeHandler handles the informational home page
type HomeHandler struct {
	renderer *view.Renderer
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(renderer *view.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// Home renders the home page for both anonymous and logged-in visitors
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	var username string
	if user := middleware.GetUser(r.Context()); user != nil {
		username = user.Username
	}

	h.renderer.Render(w, "home", view.HomeData{
		PageData: view.PageData{
			Title:       "Home",
			CurrentUser: username,
			Flash:       middleware.GetFlash(r.Context()),
		},
	})
}
