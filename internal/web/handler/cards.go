package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"diary/internal/model"
	"diary/internal/services/cards"
	"diary/internal/web/middleware"
	"diary/internal/web/view"
)

// CardsHandler handles the paginated card list, card detail and creation
type CardsHandler struct {
	cardService *cards.Service
	renderer    *view.Renderer
}

// NewCardsHandler creates a new CardsHandler
func NewCardsHandler(cardService *cards.Service, renderer *view.Renderer) *CardsHandler {
	return &CardsHandler{
		cardService: cardService,
		renderer:    renderer,
	}
}

// Index renders one page of cards. The page number comes from the
// `page` query parameter and defaults to 1 when absent or not a number.
func (h *CardsHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	number := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			number = n
		}
	}

	page, err := h.cardService.Page(r.Context(), number)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "index", view.IndexData{
		PageData: view.PageData{
			Title:       "My cards",
			CurrentUser: user.Username,
			Flash:       middleware.GetFlash(r.Context()),
		},
		Page: page,
		// The create tile belongs on the last page only.
		ShowCreateSlot: !page.HasNext,
		PrevPage:       page.Number - 1,
		NextPage:       page.Number + 1,
	})
}

// Detail renders a single card, or 404 for unknown ids
func (h *CardsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	card, err := h.cardService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrCardNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "card", view.CardData{
		PageData: view.PageData{
			Title:       card.Title,
			CurrentUser: user.Username,
		},
		Card: card,
	})
}

// CreateForm renders the card creation form
func (h *CardsHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	h.renderer.Render(w, "form_create", view.CreateCardData{
		PageData: view.PageData{
			Title:       "New card",
			CurrentUser: user.Username,
		},
	})
}

// Create handles the card creation form submission
func (h *CardsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderCreateError(w, user.Username, "Invalid form data", "", "", "")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	subtitle := strings.TrimSpace(r.FormValue("subtitle"))
	text := strings.TrimSpace(r.FormValue("text"))

	_, err := h.cardService.Create(r.Context(), title, subtitle, text)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicate):
			h.renderCreateError(w, user.Username,
				"A card with that title, subtitle or text already exists", title, subtitle, text)
		case errors.Is(err, model.ErrValidation):
			h.renderCreateError(w, user.Username, validationMessage(err), title, subtitle, text)
		default:
			h.renderCreateError(w, user.Username, "Could not create the card, please try again", title, subtitle, text)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *CardsHandler) renderCreateError(w http.ResponseWriter, username, errorMsg, title, subtitle, text string) {
	h.renderer.Render(w, "form_create", view.CreateCardData{
		PageData: view.PageData{
			Title:       "New card",
			CurrentUser: username,
		},
		CardTitle: title,
		Subtitle:  subtitle,
		Text:      text,
		Error:     errorMsg,
	})
}
