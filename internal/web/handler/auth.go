package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"diary/internal/model"
	"diary/internal/services/auth"
	"diary/internal/web/middleware"
	"diary/internal/web/view"
)

// AuthHandler handles registration, login, logout and the protected probe page
type AuthHandler struct {
	authService *auth.Service
	renderer    *view.Renderer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, renderer *view.Renderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		renderer:    renderer,
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, "register", view.RegisterData{
		PageData: view.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
	})
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, "Invalid form data", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			h.renderRegisterError(w, "That username is already taken", username)
		case errors.Is(err, model.ErrValidation):
			h.renderRegisterError(w, validationMessage(err), username)
		default:
			h.renderRegisterError(w, "Registration failed, please try again", username)
		}
		return
	}

	middleware.SetFlash(w, "success", "Account created, please log in")
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, "login", view.LoginData{
		PageData: view.PageData{
			Title: "Log in",
			Flash: middleware.GetFlash(r.Context()),
		},
	})
}

// Login handles login form submission.
// Failures re-render the form without saying whether the username or
// the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, "Invalid form data", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, "Invalid username or password", username)
		return
	}

	setSessionCookie(w, session.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the current session and sends the user to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		_ = h.authService.Logout(r.Context(), cookie.Value)
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// Protected returns a plaintext confirmation of the logged-in identity
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Protected area!  Logged in as: %s", user.Username)
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, errorMsg, username string) {
	h.renderer.Render(w, "register", view.RegisterData{
		PageData: view.PageData{Title: "Register"},
		Username: username,
		Error:    errorMsg,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, errorMsg, username string) {
	h.renderer.Render(w, "login", view.LoginData{
		PageData: view.PageData{Title: "Log in"},
		Username: username,
		Error:    errorMsg,
	})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// validationMessage turns a wrapped model.ErrValidation into the
// user-facing part of the message.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := model.ErrValidation.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.ToUpper(msg[len(prefix):len(prefix)+1]) + msg[len(prefix)+1:]
	}
	return msg
}
