package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/services/auth"
	"github.com/sportsday/sportsday/internal/web/middleware"
	"github.com/sportsday/sportsday/internal/web/views"
)

// AuthHandler handles the authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Home redirects to the login entry point
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		// Already logged in
		http.Redirect(w, r, dashboardPath(user), http.StatusSeeOther)
		return
	}

	data := views.LoginData{
		PageData: views.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	render(w, r, views.Login(data))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderLoginError(w, r, "Email and password are required", email)
		return
	}

	rec, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Unknown email and wrong password get the same response
			middleware.SetFlash(w, "error", "Invalid email or password")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, rec.Token, rec.ExpiresAt)
	http.Redirect(w, r, dashboardPath(&rec.User), http.StatusSeeOther)
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		http.Redirect(w, r, dashboardPath(user), http.StatusSeeOther)
		return
	}

	data := views.RegisterData{
		PageData: views.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
		FieldErrors: make(map[string]string),
	}
	render(w, r, views.Register(data))
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "", "", "", nil)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	role := model.Role(r.FormValue("role"))

	fieldErrors := make(map[string]string)

	if name == "" {
		fieldErrors["name"] = "Name is required"
	}

	if email == "" {
		fieldErrors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors["email"] = "Email is not valid"
	}

	if password == "" {
		fieldErrors["password"] = "Password is required"
	} else if len(password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}

	if !role.Valid() {
		fieldErrors["role"] = "Role must be admin or player"
	}

	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", name, email, string(role), fieldErrors)
		return
	}

	_, err := h.authService.Register(r.Context(), name, email, password, role)
	if err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			fieldErrors["email"] = "Email already registered"
			h.renderRegisterError(w, r, "", name, email, string(role), fieldErrors)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Account created, you can log in now")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout destroys the caller's session, if any, and redirects to login
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		// Destroying an already-gone session is fine
		_ = h.authService.Logout(r.Context(), cookie.Value)
	}

	clearSessionCookie(w)
	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	data := views.LoginData{
		PageData: views.PageData{Title: "Login"},
		Email:    email,
		Error:    errorMsg,
	}
	render(w, r, views.Login(data))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, name, email, role string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := views.RegisterData{
		PageData:    views.PageData{Title: "Register"},
		Name:        name,
		Email:       email,
		Role:        role,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}
	render(w, r, views.Register(data))
}

func dashboardPath(user *model.User) string {
	if user.IsAdmin() {
		return "/admin-dashboard"
	}
	return "/player-dashboard"
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
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

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
