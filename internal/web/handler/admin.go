package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/services/schedule"
	"github.com/sportsday/sportsday/internal/web/middleware"
	"github.com/sportsday/sportsday/internal/web/views"
)

// AdminHandler handles the admin dashboard and its actions
type AdminHandler struct {
	scheduleService *schedule.Service
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(scheduleService *schedule.Service) *AdminHandler {
	return &AdminHandler{
		scheduleService: scheduleService,
	}
}

// Dashboard renders the sport catalog and all sessions
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sports, err := h.scheduleService.ListSports(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sessions, err := h.scheduleService.ListSessions(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := views.AdminDashboardData{
		PageData: views.PageData{
			Title: "Admin Dashboard",
			Flash: middleware.GetFlash(r.Context()),
			User:  middleware.GetUser(r.Context()),
		},
		Sports:   sports,
		Sessions: sessions,
	}
	render(w, r, views.AdminDashboard(data))
}

// CreateSport adds a sport to the catalog and returns to the dashboard
func (h *AdminHandler) CreateSport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		middleware.SetFlash(w, "error", "Sport name is required")
		http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
		return
	}

	if _, err := h.scheduleService.CreateSport(r.Context(), name); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Sport "+name+" created")
	http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
}

// DeleteSession removes a session and its memberships. Unknown ids are
// a no-op, not an error.
func (h *AdminHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("session_id"), 10, 64)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid session id")
		http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
		return
	}

	if err := h.scheduleService.DeleteSession(r.Context(), model.SessionID(id)); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Session deleted")
	http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
}
