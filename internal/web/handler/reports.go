package handler

import (
	"net/http"

	"github.com/sportsday/sportsday/internal/services/schedule"
	"github.com/sportsday/sportsday/internal/web/middleware"
	"github.com/sportsday/sportsday/internal/web/views"
)

// ReportsHandler handles the reports page
type ReportsHandler struct {
	scheduleService *schedule.Service
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(scheduleService *schedule.Service) *ReportsHandler {
	return &ReportsHandler{
		scheduleService: scheduleService,
	}
}

// Reports renders all sessions and the per-sport session counts.
// Read-only, no side effects.
func (h *ReportsHandler) Reports(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.scheduleService.ListSessions(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	popularity, err := h.scheduleService.SportPopularity(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := views.ReportsData{
		PageData: views.PageData{
			Title: "Reports",
			Flash: middleware.GetFlash(r.Context()),
			User:  middleware.GetUser(r.Context()),
		},
		Sessions:   sessions,
		Popularity: popularity,
	}
	render(w, r, views.Reports(data))
}
