package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/services/schedule"
	"github.com/sportsday/sportsday/internal/web/middleware"
	"github.com/sportsday/sportsday/internal/web/views"
)

const dateLayout = "2006-01-02"

// PlayerHandler handles the player dashboard and its actions
type PlayerHandler struct {
	scheduleService *schedule.Service
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(scheduleService *schedule.Service) *PlayerHandler {
	return &PlayerHandler{
		scheduleService: scheduleService,
	}
}

// Dashboard renders all sessions and the session creation form
func (h *PlayerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.scheduleService.ListSessions(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sports, err := h.scheduleService.ListSports(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := views.PlayerDashboardData{
		PageData: views.PageData{
			Title: "Player Dashboard",
			Flash: middleware.GetFlash(r.Context()),
			User:  middleware.GetUser(r.Context()),
		},
		Sports:   sports,
		Sessions: sessions,
	}
	render(w, r, views.PlayerDashboard(data))
}

// CreateSession schedules a session. The creator is always the
// authenticated caller; a creator field in the form is ignored.
func (h *PlayerHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
		return
	}

	sportID, err := strconv.ParseInt(r.FormValue("sport_id"), 10, 64)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid sport")
		http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
		return
	}

	team1 := strings.TrimSpace(r.FormValue("team1"))
	team2 := strings.TrimSpace(r.FormValue("team2"))
	venue := strings.TrimSpace(r.FormValue("venue"))
	if team1 == "" || team2 == "" || venue == "" {
		middleware.SetFlash(w, "error", "Teams and venue are required")
		http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
		return
	}

	date, err := time.Parse(dateLayout, r.FormValue("date"))
	if err != nil {
		middleware.SetFlash(w, "error", "Date must be YYYY-MM-DD")
		http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
		return
	}

	user := middleware.GetUser(r.Context())
	sess := &model.Session{
		SportID:           model.SportID(sportID),
		Team1:             team1,
		Team2:             team2,
		AdditionalPlayers: strings.TrimSpace(r.FormValue("additional_players")),
		Date:              date,
		Venue:             venue,
	}

	if _, err := h.scheduleService.CreateSession(r.Context(), user.ID, sess); err != nil {
		if isInvalidReference(err) {
			middleware.SetFlash(w, "error", "That sport does not exist")
			http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Session created")
	http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
}

// JoinSession records the caller as a participant. Joining twice is a
// no-op.
func (h *PlayerHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("session_id"), 10, 64)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid session id")
		http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.scheduleService.JoinSession(r.Context(), model.SessionID(id), user.ID); err != nil {
		if isInvalidReference(err) {
			middleware.SetFlash(w, "error", "That session does not exist")
			http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "You joined the session")
	http.Redirect(w, r, "/player-dashboard", http.StatusSeeOther)
}

func isInvalidReference(err error) bool {
	return errors.Is(err, model.ErrInvalidReference)
}
