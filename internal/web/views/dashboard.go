package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/sportsday/sportsday/internal/model"
)

const dateLayout = "2006-01-02"

// AdminDashboardData holds data for the admin dashboard
type AdminDashboardData struct {
	PageData
	Sports   []model.Sport
	Sessions []model.SessionDetail
}

// AdminDashboard renders the sport catalog and all scheduled sessions,
// with controls to create sports and delete sessions
func AdminDashboard(data AdminDashboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Admin Dashboard</h1><h2>Sports</h2>`); err != nil {
			return err
		}
		if err := sportList(w, data.Sports); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<form action="/create-sport" method="post">`+
				`<label>New sport <input type="text" name="name" required></label>`+
				`<button type="submit">Create sport</button>`+
				`</form><h2>Sessions</h2>`); err != nil {
			return err
		}
		return sessionTable(w, data.Sessions, true, false)
	})
	return page(data.PageData, body)
}

// PlayerDashboardData holds data for the player dashboard
type PlayerDashboardData struct {
	PageData
	Sports   []model.Sport
	Sessions []model.SessionDetail
}

// PlayerDashboard renders all sessions for browsing and joining, plus
// the session creation form
func PlayerDashboard(data PlayerDashboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Player Dashboard</h1><h2>Create a session</h2>`); err != nil {
			return err
		}
		if err := createSessionForm(w, data.Sports); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>Sessions</h2>`); err != nil {
			return err
		}
		return sessionTable(w, data.Sessions, false, true)
	})
	return page(data.PageData, body)
}

// ReportsData holds data for the reports page
type ReportsData struct {
	PageData
	Sessions   []model.SessionDetail
	Popularity []model.SportPopularity
}

// Reports renders all sessions and the per-sport session counts
func Reports(data ReportsData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Reports</h1><h2>Sport popularity</h2>`); err != nil {
			return err
		}
		if len(data.Popularity) == 0 {
			if _, err := io.WriteString(w, `<p>No sessions scheduled yet.</p>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<table class="popularity"><thead><tr><th>Sport</th><th>Sessions</th></tr></thead><tbody>`); err != nil {
				return err
			}
			for _, p := range data.Popularity {
				if _, err := fmt.Fprintf(w,
					`<tr><td class="sport-name">%s</td><td class="session-count">%d</td></tr>`,
					templ.EscapeString(p.SportName), p.SessionCount); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<h2>Sessions</h2>`); err != nil {
			return err
		}
		return sessionTable(w, data.Sessions, false, false)
	})
	return page(data.PageData, body)
}

func sportList(w io.Writer, sports []model.Sport) error {
	if len(sports) == 0 {
		_, err := io.WriteString(w, `<p>No sports yet.</p>`)
		return err
	}
	if _, err := io.WriteString(w, `<ul class="sports">`); err != nil {
		return err
	}
	for _, sport := range sports {
		if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(sport.Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}

func createSessionForm(w io.Writer, sports []model.Sport) error {
	if len(sports) == 0 {
		_, err := io.WriteString(w, `<p>No sports available; ask an admin to create one.</p>`)
		return err
	}
	if _, err := io.WriteString(w,
		`<form action="/create-session" method="post"><label>Sport <select name="sport_id">`); err != nil {
		return err
	}
	for _, sport := range sports {
		if _, err := fmt.Fprintf(w, `<option value="%d">%s</option>`,
			sport.ID, templ.EscapeString(sport.Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w,
		`</select></label>`+
			`<label>Team 1 <input type="text" name="team1" required></label>`+
			`<label>Team 2 <input type="text" name="team2" required></label>`+
			`<label>Additional players <input type="text" name="additional_players"></label>`+
			`<label>Date <input type="date" name="date" required></label>`+
			`<label>Venue <input type="text" name="venue" required></label>`+
			`<button type="submit">Create session</button>`+
			`</form>`)
	return err
}

func sessionTable(w io.Writer, sessions []model.SessionDetail, deletable, joinable bool) error {
	if len(sessions) == 0 {
		_, err := io.WriteString(w, `<p>No sessions scheduled.</p>`)
		return err
	}
	if _, err := io.WriteString(w,
		`<table class="sessions"><thead><tr><th>Sport</th><th>Teams</th><th>Additional players</th><th>Date</th><th>Venue</th><th>Created by</th>`); err != nil {
		return err
	}
	if deletable || joinable {
		if _, err := io.WriteString(w, `<th></th>`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</tr></thead><tbody>`); err != nil {
		return err
	}
	for _, s := range sessions {
		if _, err := fmt.Fprintf(w,
			`<tr data-session-id="%d"><td class="sport-name">%s</td><td>%s vs %s</td><td>%s</td><td>%s</td><td>%s</td><td class="creator-name">%s</td>`,
			s.ID,
			templ.EscapeString(s.SportName),
			templ.EscapeString(s.Team1),
			templ.EscapeString(s.Team2),
			templ.EscapeString(s.AdditionalPlayers),
			s.Date.Format(dateLayout),
			templ.EscapeString(s.Venue),
			templ.EscapeString(s.CreatorName)); err != nil {
			return err
		}
		if deletable {
			if _, err := fmt.Fprintf(w,
				`<td><form action="/delete-session" method="post"><input type="hidden" name="session_id" value="%d"><button type="submit">Delete</button></form></td>`,
				s.ID); err != nil {
				return err
			}
		}
		if joinable {
			if _, err := fmt.Fprintf(w,
				`<td><form action="/join-session" method="post"><input type="hidden" name="session_id" value="%d"><button type="submit">Join</button></form></td>`,
				s.ID); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}
