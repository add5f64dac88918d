package web_test

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsday/sportsday/internal/model"
)

func TestAdminDashboard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)

	rr := ts.get("/admin-dashboard")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form[action='/create-sport']")
	assertContainsText(t, doc, "main", "No sports yet")
	assertContainsText(t, doc, "main", "No sessions scheduled")
}

func TestCreateSport(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)

	ts.createSport("Football")

	rr := ts.get("/admin-dashboard")
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "ul.sports", "Football")
	assertContainsText(t, doc, ".flash-success", "Sport Football created")
}

func TestCreateSportEmptyName(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)

	rr := ts.post("/create-sport", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Sport name is required")
	assertNotContainsElement(t, doc, "ul.sports li")
}

func TestCreateSportDuplicateNamesAllowed(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)

	ts.createSport("Football")
	ts.createSport("Football")

	rr := ts.get("/admin-dashboard")
	doc := parseHTML(rr.Body)
	assert.Equal(t, 2, doc.Find("ul.sports li").Length())
}

func TestDeleteSession(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)
	ts.createSport("Football")

	// Sessions are created from the player dashboard, open to any role
	ts.createSession(sportID(t, ts), "Reds", "Blues", "2026-09-12", "Main Oval")

	rr := ts.get("/admin-dashboard")
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "table.sessions tr[data-session-id]")
	id, ok := doc.Find("table.sessions tr[data-session-id]").Attr("data-session-id")
	require.True(t, ok)

	rr = ts.post("/delete-session", url.Values{"session_id": {id}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Session deleted")
	assertNotContainsElement(t, doc, "table.sessions")
}

func TestDeleteSessionUnknownIdIsNoop(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)

	rr := ts.post("/delete-session", url.Values{"session_id": {"999"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Session deleted")
}

func TestDeleteSessionInvalidId(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Root", "root@example.com", "hunter2-long", model.RoleAdmin)

	rr := ts.post("/delete-session", url.Values{"session_id": {"not-a-number"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Invalid session id")
}

func TestAdminPagesRejectPlayers(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Alice", "alice@example.com", "hunter2-long", model.RolePlayer)

	rr := ts.get("/admin-dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/player-dashboard", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "do not have access")
}

func TestAdminActionsRejectPlayers(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("Alice", "alice@example.com", "hunter2-long", model.RolePlayer)

	rr := ts.post("/create-sport", url.Values{"name": {"Football"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/player-dashboard", rr.Header().Get("Location"))

	// The sport was not created
	sports, err := ts.app.ScheduleService.ListSports(t.Context())
	require.NoError(t, err)
	assert.Empty(t, sports)
}

// sportID returns the first catalog sport's id as a form value
func sportID(t *testing.T, ts *webTestServer) string {
	t.Helper()
	sports, err := ts.app.ScheduleService.ListSports(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, sports)
	return strconv.FormatInt(int64(sports[0].ID), 10)
}
