package server

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"twiga-dash/internal/catalog"
	"twiga-dash/internal/client"
	"twiga-dash/internal/stats"
	"twiga-dash/pkg/models"
)

const dateLayout = "2006-01-02"

type loginPage struct {
	Error     string
	CSRFField template.HTML
}

// handleLogin renders the form on GET and authenticates on POST. Any
// authentication failure collapses to one generic message.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "login.html", loginPage{CSRFField: csrf.TemplateField(r)})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	api := client.New(client.ClientConfig{
		Server:   s.cfg.Server,
		Username: username,
		Password: password,
	})

	token, err := api.Login()
	if err == nil {
		err = api.Probe()
	}
	if err != nil {
		log.Printf("login rejected for %q", username)
		s.render(w, "login.html", loginPage{
			Error:     "Invalid credentials. Please try again.",
			CSRFField: csrf.TemplateField(r),
		})
		return
	}

	sess := s.sessions.Create(username, token)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type dashboardPage struct {
	Username  string
	Start     string
	End       string
	Summary   stats.Summary
	Points    []stats.Point
	Monthly   []stats.MonthCount
	Breakdown []stats.GroupCount
	Names     []string
	Sponsored []string
	CSRFField template.HTML
}

// handleDashboard builds every panel for the logged-in user's chosen
// date range. A failed fetch aborts the whole page; nothing renders
// partially.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sess, ok := s.session(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	api := client.New(client.ClientConfig{Server: s.cfg.Server, Token: sess.Token})
	cat := catalog.New(api, s.cache)

	activeRoster, err := cat.ActiveRoster(catalog.NamibiaNWGroupID)
	if err != nil {
		s.fetchError(w, "subjects", err)
		return
	}

	sponsoredRoster, err := cat.SponsoredRoster(catalog.AdoptAGiraffeGroupID)
	if err != nil {
		s.fetchError(w, "sponsored subjects", err)
		return
	}

	since, _ := time.Parse(time.RFC3339, catalog.SightingsSince)
	rows, err := cat.FlatSightings(catalog.EventCategory, since)
	if err != nil {
		s.fetchError(w, "events", err)
		return
	}

	start, end := dateRange(r, rows)
	filtered := stats.FilterByDate(rows, start, end)

	page := dashboardPage{
		Username:  sess.Username,
		Start:     start.Format(dateLayout),
		End:       end.Format(dateLayout),
		Summary:   stats.Summarize(rows, filtered, len(activeRoster)),
		Points:    stats.MapPoints(filtered),
		Monthly:   stats.MonthlyCounts(filtered),
		Breakdown: stats.AgeSexBreakdown(filtered),
		Names:     stats.SeenNames(filtered, models.NameLookup(activeRoster)),
		Sponsored: stats.SeenNames(filtered, models.NameLookup(sponsoredRoster)),
		CSRFField: csrf.TemplateField(r),
	}

	s.render(w, "dashboard.html", page)
}

// dateRange reads the start/end query params, defaulting to the full
// span of the data (or today when there is none).
func dateRange(r *http.Request, rows []models.FlatRow) (time.Time, time.Time) {
	start, end, ok := stats.DateBounds(rows)
	if !ok {
		now := time.Now()
		start, end = now, now
	}

	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			start = t
		}
	}
	if v := q.Get("end"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			end = t
		}
	}
	return start, end
}

func (s *Server) fetchError(w http.ResponseWriter, what string, err error) {
	log.Printf("fetch %s: %v", what, err)
	http.Error(w, "Failed to load data from EarthRanger. Please reload.", http.StatusBadGateway)
}
