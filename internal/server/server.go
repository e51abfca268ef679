// Package server implements the web dashboard: a login form gating a
// single dashboard page, plus a Prometheus metrics endpoint.
package server

import (
	"crypto/rand"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twiga-dash/internal/cache"
	"twiga-dash/internal/catalog"
	"twiga-dash/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "twiga_session"

// Browser sessions outlive the fetch cache by design; re-login once a
// working day, refetch once an hour.
const sessionTTL = 12 * time.Hour

type Config struct {
	Server string // EarthRanger base URL
	Listen string // HTTP listen address
}

type Server struct {
	cfg      Config
	sessions *SessionStore
	cache    *cache.Cache
	tmpl     *template.Template
	registry *prometheus.Registry
	csrfKey  []byte
}

func New(cfg Config) (*Server, error) {
	funcs := template.FuncMap{
		"toJSON": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			return template.JS(b), err
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate CSRF key: %w", err)
	}

	return &Server{
		cfg:      cfg,
		sessions: NewSessionStore(sessionTTL),
		cache:    cache.New(catalog.FetchTTL),
		tmpl:     tmpl,
		registry: registry,
		csrfKey:  key,
	}, nil
}

// Handler wires the routes and wraps them with CSRF protection.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/", s.handleDashboard)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	// The listener itself is plain HTTP; TLS terminates at the proxy
	// in front of it, so the CSRF cookie cannot be Secure-only.
	protect := csrf.Protect(s.csrfKey, csrf.Path("/"), csrf.Secure(false))
	return protect(mux)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("template %s: %v", name, err)
	}
}

// session returns the live session for the request, if any.
func (s *Server) session(r *http.Request) (Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return Session{}, false
	}
	return s.sessions.Get(c.Value)
}
