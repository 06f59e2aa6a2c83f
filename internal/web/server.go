package web

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/bookbrust/bookbrust/internal/bookapi"
	"github.com/bookbrust/bookbrust/internal/metrics"
	"github.com/bookbrust/bookbrust/internal/security"
	"github.com/bookbrust/bookbrust/internal/session"
	"github.com/bookbrust/bookbrust/internal/storage"
)

// Server renders the BookBrust pages. It talks to the remote BookBrust
// service through the API client and keeps the session and small UI
// preferences in local storage.
type Server struct {
	api       *bookapi.Client
	sessions  *session.Store
	store     *storage.Store
	sanitizer *security.Sanitizer
	covers    *http.Client
	metrics   *metrics.Collector
	gatherer  prometheus.Gatherer
	validate  *validator.Validate
	templates map[string]*template.Template
}

// NewServer builds a Server with all page templates parsed. The gatherer
// serves the /metrics endpoint and is normally the same registry the
// collector was registered on.
func NewServer(api *bookapi.Client, sessions *session.Store, store *storage.Store, collector *metrics.Collector, gatherer prometheus.Gatherer) (*Server, error) {
	tmpls, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		api:       api,
		sessions:  sessions,
		store:     store,
		sanitizer: security.NewSanitizer(),
		covers:    security.NewSafeClient(15 * time.Second),
		metrics:   collector,
		gatherer:  gatherer,
		validate:  validator.New(),
		templates: tmpls,
	}, nil
}

// Router creates and configures the HTTP router with all page routes.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger(s.metrics))
	r.Use(Recovery)
	r.Use(FormRateLimit(rate.Limit(2), 10))

	// Public pages.
	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/signup", s.handleSignupPage)
	r.Post("/signup", s.handleSignup)
	r.Post("/logout", s.handleLogout)
	r.Get("/explore", s.handleExplore)
	r.Get("/books/{id}", s.handleBookDetails)
	r.Post("/books/{id}/reviews", s.handleCreateReview)
	r.Get("/profile/{userID}", s.handleProfile)
	r.Get("/covers", s.handleCover)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))

	// Pages that need a signed-in user.
	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAuth)
		pr.Get("/bookshelf", s.handleBookshelf)
		pr.Post("/bookshelf/add", s.handleAddBook)
		pr.Post("/bookshelf/update", s.handleUpdateBook)
		pr.Get("/timeline", s.handleTimeline)
	})

	return r
}

// pageData carries the fields every template needs: the page title and
// whoever is signed in.
type pageData struct {
	Title         string
	Authenticated bool
	Alias         string
	Error         string
}

func (s *Server) basePage(title string) pageData {
	data := pageData{Title: title}
	if current := s.sessions.Current(); current != nil && current.Token != "" {
		data.Authenticated = true
		data.Alias = current.Identity.Alias
	}
	return data
}

// requestMessage extracts the user-facing message from an API error.
func requestMessage(err error) string {
	var reqErr *bookapi.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return "something went wrong"
}
