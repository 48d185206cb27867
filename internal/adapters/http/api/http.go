// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/okian/stagebook/internal/domain/notify"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ChartsDependencies
	DiscoverDependencies
	RequirementsDependencies
	NotificationsDependencies
	AccountDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	chartsHandler        *ChartsHandler
	discoverHandler      *DiscoverHandler
	requirementsHandler  *RequirementsHandler
	notificationsHandler *NotificationsHandler
	accountHandler       *AccountHandler
	middleware           *Middleware
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		chartsHandler:        NewChartsHandler(deps, o.locale),
		discoverHandler:      NewDiscoverHandler(deps),
		requirementsHandler:  NewRequirementsHandler(deps),
		notificationsHandler: NewNotificationsHandler(deps),
		accountHandler:       NewAccountHandler(deps),
		middleware:           NewMiddleware(o),
	}
}

// Register attaches the middleware stack and all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Use(s.middleware.Stack()...)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Route("/charts", func(r chi.Router) {
		r.Get("/", s.chartsHandler.HandleGetCharts)
		r.Get("/{id}/share", s.chartsHandler.HandleGetShare)
	})

	r.Route("/discover", func(r chi.Router) {
		r.Get("/", s.discoverHandler.HandleDiscover)
		r.Get("/defaults", s.discoverHandler.HandleDefaults)
	})

	r.Route("/requirements", func(r chi.Router) {
		r.Get("/", s.requirementsHandler.HandleList)
		r.Post("/", s.requirementsHandler.HandleCreate)
		r.Get("/locations", s.requirementsHandler.HandleLocations)
		r.Get("/options", s.requirementsHandler.HandleOptions)
	})

	r.Get("/notifications", s.notificationsHandler.HandleList)

	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.accountHandler.HandleGetSession)
		r.Put("/", s.accountHandler.HandlePutSession)
		r.Delete("/", s.accountHandler.HandleDeleteSession)
	})
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", s.accountHandler.HandleGetProfile)
		r.Put("/", s.accountHandler.HandlePutProfile)
	})
}

// Router builds a chi router with every API route registered.
func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	s.Register(ctx, r)
	return r
}

// toastResponse pairs a payload with the notice shown to the user.
type toastResponse struct {
	Data  any           `json:"data,omitempty"`
	Toast notify.Notice `json:"toast"`
}

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Fields  []string       `json:"fields,omitempty"`
	Toast   *notify.Notice `json:"toast,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeKindError derives status and code from the error kind.
func writeKindError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// decodeJSON reads a single JSON object from r, rejecting unknown fields.
func decodeJSON(r *http.Request, w http.ResponseWriter, into any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

// now is replaced in tests.
var now = time.Now
