package http

import (
	"net/http"

	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/http/handlers"
	"github.com/mauv0809/squadup/internal/metrics"
	"github.com/mauv0809/squadup/internal/session"
)

func NewServer(service *enrollment.Service, sessions *session.Manager, db handlers.Pinger, metricsSvc metrics.Metrics, metricsHandler http.Handler, processor handlers.EventHandler) *Server {
	server := &Server{
		Service:        service,
		Sessions:       sessions,
		DB:             db,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Processor:      processor,
		Router:         http.NewServeMux(),
		templates:      handlers.Templates(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	withSession := s.sessionMiddleware()

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.DB), s.instrument, paramsMiddleware))

	s.Router.Handle("GET /{tournamentID}/enroll", Chain(handlers.EnrollPageHandler(s.Service, s.templates), s.instrument, paramsMiddleware, withSession))
	s.Router.Handle("POST /{tournamentID}/enroll", Chain(handlers.EnrollHandler(s.Service), s.instrument, paramsMiddleware, withSession))
	s.Router.Handle("POST /{tournamentID}/enroll/{$}", Chain(handlers.EnrollHandler(s.Service), s.instrument, paramsMiddleware, withSession))
	s.Router.Handle("POST /{tournamentID}/swap", Chain(handlers.SwapTeamsHandler(s.Service), s.instrument, paramsMiddleware, withSession))

	s.Router.Handle("GET /{tournamentID}/enrollmentinfo.json", Chain(handlers.EnrollmentInfoHandler(s.Service), s.instrument, paramsMiddleware))
	s.Router.Handle("GET /{tournamentID}/teamnames.json", Chain(handlers.TeamNamesHandler(s.Service), s.instrument, paramsMiddleware))
	s.Router.Handle("GET /enrollments.json", Chain(handlers.RosterHandler(s.Service), s.instrument, paramsMiddleware))

	s.Router.Handle("POST /events/push", Chain(handlers.EventPushHandler(s.Processor), s.instrument, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
