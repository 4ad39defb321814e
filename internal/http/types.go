package http

import (
	"html/template"
	"net/http"

	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/http/handlers"
	"github.com/mauv0809/squadup/internal/metrics"
	"github.com/mauv0809/squadup/internal/session"
)

type Server struct {
	Service        *enrollment.Service
	Sessions       *session.Manager
	DB             handlers.Pinger
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Processor      handlers.EventHandler
	Router         *http.ServeMux
	templates      *template.Template
}
