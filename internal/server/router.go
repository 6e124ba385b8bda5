package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"dotcalc/internal/calculator"
	"dotcalc/internal/convert"
	"dotcalc/internal/handlers"
	"dotcalc/internal/observability"
)

// Deps are the collaborators the router hands to each domain.
type Deps struct {
	Sessions *calculator.Store
	Gatherer prometheus.Gatherer
	Now      func() time.Time
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler(deps.Gatherer))

	calculator.RegisterRoutes(r, calculator.NewHandler(deps.Sessions))
	convert.RegisterRoutes(r, convert.NewHandler(deps.Now))

	return r
}
