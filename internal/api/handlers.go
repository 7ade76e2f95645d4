package api

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"homeenergy/server/internal/auth"
	"homeenergy/server/internal/render"
	"homeenergy/server/internal/views"
)

// Pinger reports whether the data store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ImportQueue reports the state of the background consumption import queue.
type ImportQueue interface {
	IsClosed() bool
	Len() int
}

// Services bundles the controllers the API serves.
type Services struct {
	Auth      *auth.Manager
	Dashboard *views.Dashboard
	History   *views.History
	Homes     *views.Homes
	Predictor *views.Predictor
	Health    Pinger
	Imports   ImportQueue
}

// Handler serves the HTTP API on top of the view controllers.
type Handler struct {
	auth      *auth.Manager
	dashboard *views.Dashboard
	history   *views.History
	homes     *views.Homes
	predictor *views.Predictor
	health    Pinger
	imports   ImportQueue
	charts    render.ChartOptions
	logger    *logrus.Logger
}

// NewHandler creates a handler, defaulting to a JSON logger when none is given.
func NewHandler(services Services, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		auth:      services.Auth,
		dashboard: services.Dashboard,
		history:   services.History,
		homes:     services.Homes,
		predictor: services.Predictor,
		health:    services.Health,
		imports:   services.Imports,
		charts:    render.DefaultChartOptions(),
		logger:    logger,
	}
}
