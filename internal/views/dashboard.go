package views

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"homeenergy/server/internal/aggregate"
	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
)

const (
	dashboardConsumptionLimit = 12
	dashboardPredictionLimit  = 5
)

// DashboardData is everything the dashboard screen shows.
type DashboardData struct {
	Summary         aggregate.Summary          `json:"summary"`
	Series          []aggregate.ChartPoint     `json:"series"`
	Predictions     []aggregate.PredictionView `json:"predictions"`
	Homes           []aggregate.HomeSummary    `json:"homes"`
	ApplianceImpact []aggregate.ImpactSlice    `json:"appliance_impact"`
}

// Dashboard loads the dashboard screen.
type Dashboard struct {
	store  Store
	gens   *Generations
	logger *logrus.Logger
}

// NewDashboard creates the dashboard controller. gens may be nil.
func NewDashboard(store Store, gens *Generations, logger *logrus.Logger) *Dashboard {
	if logger == nil {
		logger = logrus.New()
	}
	return &Dashboard{store: store, gens: gens, logger: logger}
}

// Load fetches the user's homes, then the recent consumption window,
// recent predictions and appliances in parallel, and aggregates them.
func (d *Dashboard) Load(ctx context.Context, userID string) (*DashboardData, error) {
	return d.LoadView(ctx, userID, "dashboard")
}

// LoadView is Load for one resource built from the dashboard data, such as
// a chart. Only a newer load of the same view and user supersedes it.
func (d *Dashboard) LoadView(ctx context.Context, userID, view string) (*DashboardData, error) {
	ctx, done := d.gens.begin(ctx, view+":"+userID)
	defer done()

	homes, err := d.store.ListHomes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load homes: %w", err)
	}
	idx := aggregate.NewHomeIndex(homes)
	ids := idx.IDs()

	var (
		records     []models.ConsumptionRecord
		predictions []models.Prediction
		appliances  []models.Appliance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = d.store.ListConsumption(gctx, database.RecordQuery{HomeIDs: ids, Limit: dashboardConsumptionLimit})
		return err
	})
	g.Go(func() error {
		var err error
		predictions, err = d.store.ListPredictions(gctx, userID, dashboardPredictionLimit)
		return err
	})
	g.Go(func() error {
		var err error
		appliances, err = d.store.ListAppliances(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := &DashboardData{
		Summary:         aggregate.Summarize(idx.Len(), records),
		Series:          aggregate.BuildSeries(records),
		Predictions:     aggregate.JoinPredictions(idx, predictions),
		Homes:           aggregate.SummarizeHomes(homes, records),
		ApplianceImpact: aggregate.ApplianceImpact(appliances),
	}

	d.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"view":    view,
		"homes":   idx.Len(),
		"records": len(records),
	}).Debug("Dashboard loaded")
	return data, nil
}
