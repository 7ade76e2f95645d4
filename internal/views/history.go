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

const historyPredictionLimit = 20

// HistoryData is one year of records, bills and predictions.
type HistoryData struct {
	Year        int                         `json:"year"`
	Consumption []aggregate.ConsumptionView `json:"consumption"`
	Totals      aggregate.HistoryTotals     `json:"totals"`
	Predictions []aggregate.PredictionView  `json:"predictions"`
	Bills       []aggregate.BillView        `json:"bills"`
}

// History loads the history screen.
type History struct {
	store  Store
	gens   *Generations
	logger *logrus.Logger
}

// NewHistory creates the history controller. gens may be nil.
func NewHistory(store Store, gens *Generations, logger *logrus.Logger) *History {
	if logger == nil {
		logger = logrus.New()
	}
	return &History{store: store, gens: gens, logger: logger}
}

// Load fetches one year of consumption and bills plus recent predictions.
func (h *History) Load(ctx context.Context, userID string, year int) (*HistoryData, error) {
	if year < minYear {
		return nil, invalid("year", "must be %d or later", minYear)
	}

	ctx, done := h.gens.begin(ctx, "history:"+userID)
	defer done()

	homes, err := h.store.ListHomes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load homes: %w", err)
	}
	idx := aggregate.NewHomeIndex(homes)
	q := database.RecordQuery{HomeIDs: idx.IDs(), Year: year}

	var (
		records     []models.ConsumptionRecord
		bills       []models.BillRecord
		predictions []models.Prediction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = h.store.ListConsumption(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = h.store.ListBills(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		predictions, err = h.store.ListPredictions(gctx, userID, historyPredictionLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &HistoryData{
		Year:        year,
		Consumption: aggregate.JoinConsumption(idx, records),
		Totals:      aggregate.SummarizeHistory(records),
		Predictions: aggregate.JoinPredictions(idx, predictions),
		Bills:       aggregate.JoinBills(idx, bills),
	}, nil
}
