package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"homeenergy/server/internal/aggregate"
	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
)

const (
	minYear     = 2000
	maxDayHours = 24
)

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	GeocodeAddress(ctx context.Context, address string) (float64, float64, error)
}

// Importer accepts parsed consumption batches for asynchronous storage.
type Importer interface {
	Push(batch []*models.ConsumptionRecord) error
}

// Homes manages homes and the records kept against them.
type Homes struct {
	store    Store
	geocoder Geocoder
	importer Importer
	logger   *logrus.Logger
	now      func() time.Time
}

// NewHomes creates the homes controller without geocoding or import.
func NewHomes(store Store, logger *logrus.Logger) *Homes {
	if logger == nil {
		logger = logrus.New()
	}
	return &Homes{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithGeocoder enables Geocode.
func (h *Homes) WithGeocoder(g Geocoder) *Homes {
	h.geocoder = g
	return h
}

// WithImporter enables ImportConsumption.
func (h *Homes) WithImporter(i Importer) *Homes {
	h.importer = i
	return h
}

// List returns the user's homes, newest first.
func (h *Homes) List(ctx context.Context, userID string) ([]models.Home, error) {
	return h.store.ListHomes(ctx, userID)
}

// Create validates and stores a new home for userID.
func (h *Homes) Create(ctx context.Context, userID string, req models.HomeRequest) (*models.Home, error) {
	home, err := homeFromRequest(req)
	if err != nil {
		return nil, err
	}
	home.UserID = userID
	if err := h.store.CreateHome(ctx, home); err != nil {
		return nil, err
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"home_id": home.HomeID,
	}).Info("Home created")
	return home, nil
}

// Update replaces the editable attributes of an owned home.
func (h *Homes) Update(ctx context.Context, userID string, homeID uint, req models.HomeRequest) (*models.Home, error) {
	existing, err := ownedHome(ctx, h.store, userID, homeID)
	if err != nil {
		return nil, err
	}
	home, err := homeFromRequest(req)
	if err != nil {
		return nil, err
	}
	home.HomeID = existing.HomeID
	home.UserID = existing.UserID
	home.CreatedAt = existing.CreatedAt
	home.Latitude = existing.Latitude
	home.Longitude = existing.Longitude

	if err := h.store.UpdateHome(ctx, home); err != nil {
		return nil, err
	}
	return home, nil
}

// Delete removes the home and everything recorded against it.
func (h *Homes) Delete(ctx context.Context, userID string, homeID uint) error {
	if _, err := ownedHome(ctx, h.store, userID, homeID); err != nil {
		return err
	}
	if err := h.store.DeleteHome(ctx, homeID); err != nil {
		return err
	}
	h.logger.WithField("home_id", homeID).Info("Home deleted")
	return nil
}

// ListAppliances returns the appliances of an owned home.
func (h *Homes) ListAppliances(ctx context.Context, userID string, homeID uint) ([]models.Appliance, error) {
	if _, err := ownedHome(ctx, h.store, userID, homeID); err != nil {
		return nil, err
	}
	return h.store.ListAppliances(ctx, []uint{homeID})
}

// AddAppliance validates and stores an appliance. Quantity defaults to 1.
func (h *Homes) AddAppliance(ctx context.Context, userID string, homeID uint, req models.ApplianceRequest) (*models.Appliance, error) {
	if _, err := ownedHome(ctx, h.store, userID, homeID); err != nil {
		return nil, err
	}

	applianceType := strings.ToLower(strings.TrimSpace(req.ApplianceType))
	if !isApplianceType(applianceType) {
		return nil, invalid("appliance_type", "unknown appliance type %q", req.ApplianceType)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, invalid("quantity", "must be positive")
	}
	if req.Wattage <= 0 {
		return nil, invalid("wattage", "must be positive")
	}
	if req.AvgHoursPerDay < 0 || req.AvgHoursPerDay > maxDayHours {
		return nil, invalid("avg_hours_per_day", "must be between 0 and %d", maxDayHours)
	}

	appliance := &models.Appliance{
		HomeID:         homeID,
		ApplianceType:  applianceType,
		Quantity:       quantity,
		Wattage:        req.Wattage,
		AvgHoursPerDay: req.AvgHoursPerDay,
	}
	if err := h.store.CreateAppliance(ctx, appliance); err != nil {
		return nil, err
	}
	return appliance, nil
}

// AddConsumption records a month of usage and opens the matching bill.
func (h *Homes) AddConsumption(ctx context.Context, userID string, homeID uint, req models.ConsumptionRequest) (*models.ConsumptionRecord, *models.BillRecord, error) {
	if _, err := ownedHome(ctx, h.store, userID, homeID); err != nil {
		return nil, nil, err
	}

	record := &models.ConsumptionRecord{
		HomeID:     homeID,
		Month:      req.Month,
		Year:       req.Year,
		KwhUsed:    req.KwhUsed,
		BillAmount: req.BillAmount,
	}
	if err := validateRecord(record); err != nil {
		return nil, nil, err
	}

	due := database.DefaultDueDate(req.Month, req.Year)
	if req.DueDate != nil {
		due = req.DueDate.UTC()
	}
	bill := &models.BillRecord{
		HomeID:     homeID,
		Month:      req.Month,
		Year:       req.Year,
		ActualBill: req.BillAmount,
		DueDate:    due,
	}

	err := h.store.CreateConsumptionWithBill(ctx, record, bill)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, nil, invalid("month", "consumption for %s already recorded", aggregate.PeriodLabel(req.Month, req.Year))
	}
	if err != nil {
		return nil, nil, err
	}
	return record, bill, nil
}

// ImportConsumption validates loosely typed rows and queues them for a
// batched upsert. Rows for an existing period overwrite it.
func (h *Homes) ImportConsumption(ctx context.Context, userID string, homeID uint, rows []map[string]any) (int, error) {
	if h.importer == nil {
		return 0, fmt.Errorf("%w: consumption import", ErrUnavailable)
	}
	if _, err := ownedHome(ctx, h.store, userID, homeID); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, invalid("rows", "at least one row is required")
	}

	parsed := aggregate.ParseConsumptionRows(rows)
	batch := make([]*models.ConsumptionRecord, 0, len(parsed))
	for i := range parsed {
		record := parsed[i]
		record.HomeID = homeID
		if err := validateRecord(&record); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Message = fmt.Sprintf("row %d: %s", i+1, verr.Message)
			}
			return 0, err
		}
		batch = append(batch, &record)
	}

	if err := h.importer.Push(batch); err != nil {
		return 0, fmt.Errorf("failed to queue import: %w", err)
	}
	h.logger.WithFields(logrus.Fields{
		"home_id": homeID,
		"rows":    len(batch),
	}).Info("Consumption import queued")
	return len(batch), nil
}

// MarkBillPaid records payment of a bill on one of the user's homes.
func (h *Homes) MarkBillPaid(ctx context.Context, userID string, billID uint) (*models.BillRecord, error) {
	bill, err := h.store.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedHome(ctx, h.store, userID, bill.HomeID); err != nil {
		return nil, err
	}

	paidAt := h.now()
	if err := h.store.MarkBillPaid(ctx, billID, paidAt); err != nil {
		return nil, err
	}
	bill.IsPaid = true
	bill.PaymentDate = &paidAt
	return bill, nil
}

// Geocode fills in coordinates for the user's homes that have none.
// Addresses that cannot be resolved are skipped.
func (h *Homes) Geocode(ctx context.Context, userID string) (int, error) {
	if h.geocoder == nil {
		return 0, fmt.Errorf("%w: geocoding", ErrUnavailable)
	}
	homes, err := h.store.ListHomesMissingCoordinates(ctx, userID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, home := range homes {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		lat, lon, err := h.geocoder.GeocodeAddress(ctx, home.Address)
		if err != nil {
			h.logger.WithError(err).WithField("home_id", home.HomeID).Warn("Failed to geocode home")
			continue
		}
		if err := h.store.UpdateHomeCoordinates(ctx, home.HomeID, lat, lon); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func homeFromRequest(req models.HomeRequest) (*models.Home, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, invalid("address", "is required")
	}
	homeType := strings.ToLower(strings.TrimSpace(req.HomeType))
	if homeType == "" {
		homeType = models.HomeTypeApartment
	}
	if homeType != models.HomeTypeApartment && homeType != models.HomeTypeHouse {
		return nil, invalid("home_type", "must be %q or %q", models.HomeTypeApartment, models.HomeTypeHouse)
	}
	if req.SizeM2 <= 0 {
		return nil, invalid("size_m2", "must be positive")
	}
	if req.NumRooms <= 0 {
		return nil, invalid("num_rooms", "must be positive")
	}
	return &models.Home{
		Address:   address,
		HomeType:  homeType,
		SizeM2:    req.SizeM2,
		NumRooms:  req.NumRooms,
		HasAC:     req.HasAC,
		HasHeater: req.HasHeater,
	}, nil
}

func validateRecord(r *models.ConsumptionRecord) error {
	if r.Month < 1 || r.Month > 12 {
		return invalid("month", "must be between 1 and 12")
	}
	if r.Year < minYear {
		return invalid("year", "must be %d or later", minYear)
	}
	if r.KwhUsed < 0 {
		return invalid("kwh_used", "must not be negative")
	}
	if r.BillAmount < 0 {
		return invalid("bill_amount", "must not be negative")
	}
	return nil
}

func isApplianceType(t string) bool {
	for _, known := range models.ApplianceTypes {
		if t == known {
			return true
		}
	}
	return false
}
