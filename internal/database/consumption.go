package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeenergy/server/internal/models"
)

// RecordQuery filters consumption and bill reads. Zero values disable a filter.
type RecordQuery struct {
	HomeIDs []uint
	Year    int
	Limit   int
}

func (q RecordQuery) apply(db *gorm.DB) *gorm.DB {
	db = db.Where("home_id IN ?", q.HomeIDs)
	if q.Year != 0 {
		db = db.Where("year = ?", q.Year)
	}
	db = db.Order("year DESC").Order("month DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}

// ListConsumption returns records for the given homes, most recent first.
func (d *Database) ListConsumption(ctx context.Context, q RecordQuery) ([]models.ConsumptionRecord, error) {
	records := []models.ConsumptionRecord{}
	if len(q.HomeIDs) == 0 {
		return records, nil
	}
	if err := q.apply(d.db.WithContext(ctx)).Order("home_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list consumption: %w", err)
	}
	return records, nil
}

// ListBills returns bills for the given homes, most recent first.
func (d *Database) ListBills(ctx context.Context, q RecordQuery) ([]models.BillRecord, error) {
	bills := []models.BillRecord{}
	if len(q.HomeIDs) == 0 {
		return bills, nil
	}
	if err := q.apply(d.db.WithContext(ctx)).Order("home_id").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// CreateConsumptionWithBill stores a month of usage and its bill atomically.
// A second record for the same home and period fails with ErrDuplicate.
func (d *Database) CreateConsumptionWithBill(ctx context.Context, record *models.ConsumptionRecord, bill *models.BillRecord) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create consumption record: %w", translate(err))
		}
		if err := tx.Create(bill).Error; err != nil {
			return fmt.Errorf("failed to create bill record: %w", translate(err))
		}
		return nil
	})
}

// UpsertConsumption writes a batch inside tx, replacing usage figures for
// periods that already exist and keeping the matching bill rows in step.
func UpsertConsumption(tx *gorm.DB, batch []*models.ConsumptionRecord) error {
	if len(batch) == 0 {
		return nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "home_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"kwh_used", "bill_amount"}),
	}).Create(&batch).Error
	if err != nil {
		return fmt.Errorf("failed to upsert consumption: %w", err)
	}

	bills := make([]*models.BillRecord, 0, len(batch))
	for _, r := range batch {
		bills = append(bills, &models.BillRecord{
			HomeID:     r.HomeID,
			Month:      r.Month,
			Year:       r.Year,
			ActualBill: r.BillAmount,
			DueDate:    DefaultDueDate(r.Month, r.Year),
		})
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "home_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"actual_bill"}),
	}).Create(&bills).Error
	if err != nil {
		return fmt.Errorf("failed to upsert bills: %w", err)
	}
	return nil
}

// DefaultDueDate is the 15th of the month following the billed period.
func DefaultDueDate(month, year int) time.Time {
	return time.Date(year, time.Month(month)+1, 15, 0, 0, 0, 0, time.UTC)
}

// GetBill returns a bill or ErrNotFound.
func (d *Database) GetBill(ctx context.Context, billID uint) (*models.BillRecord, error) {
	var bill models.BillRecord
	if err := d.db.WithContext(ctx).First(&bill, billID).Error; err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (d *Database) MarkBillPaid(ctx context.Context, billID uint, paidAt time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&models.BillRecord{}).
		Where("bill_id = ?", billID).
		Updates(map[string]interface{}{"is_paid": true, "payment_date": paidAt})
	if result.Error != nil {
		return fmt.Errorf("failed to mark bill paid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
