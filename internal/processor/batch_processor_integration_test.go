package processor

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
	"homeenergy/server/internal/queue"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, database.MigrateSchema(db))
	return db
}

func TestBatchProcessingIntegration(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	home := &models.Home{UserID: "u1", Address: "1 Main St", HomeType: "house", SizeM2: 90, NumRooms: 3}
	require.NoError(t, db.Create(home).Error)

	q := queue.NewConsumptionQueue(10, logger)
	p := NewBatchProcessor(db, q, cfg, logger)
	p.Start()
	q.Start()
	defer p.Stop()

	first := []*models.ConsumptionRecord{
		{HomeID: home.HomeID, Month: 1, Year: 2024, KwhUsed: 100, BillAmount: 15},
		{HomeID: home.HomeID, Month: 2, Year: 2024, KwhUsed: 110, BillAmount: 16},
		{HomeID: home.HomeID, Month: 3, Year: 2024, KwhUsed: 120, BillAmount: 17},
	}
	require.NoError(t, q.Push(first))

	// re-importing a period overwrites it
	second := []*models.ConsumptionRecord{
		{HomeID: home.HomeID, Month: 2, Year: 2024, KwhUsed: 200, BillAmount: 30},
	}
	require.NoError(t, q.Push(second))
	require.NoError(t, q.Close())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := database.New(db)
	records, err := store.ListConsumption(ctx, database.RecordQuery{HomeIDs: []uint{home.HomeID}})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2, records[1].Month)
	assert.Equal(t, 200.0, records[1].KwhUsed)

	bills, err := store.ListBills(ctx, database.RecordQuery{HomeIDs: []uint{home.HomeID}})
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, 30.0, bills[1].ActualBill)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), bills[1].DueDate.UTC())
}
