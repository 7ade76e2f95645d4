package queue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeenergy/server/internal/models"
)

func record(month int) *models.ConsumptionRecord {
	return &models.ConsumptionRecord{HomeID: 1, Month: month, Year: 2024}
}

func TestNewConsumptionQueue(t *testing.T) {
	q := NewConsumptionQueue(10, logrus.New())
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestConsumptionQueue_Push(t *testing.T) {
	q := NewConsumptionQueue(2, logrus.New())

	batch := []*models.ConsumptionRecord{record(1)}
	require.NoError(t, q.Push(batch))
	assert.Equal(t, 1, q.Len())

	require.NoError(t, q.Push(batch))
	assert.Equal(t, ErrQueueFull, q.Push(batch))

	require.NoError(t, q.Close())
	assert.Equal(t, ErrQueueClosed, q.Push(batch))
}

func TestConsumptionQueue_Subscribe(t *testing.T) {
	q := NewConsumptionQueue(10, logrus.New())

	var (
		mu        sync.Mutex
		processed []*models.ConsumptionRecord
	)
	q.Subscribe(func(records []*models.ConsumptionRecord) error {
		mu.Lock()
		defer mu.Unlock()
		processed = append(processed, records...)
		return nil
	})
	q.Start()

	require.NoError(t, q.Push([]*models.ConsumptionRecord{record(1), record(2)}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(processed) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, processed[0].Month)
	assert.Equal(t, 2, processed[1].Month)
	mu.Unlock()
	require.NoError(t, q.Close())
}

func TestConsumptionQueue_HandlerErrorDoesNotStopQueue(t *testing.T) {
	q := NewConsumptionQueue(10, logrus.New())

	var (
		mu    sync.Mutex
		calls int
	)
	q.Subscribe(func(records []*models.ConsumptionRecord) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("boom")
	})
	q.Start()

	require.NoError(t, q.Push([]*models.ConsumptionRecord{record(1)}))
	require.NoError(t, q.Push([]*models.ConsumptionRecord{record(2)}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 2
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, q.Close())
}

func TestConsumptionQueue_CloseDrainsBufferedBatches(t *testing.T) {
	q := NewConsumptionQueue(10, logrus.New())

	var (
		mu   sync.Mutex
		seen int
	)
	q.Subscribe(func(records []*models.ConsumptionRecord) error {
		mu.Lock()
		defer mu.Unlock()
		seen += len(records)
		return nil
	})

	for month := 1; month <= 3; month++ {
		require.NoError(t, q.Push([]*models.ConsumptionRecord{record(month)}))
	}
	q.Start()
	require.NoError(t, q.Close())

	mu.Lock()
	assert.Equal(t, 3, seen)
	mu.Unlock()
	assert.True(t, q.IsClosed())
	assert.NoError(t, q.Close())
}
