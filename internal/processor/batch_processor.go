package processor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homeenergy/server/config"
	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
	"homeenergy/server/internal/queue"
)

// Transactor runs fn inside a database transaction. *gorm.DB satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor writes imported consumption batches from the queue to the
// store, chunked and retried.
type BatchProcessor struct {
	db     Transactor
	logger *logrus.Logger
	config *config.Config
	queue  *queue.ConsumptionQueue
	ctx    context.Context
	cancel context.CancelFunc
}

func NewBatchProcessor(db Transactor, queue *queue.ConsumptionQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes the processor to the queue.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.processBatch)
}

// Stop aborts pending retry waits. Batches already being written finish.
func (p *BatchProcessor) Stop() {
	p.cancel()
}

func (p *BatchProcessor) processBatch(batch []*models.ConsumptionRecord) error {
	size := p.config.BatchProcessing.MaxBatchSize
	if size <= 0 {
		size = len(batch)
	}
	for start := 0; start < len(batch); start += size {
		end := start + size
		if end > len(batch) {
			end = len(batch)
		}
		if err := p.writeChunk(batch[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// writeChunk upserts one chunk in a transaction, retrying on failure.
func (p *BatchProcessor) writeChunk(chunk []*models.ConsumptionRecord) error {
	maxRetries := p.config.BatchProcessing.MaxRetries

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.WithFields(logrus.Fields{
				"attempt":     attempt,
				"max_retries": maxRetries,
			}).Info("Retrying consumption batch")

			select {
			case <-p.ctx.Done():
				return fmt.Errorf("batch processing stopped: %w", err)
			case <-time.After(p.config.BatchProcessing.RetryDelay):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertConsumption(tx, chunk); err != nil {
				return fmt.Errorf("failed to upsert consumption batch: %w", err)
			}
			return nil
		})
		if err == nil {
			p.logger.WithField("batch_size", len(chunk)).Info("Processed consumption batch")
			return nil
		}

		p.logger.WithError(err).Error("Consumption batch failed")
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", maxRetries+1, err)
}
