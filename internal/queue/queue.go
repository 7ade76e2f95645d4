package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"homeenergy/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// ConsumptionQueue buffers imported consumption batches in memory and hands
// them to subscribers on a single goroutine.
type ConsumptionQueue struct {
	items    chan []*models.ConsumptionRecord
	done     chan struct{}
	stopped  chan struct{}
	maxSize  int
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.ConsumptionRecord) error
}

// NewConsumptionQueue creates a queue holding up to bufferSize batches.
func NewConsumptionQueue(bufferSize int, logger *logrus.Logger) *ConsumptionQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConsumptionQueue{
		items:   make(chan []*models.ConsumptionRecord, bufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		maxSize: bufferSize,
		logger:  logger,
	}
}

// Push enqueues a batch without blocking.
func (q *ConsumptionQueue) Push(records []*models.ConsumptionRecord) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- records:
		q.logger.WithField("batch_size", len(records)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a handler called for every batch.
func (q *ConsumptionQueue) Subscribe(handler func([]*models.ConsumptionRecord) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins delivering batches to subscribers. Calling it again is a no-op.
func (q *ConsumptionQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

func (q *ConsumptionQueue) process() {
	defer close(q.stopped)
	for {
		select {
		case <-q.done:
			q.drain()
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// drain handles batches pushed before Close.
func (q *ConsumptionQueue) drain() {
	for {
		select {
		case batch := <-q.items:
			q.processBatch(batch)
		default:
			return
		}
	}
}

func (q *ConsumptionQueue) processBatch(batch []*models.ConsumptionRecord) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).WithField("batch_size", len(batch)).Error("Handler failed to process batch")
		}
	}
}

// Close rejects new pushes, processes what is buffered and waits for the
// worker to exit.
func (q *ConsumptionQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.done)
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

// Len returns the number of buffered batches.
func (q *ConsumptionQueue) Len() int {
	return len(q.items)
}

// IsClosed reports whether Close has been called.
func (q *ConsumptionQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
