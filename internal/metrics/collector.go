package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventPaperRequested    EventType = "paper_requested"
	EventPaperGenerated    EventType = "paper_generated"
	EventQuestionsSelected EventType = "questions_selected"
	EventDifficultySkipped EventType = "difficulty_skipped"
	EventValidationFailed  EventType = "validation_failed"
	EventAllocationFailed  EventType = "allocation_failed"
)

type MetricEvent struct {
	Type       EventType
	Timestamp  time.Time
	Difficulty string
	Questions  int
	Marks      int
	Duration   time.Duration
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// Emit queues an event without blocking. Events are dropped when the buffer
// is full or the collector is nil.
func (c *Collector) Emit(event MetricEvent) {
	if c == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
	}
}

// Start runs the collector until ctx is cancelled. The returned channel is
// closed once queued events have been drained.
func (c *Collector) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(ctx)
	}()
	return done
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventPaperRequested:
		c.metrics.IncrementRequested()

	case EventPaperGenerated:
		c.metrics.RecordGenerated(event.Duration, event.Marks)

	case EventQuestionsSelected:
		c.metrics.RecordSelection(event.Difficulty, event.Questions)

	case EventDifficultySkipped:
		c.metrics.RecordSkipped(event.Difficulty)

	case EventValidationFailed:
		c.metrics.RecordValidationFailure()

	case EventAllocationFailed:
		c.metrics.RecordAllocationFailure(event.Duration)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot(sampler string) Snapshot {
	return c.metrics.Snapshot(sampler)
}
