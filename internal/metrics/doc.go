// Package metrics provides real-time metrics collection for paper generation.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Papers requested and generated
//   - Validation and allocation failures
//   - Questions selected and difficulties skipped, per difficulty
//   - Generation latency with percentiles (P50, P95, P99)
//
// The collector runs in a dedicated goroutine. Emit never blocks the request
// path; events are dropped if the buffer is full.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:     metrics.EventPaperGenerated,
//		Duration: 2 * time.Millisecond,
//		Marks:    100,
//	})
//
//	snapshot := collector.Snapshot("shuffle")
//
// Remaining events are drained when the context passed to Start is cancelled.
package metrics
