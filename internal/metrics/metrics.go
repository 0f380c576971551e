package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxLatencySamples = 1000

type Metrics struct {
	mutex              sync.RWMutex
	requested          int64
	generated          int64
	validationFailures int64
	allocationFailures int64
	marksGenerated     int64
	selected           map[string]int64
	skipped            map[string]int64
	latencies          []time.Duration
	startTime          time.Time
}

type Snapshot struct {
	Sampler            string                       `json:"sampler"`
	Uptime             time.Duration                `json:"uptime"`
	PapersRequested    int64                        `json:"papers_requested"`
	PapersGenerated    int64                        `json:"papers_generated"`
	ValidationFailures int64                        `json:"validation_failures"`
	AllocationFailures int64                        `json:"allocation_failures"`
	MarksGenerated     int64                        `json:"marks_generated"`
	Difficulties       map[string]DifficultyMetrics `json:"difficulties"`
	Latency            LatencyMetrics               `json:"latency"`
}

type DifficultyMetrics struct {
	Selected int64 `json:"selected"`
	Skipped  int64 `json:"skipped"`
}

type LatencyMetrics struct {
	Samples int           `json:"samples"`
	Avg     time.Duration `json:"avg"`
	P50     time.Duration `json:"p50"`
	P95     time.Duration `json:"p95"`
	P99     time.Duration `json:"p99"`
}

func (m *Metrics) IncrementRequested() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requested++
}

func (m *Metrics) RecordGenerated(duration time.Duration, marks int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.generated++
	m.marksGenerated += int64(marks)
	m.recordLatency(duration)
}

func (m *Metrics) RecordSelection(difficulty string, questions int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.selected[difficulty] += int64(questions)
}

func (m *Metrics) RecordSkipped(difficulty string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.skipped[difficulty]++
}

func (m *Metrics) RecordValidationFailure() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.validationFailures++
}

func (m *Metrics) RecordAllocationFailure(duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.allocationFailures++
	m.recordLatency(duration)
}

// recordLatency keeps the most recent samples. Callers hold the lock.
func (m *Metrics) recordLatency(duration time.Duration) {
	m.latencies = append(m.latencies, duration)

	if len(m.latencies) > maxLatencySamples {
		m.latencies = m.latencies[1:]
	}
}

func (m *Metrics) Snapshot(sampler string) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Sampler:            sampler,
		Uptime:             time.Since(m.startTime),
		PapersRequested:    m.requested,
		PapersGenerated:    m.generated,
		ValidationFailures: m.validationFailures,
		AllocationFailures: m.allocationFailures,
		MarksGenerated:     m.marksGenerated,
		Difficulties:       make(map[string]DifficultyMetrics),
	}

	for difficulty, count := range m.selected {
		dm := snap.Difficulties[difficulty]
		dm.Selected = count
		snap.Difficulties[difficulty] = dm
	}
	for difficulty, count := range m.skipped {
		dm := snap.Difficulties[difficulty]
		dm.Skipped = count
		snap.Difficulties[difficulty] = dm
	}

	if len(m.latencies) > 0 {
		sorted := make([]time.Duration, len(m.latencies))
		copy(sorted, m.latencies)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.Latency = LatencyMetrics{
			Samples: len(sorted),
			Avg:     average(sorted),
			P50:     percentile(sorted, 0.50),
			P95:     percentile(sorted, 0.95),
			P99:     percentile(sorted, 0.99),
		}
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		selected:  make(map[string]int64),
		skipped:   make(map[string]int64),
		startTime: time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
