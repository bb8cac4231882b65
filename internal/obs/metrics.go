package obs

import (
	"sync"
	"time"
)

// Metrics collects lightweight pipeline counters and latency stats. All
// methods are nil-safe so optional wiring stays unconditional at call
// sites.
type Metrics struct {
	mu sync.Mutex

	eventCounts   map[string]uint64
	newOrders     uint64
	pricingMisses uint64
	tradesSent    uint64
	cycleFailures uint64
	queueDrops    uint64

	summarize LatencyStats
}

// LatencyStats aggregates duration samples.
type LatencyStats struct {
	count uint64
	sum   time.Duration
	min   time.Duration
	max   time.Duration
}

func (s *LatencyStats) observe(d time.Duration) {
	if s.count == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.count++
	s.sum += d
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	EventCounts   map[string]uint64
	NewOrders     uint64
	PricingMisses uint64
	TradesSent    uint64
	CycleFailures uint64
	QueueDrops    uint64
	Summarize     LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{eventCounts: make(map[string]uint64)}
}

// IncEvent counts one inbound event by its wire kind.
func (m *Metrics) IncEvent(kind string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.eventCounts[kind]++
	m.mu.Unlock()
}

// AddNewOrders counts orders reported as new by one diff cycle.
func (m *Metrics) AddNewOrders(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.mu.Lock()
	m.newOrders += uint64(n)
	m.mu.Unlock()
}

// IncPricingMiss counts one unavailable model price.
func (m *Metrics) IncPricingMiss() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.pricingMisses++
	m.mu.Unlock()
}

// IncTradeSent counts one submitted crossing.
func (m *Metrics) IncTradeSent() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.tradesSent++
	m.mu.Unlock()
}

// IncCycleFailure counts one dropped book-update cycle.
func (m *Metrics) IncCycleFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.cycleFailures++
	m.mu.Unlock()
}

// IncQueueDrop counts one event rejected by the full queue.
func (m *Metrics) IncQueueDrop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.queueDrops++
	m.mu.Unlock()
}

// ObserveSummarize tracks the latency of one order evaluation.
func (m *Metrics) ObserveSummarize(d time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.summarize.observe(d)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]uint64, len(m.eventCounts))
	for kind, n := range m.eventCounts {
		counts[kind] = n
	}

	snapshot := Snapshot{
		EventCounts:   counts,
		NewOrders:     m.newOrders,
		PricingMisses: m.pricingMisses,
		TradesSent:    m.tradesSent,
		CycleFailures: m.cycleFailures,
		QueueDrops:    m.queueDrops,
		Summarize: LatencySnapshot{
			Count: m.summarize.count,
			Min:   m.summarize.min,
			Max:   m.summarize.max,
		},
	}
	if m.summarize.count > 0 {
		snapshot.Summarize.Avg = m.summarize.sum / time.Duration(m.summarize.count)
	}
	return snapshot
}
