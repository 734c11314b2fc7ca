package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory counters for the admin API. The back office runs
// without a metrics collector; counters are read ad hoc through Snapshot.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	latencyTotal   map[string]time.Duration
	errorCount     map[string]int64
	authRejections int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests       map[string]int64
	LatencyTotal   map[string]time.Duration
	Errors         map[string]int64
	AuthRejections int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		latencyTotal: make(map[string]time.Duration),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments the counter and latency total for a route.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.latencyTotal[key] += duration
}

// RecordError counts one failed request by error code. UNAUTHORIZED and
// FORBIDDEN are additionally tracked in aggregate: every admin route sits
// behind the token and role gates, so their combined rejection rate is a
// signal of its own.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
	if code == "UNAUTHORIZED" || code == "FORBIDDEN" {
		m.authRejections++
	}
}

// Snapshot copies all counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Requests:       make(map[string]int64, len(m.requestCount)),
		LatencyTotal:   make(map[string]time.Duration, len(m.latencyTotal)),
		Errors:         make(map[string]int64, len(m.errorCount)),
		AuthRejections: m.authRejections,
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.latencyTotal {
		snap.LatencyTotal[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	return snap
}

func routeKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
