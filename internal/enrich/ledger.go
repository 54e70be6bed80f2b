package enrich

import (
	"math"
	"sync"
)

// Ledger tracks requests issued and money spent against the configured
// ceiling, plus the set of placeIds already enriched. All methods are safe
// for concurrent use so a worker pool can share one ledger.
type Ledger struct {
	mu sync.Mutex

	costPerRequest float64
	costCeiling    float64
	maxRequests    int

	requestCount int
	enriched     map[string]bool
}

// NewLedger creates a ledger for the given per-request price and total ceiling.
// maxRequests = floor(ceiling / price).
func NewLedger(costPerRequest, costCeiling float64) *Ledger {
	maxRequests := 0
	if costPerRequest > 0 {
		// Nudge the quotient before flooring: an exact-multiple budget like
		// 0.051/0.017 lands just below the integer in IEEE arithmetic and
		// would fund one request too few.
		maxRequests = int(math.Floor(costCeiling/costPerRequest + 1e-9))
	}
	return &Ledger{
		costPerRequest: costPerRequest,
		costCeiling:    costCeiling,
		maxRequests:    maxRequests,
		enriched:       make(map[string]bool),
	}
}

// Reserve atomically claims one request slot. Returns false once the ceiling
// is reached; the ceiling check and the increment happen under one lock so
// concurrent workers can never overshoot the budget.
func (l *Ledger) Reserve() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.requestCount >= l.maxRequests {
		return false
	}
	l.requestCount++
	return true
}

// Release returns a previously reserved slot after a failed lookup.
// Failed lookups do not advance the request count or cost.
func (l *Ledger) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.requestCount > 0 {
		l.requestCount--
	}
}

// MarkEnriched records that placeID has been enriched
func (l *Ledger) MarkEnriched(placeID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enriched[placeID] = true
}

// IsEnriched reports whether placeID was already enriched (this run or a
// restored checkpoint)
func (l *Ledger) IsEnriched(placeID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enriched[placeID]
}

// Exhausted reports whether the request budget is used up
func (l *Ledger) Exhausted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requestCount >= l.maxRequests
}

// RequestCount returns the number of counted (successful) requests
func (l *Ledger) RequestCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requestCount
}

// Cost returns the accumulated spend
func (l *Ledger) Cost() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.requestCount) * l.costPerRequest
}

// MaxRequests returns the derived request cap
func (l *Ledger) MaxRequests() int {
	return l.maxRequests
}

// Restore seeds the ledger from checkpoint state: prior request count and
// the set of already-enriched placeIds.
func (l *Ledger) Restore(requestCount int, enriched []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requestCount = requestCount
	for _, id := range enriched {
		l.enriched[id] = true
	}
}
