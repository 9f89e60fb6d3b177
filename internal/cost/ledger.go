// Package cost tracks paid-API credit consumption per aggregation session.
package cost

import (
	"sync"

	"github.com/sells-group/adintel/internal/model"
)

// Category identifies a billable secondary-source operation.
type Category string

const (
	CategoryBrandLookup Category = "brand_lookup"
	CategoryAdSearch    Category = "ad_search"
	// CategoryAdDetail is reserved for a per-ad detail fetch; no current
	// operation bills it.
	CategoryAdDetail  Category = "ad_detail"
	CategoryAnalytics Category = "analytics"
)

// Default credit prices per operation, used when the API response does not
// report its own usage.
const (
	BrandLookupCredits = 1
	AdSearchCredits    = 5
	AdDetailCredits    = 2
	AnalyticsCredits   = 3
)

// DefaultCreditUSD is the billing rate per credit.
const DefaultCreditUSD = 0.01

// Ledger accumulates credits consumed during one aggregation session.
// One ledger per session, passed explicitly; safe for concurrent use
// within that session.
type Ledger struct {
	mu        sync.Mutex
	credits   map[Category]int
	creditUSD float64
}

// NewLedger creates an empty ledger billing at the given USD-per-credit
// rate. A zero rate falls back to DefaultCreditUSD.
func NewLedger(creditUSD float64) *Ledger {
	if creditUSD <= 0 {
		creditUSD = DefaultCreditUSD
	}
	return &Ledger{
		credits:   make(map[Category]int),
		creditUSD: creditUSD,
	}
}

// Add records credits consumed by one operation.
func (l *Ledger) Add(cat Category, credits int) {
	if credits <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credits[cat] += credits
}

// Total returns the credits consumed across all categories.
func (l *Ledger) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, c := range l.credits {
		total += c
	}
	return total
}

// Breakdown reports per-category credits and the USD total.
func (l *Ledger) Breakdown() model.CostBreakdown {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := model.CostBreakdown{
		BrandLookupCredits: l.credits[CategoryBrandLookup],
		AdSearchCredits:    l.credits[CategoryAdSearch],
		AdDetailCredits:    l.credits[CategoryAdDetail],
		AnalyticsCredits:   l.credits[CategoryAnalytics],
	}
	b.TotalCredits = b.BrandLookupCredits + b.AdSearchCredits + b.AdDetailCredits + b.AnalyticsCredits
	b.TotalUSD = float64(b.TotalCredits) * l.creditUSD
	return b
}

// Reset clears the ledger between independent aggregation sessions.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credits = make(map[Category]int)
}
