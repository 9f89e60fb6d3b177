package cost

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerBreakdown(t *testing.T) {
	t.Parallel()

	l := NewLedger(0.01)
	l.Add(CategoryBrandLookup, BrandLookupCredits)
	l.Add(CategoryAdSearch, AdSearchCredits)
	l.Add(CategoryAdSearch, AdSearchCredits)
	l.Add(CategoryAnalytics, AnalyticsCredits)

	b := l.Breakdown()
	assert.Equal(t, 1, b.BrandLookupCredits)
	assert.Equal(t, 10, b.AdSearchCredits)
	assert.Equal(t, 0, b.AdDetailCredits)
	assert.Equal(t, 3, b.AnalyticsCredits)
	assert.Equal(t, 14, b.TotalCredits)
	assert.InDelta(t, 0.14, b.TotalUSD, 1e-9)
	assert.Equal(t, 14, l.Total())
}

func TestLedgerIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	l := NewLedger(0)
	l.Add(CategoryAdDetail, 0)
	l.Add(CategoryAdDetail, -5)
	assert.Equal(t, 0, l.Total())
}

func TestLedgerReset(t *testing.T) {
	t.Parallel()

	l := NewLedger(0.02)
	l.Add(CategoryBrandLookup, 4)
	l.Reset()

	assert.Equal(t, 0, l.Total())
	assert.InDelta(t, 0.0, l.Breakdown().TotalUSD, 1e-9)
}

func TestLedgerConcurrentAdds(t *testing.T) {
	t.Parallel()

	l := NewLedger(0.01)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Add(CategoryAdSearch, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, l.Total())
}
