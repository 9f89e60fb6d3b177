package model

import (
	"encoding/json"
	"time"
)

// Millis is a duration serialized as integer milliseconds, matching the
// _ms field names. In code it converts to and from time.Duration directly.
type Millis time.Duration

func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(m).Milliseconds())
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	*m = Millis(time.Duration(ms) * time.Millisecond)
	return nil
}

// SourceMetadata reports how one source behaved during an aggregation run.
type SourceMetadata struct {
	Platform   Platform `json:"platform"`
	Count      int      `json:"count"`
	TotalCount int      `json:"total_count"`
	Duration   Millis   `json:"duration_ms"`
	Error      string   `json:"error,omitempty"`
}

// EnrichmentMetadata reports the outcome of the secondary-source merge.
type EnrichmentMetadata struct {
	BrandFound bool   `json:"brand_found"`
	BrandID    string `json:"brand_id,omitempty"`
	CorpusSize int    `json:"corpus_size"`
	Enriched   int    `json:"enriched"`
	Ingested   int    `json:"ingested"`
	Error      string `json:"error,omitempty"`
}

// CostBreakdown converts ledger credits into USD per operation category.
type CostBreakdown struct {
	BrandLookupCredits int     `json:"brand_lookup_credits"`
	AdSearchCredits    int     `json:"ad_search_credits"`
	AdDetailCredits    int     `json:"ad_detail_credits"`
	AnalyticsCredits   int     `json:"analytics_credits"`
	TotalCredits       int     `json:"total_credits"`
	TotalUSD           float64 `json:"total_usd"`
}

// AggregateResult is the final output of one aggregation run: creatives
// sorted by relevance score descending, plus per-source and cost metadata.
type AggregateResult struct {
	RunID      string              `json:"run_id"`
	Company    string              `json:"company"`
	Domain     string              `json:"domain,omitempty"`
	Creatives  []EnrichedCreative  `json:"creatives"`
	Sources    []SourceMetadata    `json:"sources"`
	Enrichment *EnrichmentMetadata `json:"enrichment,omitempty"`
	Cost       CostBreakdown       `json:"cost"`
	StartedAt  time.Time           `json:"started_at"`
	Duration   Millis              `json:"duration_ms"`
}
