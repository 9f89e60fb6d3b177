// Package aggregate orchestrates one intelligence run: concurrent fan-out
// to the ad-library sources, relevance scoring, optional secondary-source
// enrichment, deduplication, and final ordering by score.
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/adintel/internal/cost"
	"github.com/sells-group/adintel/internal/enrich"
	"github.com/sells-group/adintel/internal/match"
	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/internal/score"
	"github.com/sells-group/adintel/internal/source"
)

// DefaultSourceTimeout bounds each per-source HTTP call.
const DefaultSourceTimeout = 30 * time.Second

// Request describes one aggregation run. Company or Domain must be set;
// a missing company name is derived from the domain. RunID lets a caller
// that persists the run up front keep the stored and returned IDs in sync;
// left empty, a fresh ID is assigned.
type Request struct {
	RunID           string
	Company         string
	Domain          string
	Country         string
	Limit           int
	IngestSecondary bool
}

// Aggregator fans a request out to every configured source and assembles
// the scored, deduplicated result. Safe for concurrent runs; each run gets
// its own cost ledger.
type Aggregator struct {
	adapters      []source.Adapter
	scorer        *score.Scorer
	merger        *enrich.Merger
	throttle      *source.Throttle
	sourceTimeout time.Duration
	creditUSD     float64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMerger enables secondary-source enrichment for runs that carry a
// domain.
func WithMerger(m *enrich.Merger) Option {
	return func(a *Aggregator) { a.merger = m }
}

// WithSourceTimeout overrides the per-source call timeout.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.sourceTimeout = d
		}
	}
}

// WithThrottle replaces the default per-source request throttle.
func WithThrottle(t *source.Throttle) Option {
	return func(a *Aggregator) { a.throttle = t }
}

// WithCreditUSD sets the per-credit billing rate for cost reporting.
func WithCreditUSD(rate float64) Option {
	return func(a *Aggregator) { a.creditUSD = rate }
}

// New creates an Aggregator over the given source adapters.
func New(adapters []source.Adapter, scorer *score.Scorer, opts ...Option) *Aggregator {
	a := &Aggregator{
		adapters:      adapters,
		scorer:        scorer,
		throttle:      source.NewThrottle(source.DefaultMinInterval),
		sourceTimeout: DefaultSourceTimeout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run executes one aggregation session. A single source's failure is
// recorded in that source's metadata and never aborts the others; the run
// itself fails only on an empty request.
func (a *Aggregator) Run(ctx context.Context, req Request) (*model.AggregateResult, error) {
	if req.Company == "" && req.Domain == "" {
		return nil, eris.New("aggregate: company or domain required")
	}
	if req.Company == "" {
		req.Company = match.CompanyFromDomain(req.Domain)
	}

	started := time.Now()
	ledger := cost.NewLedger(a.creditUSD)
	log := zap.L().With(zap.String("company", req.Company))

	sources := make([]model.SourceMetadata, len(a.adapters))
	batches := make([][]model.Creative, len(a.adapters))
	var corpus *enrich.Corpus

	// Per-task failures are captured in the source metadata, so the group
	// never sees an error and every task runs to completion.
	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range a.adapters {
		g.Go(func() error {
			meta := &sources[i]
			meta.Platform = adapter.Platform()

			fetchStart := time.Now()
			res, err := a.fetchOne(gctx, adapter, req)
			meta.Duration = model.Millis(time.Since(fetchStart))
			if err != nil {
				meta.Error = err.Error()
				log.Warn("source fetch failed",
					zap.String("platform", string(meta.Platform)),
					zap.Error(err),
				)
				return nil
			}
			batches[i] = res.Creatives
			meta.Count = len(res.Creatives)
			meta.TotalCount = res.TotalCount
			return nil
		})
	}

	// The secondary lookup depends only on the domain, so it overlaps the
	// primary fan-out; matching happens after both complete.
	if a.merger != nil && req.Domain != "" {
		g.Go(func() error {
			corpus = a.merger.Lookup(gctx, req.Domain, ledger)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	creatives := make([]model.EnrichedCreative, 0, total)
	for _, b := range batches {
		for _, c := range b {
			assessment := a.scorer.Assess(c, req.Company, req.Domain)
			creatives = append(creatives, model.EnrichedCreative{
				Creative:  c,
				Origin:    model.OriginPrimary,
				Relevance: &assessment,
			})
		}
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := &model.AggregateResult{
		RunID:     runID,
		Company:   req.Company,
		Domain:    req.Domain,
		Sources:   sources,
		StartedAt: started.UTC(),
	}

	if corpus != nil {
		merged, meta := a.merger.Apply(corpus, creatives, req.IngestSecondary)
		creatives = merged
		result.Enrichment = &meta
	}

	// Ingested secondary creatives arrive unscored.
	for i := range creatives {
		if creatives[i].Relevance == nil {
			assessment := a.scorer.Assess(creatives[i].Creative, req.Company, req.Domain)
			creatives[i].Relevance = &assessment
		}
	}

	creatives = Deduplicate(creatives)
	sortByScore(creatives)

	result.Creatives = creatives
	result.Cost = ledger.Breakdown()
	result.Duration = model.Millis(time.Since(started))

	log.Info("aggregation complete",
		zap.String("run_id", result.RunID),
		zap.Int("creatives", len(creatives)),
		zap.Duration("duration", time.Duration(result.Duration)),
	)
	return result, nil
}

// fetchOne runs a single source call under its own timeout, spaced by the
// per-source throttle. A deadline hit surfaces as a distinguishable
// "timed out" error instead of the raw context error.
func (a *Aggregator) fetchOne(ctx context.Context, adapter source.Adapter, req Request) (source.Result, error) {
	tctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	key := string(adapter.Platform())
	if err := a.throttle.Wait(tctx, key); err != nil {
		return source.Result{}, err
	}

	res, err := adapter.Fetch(tctx, source.Query{
		Company: req.Company,
		Domain:  req.Domain,
		Country: req.Country,
		Limit:   req.Limit,
	})
	if err != nil {
		if tctx.Err() == context.DeadlineExceeded {
			return source.Result{}, eris.Errorf("%s: timed out after %s", key, a.sourceTimeout)
		}
		return source.Result{}, err
	}
	return res, nil
}

// sortByScore orders by relevance descending, with platform then ID as
// deterministic tiebreaks.
func sortByScore(creatives []model.EnrichedCreative) {
	sort.SliceStable(creatives, func(i, j int) bool {
		si, sj := creatives[i].Relevance.Score, creatives[j].Relevance.Score
		if si != sj {
			return si > sj
		}
		if creatives[i].Platform != creatives[j].Platform {
			return creatives[i].Platform < creatives[j].Platform
		}
		return creatives[i].ID < creatives[j].ID
	})
}
