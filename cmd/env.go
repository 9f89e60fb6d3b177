package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/adintel/internal/aggregate"
	"github.com/sells-group/adintel/internal/enrich"
	"github.com/sells-group/adintel/internal/score"
	"github.com/sells-group/adintel/internal/source"
	"github.com/sells-group/adintel/internal/store"
	"github.com/sells-group/adintel/pkg/foreplay"
	"github.com/sells-group/adintel/pkg/scrapecreators"
)

// initStore opens the configured persistence backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// buildAggregator wires the source adapters, scorer, and optional
// enrichment merger from config.
func buildAggregator() (*aggregate.Aggregator, error) {
	scClient := scrapecreators.NewClient(cfg.ScrapeCreators.Key,
		scrapecreators.WithBaseURL(cfg.ScrapeCreators.BaseURL))

	adapters := []source.Adapter{
		source.NewMetaAdapter(scClient),
		source.NewGoogleAdapter(scClient),
		source.NewLinkedInAdapter(scClient),
		source.NewTikTokAdapter(scClient),
	}

	tables := score.DefaultTables()
	if cfg.Scoring.TablesPath != "" {
		loaded, err := score.LoadTables(cfg.Scoring.TablesPath)
		if err != nil {
			zap.L().Warn("scoring tables load failed, using defaults",
				zap.String("path", cfg.Scoring.TablesPath),
				zap.Error(err),
			)
		} else {
			tables = loaded
		}
	}

	opts := []aggregate.Option{
		aggregate.WithSourceTimeout(time.Duration(cfg.Aggregate.SourceTimeoutSecs) * time.Second),
		aggregate.WithThrottle(source.NewThrottle(time.Duration(cfg.Aggregate.MinIntervalMS) * time.Millisecond)),
		aggregate.WithCreditUSD(cfg.Aggregate.CreditUSD),
	}

	if cfg.Foreplay.Key != "" {
		fpClient := foreplay.NewClient(cfg.Foreplay.Key,
			foreplay.WithBaseURL(cfg.Foreplay.BaseURL))
		merger := enrich.NewMerger(fpClient,
			enrich.WithWindowDays(cfg.Aggregate.WindowDays),
			enrich.WithEnrichCap(cfg.Aggregate.EnrichCap),
		)
		opts = append(opts, aggregate.WithMerger(merger))
	} else {
		zap.L().Debug("no foreplay key configured, enrichment disabled")
	}

	return aggregate.New(adapters, score.NewScorer(tables), opts...), nil
}
