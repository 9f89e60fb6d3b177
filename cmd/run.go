package main

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adintel/internal/aggregate"
)

var (
	runCompany string
	runDomain  string
	runCountry string
	runLimit   int
	runIngest  bool
	runSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Aggregate ad intelligence for a single company",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runCompany == "" && runDomain == "" {
			return eris.New("either --company or --domain is required")
		}

		agg, err := buildAggregator()
		if err != nil {
			return err
		}

		req := aggregate.Request{
			Company:         runCompany,
			Domain:          runDomain,
			Country:         runCountry,
			Limit:           runLimit,
			IngestSecondary: runIngest || cfg.Aggregate.IngestSecondary,
		}
		if req.Country == "" {
			req.Country = cfg.Aggregate.Country
		}
		if req.Limit <= 0 {
			req.Limit = cfg.Aggregate.Limit
		}

		if runSave {
			return runAndPersist(cmd, req)
		}

		result, err := agg.Run(ctx, req)
		if err != nil {
			return eris.Wrap(err, "aggregate run")
		}

		zap.L().Info("aggregation complete",
			zap.String("company", result.Company),
			zap.Int("creatives", len(result.Creatives)),
			zap.Float64("cost_usd", result.Cost.TotalUSD),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// runAndPersist records the run in the store before and after execution so
// a crash leaves a traceable row.
func runAndPersist(cmd *cobra.Command, req aggregate.Request) error {
	ctx := cmd.Context()

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return eris.Wrap(err, "migrate store")
	}

	agg, err := buildAggregator()
	if err != nil {
		return err
	}

	req.RunID = uuid.NewString()
	if _, err := st.CreateRun(ctx, req.RunID, req.Company, req.Domain); err != nil {
		return err
	}

	result, err := agg.Run(ctx, req)
	if err != nil {
		if failErr := st.FailRun(ctx, req.RunID, err.Error()); failErr != nil {
			zap.L().Error("record run failure", zap.Error(failErr))
		}
		return eris.Wrap(err, "aggregate run")
	}

	if err := st.CompleteRun(ctx, req.RunID, result); err != nil {
		return eris.Wrap(err, "persist run result")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func init() {
	runCmd.Flags().StringVar(&runCompany, "company", "", "company name to search")
	runCmd.Flags().StringVar(&runDomain, "domain", "", "company domain (enables enrichment and domain scoring)")
	runCmd.Flags().StringVar(&runCountry, "country", "", "country filter (default from config)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "max creatives per source (default from config)")
	runCmd.Flags().BoolVar(&runIngest, "ingest-secondary", false, "also ingest Foreplay ads as creatives")
	runCmd.Flags().BoolVar(&runSave, "save", false, "persist the run to the store")
	rootCmd.AddCommand(runCmd)
}
