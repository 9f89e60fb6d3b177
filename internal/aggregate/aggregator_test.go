package aggregate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adintel/internal/enrich"
	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/internal/score"
	"github.com/sells-group/adintel/internal/source"
	"github.com/sells-group/adintel/pkg/foreplay"
)

type fakeAdapter struct {
	platform model.Platform
	result   source.Result
	err      error
	delay    time.Duration
}

func (f *fakeAdapter) Platform() model.Platform { return f.platform }

func (f *fakeAdapter) Fetch(ctx context.Context, q source.Query) (source.Result, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return source.Result{}, ctx.Err()
		}
	}
	return f.result, f.err
}

type stubForeplay struct {
	brands *foreplay.BrandSearchResponse
	ads    *foreplay.SpyderAdsResponse
}

func (s *stubForeplay) BrandSearch(ctx context.Context, domain string) (*foreplay.BrandSearchResponse, error) {
	return s.brands, nil
}

func (s *stubForeplay) SpyderAds(ctx context.Context, req foreplay.SpyderAdsRequest) (*foreplay.SpyderAdsResponse, error) {
	return s.ads, nil
}

func (s *stubForeplay) BrandAnalytics(ctx context.Context, brandID string) (*foreplay.AnalyticsResponse, error) {
	return nil, errors.New("not available")
}

func creative(platform model.Platform, id, advertiser, headline string) model.Creative {
	return model.Creative{Platform: platform, ID: id, Advertiser: advertiser, Headline: headline}
}

func newTestAggregator(adapters []source.Adapter, opts ...Option) *Aggregator {
	opts = append(opts, WithThrottle(source.NewThrottle(time.Millisecond)))
	return New(adapters, score.NewScorer(score.DefaultTables()), opts...)
}

func TestRunRequiresQuery(t *testing.T) {
	t.Parallel()

	_, err := newTestAggregator(nil).Run(context.Background(), Request{})
	require.Error(t, err)
}

func TestRunPartialFailure(t *testing.T) {
	t.Parallel()

	adapters := []source.Adapter{
		&fakeAdapter{
			platform: model.PlatformMeta,
			result: source.Result{
				Creatives: []model.Creative{
					creative(model.PlatformMeta, "m1", "HubSpot", "Grow better"),
					creative(model.PlatformMeta, "m2", "Acme Corp", "Buy widgets"),
				},
				TotalCount: 8,
			},
		},
		&fakeAdapter{platform: model.PlatformGoogle, err: errors.New("rate limited")},
	}

	res, err := newTestAggregator(adapters).Run(context.Background(), Request{Company: "HubSpot"})
	require.NoError(t, err, "one failed source must not abort the run")
	require.Len(t, res.Sources, 2)

	byPlatform := map[model.Platform]model.SourceMetadata{}
	for _, s := range res.Sources {
		byPlatform[s.Platform] = s
	}
	assert.Equal(t, 2, byPlatform[model.PlatformMeta].Count)
	assert.Equal(t, 8, byPlatform[model.PlatformMeta].TotalCount)
	assert.Empty(t, byPlatform[model.PlatformMeta].Error)
	assert.Contains(t, byPlatform[model.PlatformGoogle].Error, "rate limited")

	require.Len(t, res.Creatives, 2)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "HubSpot", res.Company)
	assert.Equal(t, 0, res.Cost.TotalCredits, "no secondary source queried")

	for _, c := range res.Creatives {
		require.NotNil(t, c.Relevance, "every creative is scored")
		assert.Equal(t, model.OriginPrimary, c.Origin)
	}
	assert.Equal(t, "HubSpot", res.Creatives[0].Advertiser, "exact match sorts first")
	assert.GreaterOrEqual(t, res.Creatives[0].Relevance.Score, res.Creatives[1].Relevance.Score)
}

func TestRunSourceTimeout(t *testing.T) {
	t.Parallel()

	adapters := []source.Adapter{
		&fakeAdapter{platform: model.PlatformMeta, delay: time.Second},
	}
	agg := newTestAggregator(adapters, WithSourceTimeout(30*time.Millisecond))

	res, err := agg.Run(context.Background(), Request{Company: "HubSpot"})
	require.NoError(t, err)
	require.Len(t, res.Sources, 1)
	assert.Contains(t, res.Sources[0].Error, "timed out")
	assert.Empty(t, res.Creatives)
}

func TestRunDerivesCompanyFromDomain(t *testing.T) {
	t.Parallel()

	res, err := newTestAggregator(nil).Run(context.Background(), Request{Domain: "hubspot.com"})
	require.NoError(t, err)
	assert.Equal(t, "hubspot", res.Company)
}

func TestRunWithEnrichment(t *testing.T) {
	t.Parallel()

	adapters := []source.Adapter{
		&fakeAdapter{
			platform: model.PlatformMeta,
			result: source.Result{
				Creatives: []model.Creative{
					{Platform: model.PlatformMeta, ID: "m1", Advertiser: "HubSpot", Headline: "Free CRM forever", Body: "Try the tool today"},
				},
				TotalCount: 1,
			},
		},
	}
	client := &stubForeplay{
		brands: &foreplay.BrandSearchResponse{
			Data: []foreplay.Brand{{BrandID: "br-1", Name: "HubSpot"}},
		},
		ads: &foreplay.SpyderAdsResponse{
			Data: []foreplay.SpyderAd{{
				ID:       "sp-1",
				Platform: "facebook",
				Copy:     &foreplay.AdCopy{Headline: "Free CRM forever", Body: "Try the tool today"},
			}},
			Metadata: foreplay.Metadata{CreditsUsed: 5},
		},
	}
	agg := newTestAggregator(adapters, WithMerger(enrich.NewMerger(client)))

	res, err := agg.Run(context.Background(), Request{Company: "HubSpot", Domain: "hubspot.com"})
	require.NoError(t, err)

	require.NotNil(t, res.Enrichment)
	assert.True(t, res.Enrichment.BrandFound)
	assert.Equal(t, 1, res.Enrichment.Enriched)

	require.Len(t, res.Creatives, 1)
	require.NotNil(t, res.Creatives[0].Enrichment)
	assert.GreaterOrEqual(t, res.Creatives[0].Enrichment.MatchConfidence, enrich.AdMatchThreshold)

	assert.Equal(t, 5, res.Cost.AdSearchCredits)
	assert.Equal(t, 1, res.Cost.BrandLookupCredits)
	assert.Positive(t, res.Cost.TotalUSD)
}

func TestRunScoresIngestedSecondaries(t *testing.T) {
	t.Parallel()

	client := &stubForeplay{
		brands: &foreplay.BrandSearchResponse{
			Data: []foreplay.Brand{{BrandID: "br-1", Name: "HubSpot"}},
		},
		ads: &foreplay.SpyderAdsResponse{
			Data: []foreplay.SpyderAd{{
				ID:   "sp-1",
				Copy: &foreplay.AdCopy{Headline: "Grow better", Body: "CRM for everyone"},
			}},
		},
	}
	agg := newTestAggregator(nil, WithMerger(enrich.NewMerger(client)))

	res, err := agg.Run(context.Background(), Request{Company: "HubSpot", Domain: "hubspot.com", IngestSecondary: true})
	require.NoError(t, err)

	require.Len(t, res.Creatives, 1)
	assert.Equal(t, model.OriginSecondary, res.Creatives[0].Origin)
	require.NotNil(t, res.Creatives[0].Relevance, "ingested creatives are scored too")
}

func TestDeduplicateFirstWins(t *testing.T) {
	t.Parallel()

	in := []model.EnrichedCreative{
		{Creative: creative(model.PlatformMeta, "m1", "HubSpot", "Grow better"), Origin: model.OriginPrimary},
		{Creative: creative(model.PlatformMeta, "m2", "HubSpot", "Grow better"), Origin: model.OriginPrimary},
		{Creative: creative(model.PlatformMeta, "m3", "HubSpot", "Something else"), Origin: model.OriginPrimary},
	}

	out := Deduplicate(in)
	require.Len(t, out, 2)
	assert.Equal(t, "m1", out[0].ID)
	assert.Equal(t, "m3", out[1].ID)
}

func TestDeduplicatePrefersSecondary(t *testing.T) {
	t.Parallel()

	in := []model.EnrichedCreative{
		{Creative: creative(model.PlatformMeta, "m1", "HubSpot", "Grow better"), Origin: model.OriginPrimary},
		{Creative: creative(model.PlatformForeplay, "sp1", "HubSpot", "Grow better"), Origin: model.OriginSecondary},
	}

	out := Deduplicate(in)
	require.Len(t, out, 1)
	assert.Equal(t, "sp1", out[0].ID)
	assert.Equal(t, model.OriginSecondary, out[0].Origin)
	assert.Contains(t, out[0].Platforms, string(model.PlatformMeta), "displaced platform is recorded")
}

func TestDeduplicateRecordsCrossPlatform(t *testing.T) {
	t.Parallel()

	in := []model.EnrichedCreative{
		{Creative: creative(model.PlatformMeta, "m1", "HubSpot", "Grow better"), Origin: model.OriginPrimary},
		{Creative: creative(model.PlatformLinkedIn, "li1", "HubSpot", "Grow better"), Origin: model.OriginPrimary},
	}

	out := Deduplicate(in)
	require.Len(t, out, 1)
	assert.Equal(t, model.PlatformMeta, out[0].Platform)
	assert.Equal(t, []string{"linkedin"}, out[0].Platforms)
}

func TestDedupKeyCapsComponents(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", dedupComponentMax)
	a := creative(model.PlatformMeta, "a", "HubSpot", long+"different")
	b := creative(model.PlatformMeta, "b", "HubSpot", long+"DIVERGENT")

	assert.Equal(t, dedupKey(a), dedupKey(b), "text past the cap does not split keys")

	short := creative(model.PlatformMeta, "c", "HubSpot", "short")
	assert.NotEqual(t, dedupKey(a), dedupKey(short))
}

func TestSortByScoreTiebreaks(t *testing.T) {
	t.Parallel()

	rel := func(n int) *model.RelevanceAssessment { return &model.RelevanceAssessment{Score: n} }
	in := []model.EnrichedCreative{
		{Creative: creative(model.PlatformTikTok, "t1", "A", "x"), Relevance: rel(50)},
		{Creative: creative(model.PlatformMeta, "m2", "A", "y"), Relevance: rel(50)},
		{Creative: creative(model.PlatformMeta, "m1", "A", "z"), Relevance: rel(90)},
	}

	sortByScore(in)
	assert.Equal(t, "m1", in[0].ID)
	assert.Equal(t, "m2", in[1].ID, "equal scores order by platform then id")
	assert.Equal(t, "t1", in[2].ID)
}
