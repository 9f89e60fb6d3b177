// Package enrich merges creative-level intelligence from the secondary
// source into primary aggregation results by content similarity.
package enrich

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/adintel/internal/cost"
	"github.com/sells-group/adintel/internal/match"
	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/pkg/foreplay"
)

// AdMatchThreshold is the minimum composite similarity for accepting a
// primary-to-secondary ad match.
const AdMatchThreshold = 0.7

// Composite match weights. They sum to 1.0.
const (
	headlineWeight = 0.5
	bodyWeight     = 0.35
	platformBonus  = 0.1
	formatBonus    = 0.05
)

// Defaults for the corpus window and the per-call enrichment cap.
const (
	DefaultWindowDays = 90
	DefaultEnrichCap  = 25
)

// Merger looks up a brand in the secondary source and attaches enrichment
// to matching primary creatives.
type Merger struct {
	client     foreplay.Client
	windowDays int
	enrichCap  int
	now        func() time.Time
}

// Option configures a Merger.
type Option func(*Merger)

// WithWindowDays bounds the corpus fetch to the trailing n days.
func WithWindowDays(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.windowDays = n
		}
	}
}

// WithEnrichCap limits how many creatives one call may enrich. Creatives
// beyond the cap pass through unenriched.
func WithEnrichCap(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.enrichCap = n
		}
	}
}

// NewMerger creates a Merger around the secondary-source client.
func NewMerger(client foreplay.Client, opts ...Option) *Merger {
	m := &Merger{
		client:     client,
		windowDays: DefaultWindowDays,
		enrichCap:  DefaultEnrichCap,
		now:        time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Corpus is the outcome of the secondary-source lookup phase. Lookup and
// matching are split so the lookup can overlap the primary fan-out.
type Corpus struct {
	domain    string
	brandName string
	ads       []foreplay.SpyderAd
	meta      model.EnrichmentMetadata
}

// Merge enriches the primary creatives for the given domain. Equivalent to
// Lookup followed by Apply; callers that overlap the lookup with other work
// use the two phases directly.
func (m *Merger) Merge(ctx context.Context, creatives []model.EnrichedCreative, domain string, ledger *cost.Ledger, ingestSecondary bool) ([]model.EnrichedCreative, model.EnrichmentMetadata) {
	return m.Apply(m.Lookup(ctx, domain, ledger), creatives, ingestSecondary)
}

// Lookup resolves the brand and fetches its ad corpus. Calls are sequential
// (brand -> analytics -> ads) since each depends on the prior result.
// Failures are recorded in the corpus metadata, never returned as errors.
func (m *Merger) Lookup(ctx context.Context, domain string, ledger *cost.Ledger) *Corpus {
	c := &Corpus{domain: domain}
	if domain == "" {
		return c
	}

	log := zap.L().With(zap.String("domain", domain))

	brands, err := m.client.BrandSearch(ctx, domain)
	if err != nil {
		c.meta.Error = err.Error()
		log.Warn("enrichment brand search failed", zap.Error(err))
		return c
	}
	ledger.Add(cost.CategoryBrandLookup, creditsOr(brands.Metadata, cost.BrandLookupCredits))

	brand := firstBrand(brands.Data)
	if brand == nil {
		log.Debug("no secondary brand found")
		return c
	}
	c.brandName = brand.Name
	c.meta.BrandFound = true
	c.meta.BrandID = brand.EffectiveID()

	if analytics, aErr := m.client.BrandAnalytics(ctx, c.meta.BrandID); aErr != nil {
		log.Debug("brand analytics failed", zap.Error(aErr))
	} else {
		ledger.Add(cost.CategoryAnalytics, creditsOr(analytics.Metadata, cost.AnalyticsCredits))
	}

	end := m.now()
	ads, err := m.client.SpyderAds(ctx, foreplay.SpyderAdsRequest{
		BrandID:   c.meta.BrandID,
		StartDate: end.AddDate(0, 0, -m.windowDays),
		EndDate:   end,
	})
	if err != nil {
		c.meta.Error = err.Error()
		log.Warn("enrichment ad search failed", zap.Error(err))
		return c
	}
	ledger.Add(cost.CategoryAdSearch, creditsOr(ads.Metadata, cost.AdSearchCredits))
	c.ads = ads.Data
	c.meta.CorpusSize = len(ads.Data)
	return c
}

// Apply matches the corpus against the primary creatives and attaches
// enrichment. Unmatched creatives pass through unchanged.
func (m *Merger) Apply(corpus *Corpus, creatives []model.EnrichedCreative, ingestSecondary bool) ([]model.EnrichedCreative, model.EnrichmentMetadata) {
	if corpus == nil {
		return creatives, model.EnrichmentMetadata{}
	}
	meta := corpus.meta
	if !meta.BrandFound {
		return creatives, meta
	}

	out := make([]model.EnrichedCreative, len(creatives))
	copy(out, creatives)

	for i := range out {
		if meta.Enriched >= m.enrichCap {
			break
		}
		if out[i].Origin != model.OriginPrimary || out[i].Enrichment != nil {
			continue
		}
		best, bestScore := bestMatch(out[i].Creative, corpus.ads)
		if best == nil || bestScore < AdMatchThreshold {
			continue
		}
		out[i].Enrichment = enrichmentFrom(*best, bestScore)
		meta.Enriched++
	}

	if ingestSecondary {
		for _, ad := range corpus.ads {
			out = append(out, secondaryCreative(ad, corpus.brandName))
		}
		meta.Ingested = len(corpus.ads)
	}

	zap.L().Info("enrichment merge complete",
		zap.String("domain", corpus.domain),
		zap.Int("corpus", meta.CorpusSize),
		zap.Int("enriched", meta.Enriched),
		zap.Int("ingested", meta.Ingested),
	)
	return out, meta
}

// bestMatch returns the corpus ad with the highest composite similarity.
func bestMatch(c model.Creative, corpus []foreplay.SpyderAd) (*foreplay.SpyderAd, float64) {
	var best *foreplay.SpyderAd
	bestScore := 0.0
	for i := range corpus {
		s := compositeScore(c, corpus[i])
		if s > bestScore {
			best = &corpus[i]
			bestScore = s
		}
	}
	return best, bestScore
}

// compositeScore weighs headline and body similarity plus platform and
// format equivalence bonuses.
func compositeScore(c model.Creative, ad foreplay.SpyderAd) float64 {
	var headline, body string
	if ad.Copy != nil {
		headline = ad.Copy.Headline
		body = ad.Copy.Body
	}

	s := headlineWeight*textSimilarity(c.Headline, headline) +
		bodyWeight*textSimilarity(c.Body, body)
	if platformsEquivalent(c.Platform, ad.Platform) {
		s += platformBonus
	}
	if formatsEquivalent(c.Format, ad.DisplayFormat) {
		s += formatBonus
	}
	return s
}

func textSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return match.Similarity(a, b)
}

// platformsEquivalent treats "meta" as equivalent to facebook/instagram.
func platformsEquivalent(p model.Platform, secondary string) bool {
	s := strings.ToLower(secondary)
	if s == "" {
		return false
	}
	if string(p) == s {
		return true
	}
	return p == model.PlatformMeta && (s == "facebook" || s == "instagram" || s == "meta")
}

func formatsEquivalent(f model.Format, displayFormat string) bool {
	if f == model.FormatUnknown || displayFormat == "" {
		return false
	}
	return strings.EqualFold(string(f), displayFormat)
}

func enrichmentFrom(ad foreplay.SpyderAd, confidence float64) *model.Enrichment {
	e := &model.Enrichment{
		SecondaryID:     ad.ID,
		Transcript:      ad.Transcript,
		Tone:            ad.Tone,
		MatchConfidence: confidence,
	}
	if ad.Hook != nil {
		e.HookText = ad.Hook.Text
		e.HookType = ad.Hook.Type
		e.HookDurationSec = ad.Hook.DurationSec
	}
	if ad.LandingPage != nil {
		e.LandingPageURL = ad.LandingPage.URL
		e.LandingPageShot = ad.LandingPage.ScreenshotURL
	}
	return e
}

// secondaryCreative converts a corpus ad into a creative in its own right.
// The secondary source is authoritative for itself: confidence 1.0.
func secondaryCreative(ad foreplay.SpyderAd, brandName string) model.EnrichedCreative {
	advertiser := ad.BrandName
	if advertiser == "" {
		advertiser = brandName
	}

	c := model.Creative{
		Platform:   model.PlatformForeplay,
		ID:         ad.ID,
		Advertiser: advertiser,
		Active:     ad.Live,
		Format:     model.FormatUnknown,
	}
	if ad.Copy != nil {
		c.Headline = ad.Copy.Headline
		c.Body = ad.Copy.Body
	}
	if ad.Creative != nil {
		if ad.Creative.VideoURL != "" {
			c.MediaURL = ad.Creative.VideoURL
			c.Format = model.FormatVideo
		} else if ad.Creative.ThumbnailURL != "" {
			c.MediaURL = ad.Creative.ThumbnailURL
			c.Format = model.FormatImage
		}
	}
	if c.Format == model.FormatUnknown && ad.DisplayFormat != "" {
		switch strings.ToLower(ad.DisplayFormat) {
		case "video":
			c.Format = model.FormatVideo
		case "image":
			c.Format = model.FormatImage
		case "carousel":
			c.Format = model.FormatCarousel
		}
	}
	if ad.LandingPage != nil {
		c.DetailsURL = ad.LandingPage.URL
	}

	return model.EnrichedCreative{
		Creative:   c,
		Origin:     model.OriginSecondary,
		Enrichment: enrichmentFrom(ad, 1.0),
	}
}

func firstBrand(brands []foreplay.Brand) *foreplay.Brand {
	for i := range brands {
		if brands[i].EffectiveID() != "" {
			return &brands[i]
		}
	}
	return nil
}

func creditsOr(m foreplay.Metadata, fallback int) int {
	if m.CreditsUsed > 0 {
		return m.CreditsUsed
	}
	return fallback
}
