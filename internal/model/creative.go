// Package model defines the domain types shared across the aggregation
// pipeline: creatives, relevance assessments, enrichment metadata, and the
// aggregate result envelope.
package model

import "time"

// Platform identifies the ad-library platform a creative was observed on.
type Platform string

const (
	PlatformMeta     Platform = "meta"
	PlatformGoogle   Platform = "google"
	PlatformLinkedIn Platform = "linkedin"
	PlatformTikTok   Platform = "tiktok"
	PlatformForeplay Platform = "foreplay"
)

// Format tags the creative media type.
type Format string

const (
	FormatImage    Format = "image"
	FormatVideo    Format = "video"
	FormatCarousel Format = "carousel"
	FormatUnknown  Format = "unknown"
)

// Origin marks which side of the pipeline produced a creative.
type Origin string

const (
	OriginPrimary   Origin = "primary"
	OriginSecondary Origin = "secondary"
)

// Creative is a single advertisement observed on one source. ID is unique
// within its platform only; the same real ad may surface with different IDs
// on different platforms, which is why deduplication keys on content.
type Creative struct {
	Platform   Platform   `json:"platform"`
	ID         string     `json:"id"`
	Advertiser string     `json:"advertiser"`
	Headline   string     `json:"headline,omitempty"`
	Body       string     `json:"body,omitempty"`
	MediaURL   string     `json:"media_url,omitempty"`
	Format     Format     `json:"format"`
	Active     bool       `json:"active"`
	FirstSeen  *time.Time `json:"first_seen,omitempty"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	Platforms  []string   `json:"platforms,omitempty"`
	DetailsURL string     `json:"details_url,omitempty"`
	RawPayload []byte     `json:"-"`
}

// Category classifies why a creative is (or is not) relevant to the
// searched company.
type Category string

const (
	CategoryDirect         Category = "direct"
	CategoryBrandAwareness Category = "brand_awareness"
	CategoryLeadMagnet     Category = "lead_magnet"
	CategorySubsidiary     Category = "subsidiary"
	CategoryUnclear        Category = "unclear"
)

// RelevanceAssessment is the scorer's verdict for one creative. Computed
// once, immutable afterward.
type RelevanceAssessment struct {
	Score       int      `json:"score"`
	Category    Category `json:"category"`
	Explanation string   `json:"explanation"`
	Signals     []string `json:"signals"`
}

// Enrichment carries creative-level metadata merged in from the secondary
// source.
type Enrichment struct {
	SecondaryID     string  `json:"secondary_id,omitempty"`
	Transcript      string  `json:"transcript,omitempty"`
	HookText        string  `json:"hook_text,omitempty"`
	HookType        string  `json:"hook_type,omitempty"`
	HookDurationSec float64 `json:"hook_duration_sec,omitempty"`
	Tone            string  `json:"tone,omitempty"`
	LandingPageURL  string  `json:"landing_page_url,omitempty"`
	LandingPageShot string  `json:"landing_page_screenshot,omitempty"`
	MatchConfidence float64 `json:"match_confidence"`
}

// EnrichedCreative is a Creative plus its pipeline annotations. It is
// mutated at most once (to attach enrichment) and never after entering the
// deduplicator.
type EnrichedCreative struct {
	Creative
	Origin     Origin               `json:"origin"`
	Relevance  *RelevanceAssessment `json:"relevance,omitempty"`
	Enrichment *Enrichment          `json:"enrichment,omitempty"`
}

// BrandRecord identifies a brand in the secondary source. Used only as a
// lookup key into its ad corpus; not persisted.
type BrandRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PageID string `json:"page_id,omitempty"`
}
