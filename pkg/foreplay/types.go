package foreplay

// Metadata reports billing usage for one API call.
type Metadata struct {
	CreditsUsed int `json:"credits_used"`
}

// BrandSearchResponse is the envelope for brand discovery.
type BrandSearchResponse struct {
	Data     []Brand  `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Brand is one discovered brand. The id has appeared under both "id" and
// "brand_id" across API revisions; EffectiveID checks both.
type Brand struct {
	ID      string `json:"id"`
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
	PageID  string `json:"page_id"`
}

// EffectiveID returns the brand id regardless of which key carried it.
func (b Brand) EffectiveID() string {
	if b.ID != "" {
		return b.ID
	}
	return b.BrandID
}

// SpyderAdsResponse is the envelope for a brand's ad corpus.
type SpyderAdsResponse struct {
	Data     []SpyderAd `json:"data"`
	Metadata Metadata   `json:"metadata"`
}

// SpyderAd is one enriched ad record. Nested sub-objects are all optional;
// callers must treat missing members as empty, not as a fault.
type SpyderAd struct {
	ID            string       `json:"id"`
	BrandName     string       `json:"brand_name"`
	Platform      string       `json:"platform"`
	DisplayFormat string       `json:"display_format"`
	Live          bool         `json:"live"`
	StartedAt     string       `json:"started_running"`
	Transcript    string       `json:"transcript"`
	Tone          string       `json:"emotional_tone"`
	Copy          *AdCopy      `json:"copy"`
	Creative      *AdCreative  `json:"creative"`
	Hook          *Hook        `json:"hook"`
	LandingPage   *LandingPage `json:"landing_page"`
}

// AdCopy holds the ad text.
type AdCopy struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// AdCreative holds media references.
type AdCreative struct {
	ThumbnailURL string `json:"thumbnail_url"`
	VideoURL     string `json:"video_url"`
}

// Hook is the analyzed opening of a video ad.
type Hook struct {
	Text        string  `json:"text"`
	Type        string  `json:"type"`
	DurationSec float64 `json:"duration_seconds"`
}

// LandingPage is the destination captured for an ad.
type LandingPage struct {
	URL           string `json:"url"`
	ScreenshotURL string `json:"screenshot_url"`
}

// AnalyticsResponse is the envelope for brand activity stats.
type AnalyticsResponse struct {
	Data     Analytics `json:"data"`
	Metadata Metadata  `json:"metadata"`
}

// Analytics summarizes a brand's ad activity.
type Analytics struct {
	TotalAds  int      `json:"total_ads"`
	ActiveAds int      `json:"active_ads"`
	Platforms []string `json:"platforms"`
}
