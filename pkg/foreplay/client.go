// Package foreplay is a client for the Foreplay Spyder API, the secondary
// enrichment source: brand discovery by domain and creative-level ad
// intelligence (hooks, transcripts, landing pages). Every call consumes
// billable credits, reported back in response metadata.
package foreplay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://public.api.foreplay.co"

// Client talks to the Foreplay public API.
type Client interface {
	// BrandSearch looks up a brand by company domain. Zero or one brand
	// is expected per domain.
	BrandSearch(ctx context.Context, domain string) (*BrandSearchResponse, error)
	// SpyderAds fetches a brand's ad corpus over a date range.
	SpyderAds(ctx context.Context, req SpyderAdsRequest) (*SpyderAdsResponse, error)
	// BrandAnalytics fetches aggregate activity stats for a brand.
	BrandAnalytics(ctx context.Context, brandID string) (*AnalyticsResponse, error)
}

// SpyderAdsRequest bounds an ad-corpus fetch.
type SpyderAdsRequest struct {
	BrandID   string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Foreplay API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) BrandSearch(ctx context.Context, domain string) (*BrandSearchResponse, error) {
	params := url.Values{"domain": {domain}}

	var out BrandSearchResponse
	if err := c.get(ctx, "/api/discovery/brands", params, &out); err != nil {
		return nil, eris.Wrap(err, "foreplay: brand search")
	}
	return &out, nil
}

func (c *httpClient) SpyderAds(ctx context.Context, req SpyderAdsRequest) (*SpyderAdsResponse, error) {
	params := url.Values{
		"brand_id":   {req.BrandID},
		"start_date": {req.StartDate.Format("2006-01-02")},
		"end_date":   {req.EndDate.Format("2006-01-02")},
	}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}

	var out SpyderAdsResponse
	if err := c.get(ctx, "/api/spyder/ads", params, &out); err != nil {
		return nil, eris.Wrap(err, "foreplay: spyder ads")
	}
	return &out, nil
}

func (c *httpClient) BrandAnalytics(ctx context.Context, brandID string) (*AnalyticsResponse, error) {
	params := url.Values{"brand_id": {brandID}}

	var out AnalyticsResponse
	if err := c.get(ctx, "/api/spyder/analytics", params, &out); err != nil {
		return nil, eris.Wrap(err, "foreplay: brand analytics")
	}
	return &out, nil
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}
