// Package scrapecreators is a client for the ScrapeCreators ad-library API,
// which fronts the public ad archives of Meta, Google, LinkedIn, and TikTok.
// Each platform endpoint returns its own envelope shape; decoding is
// deliberately tolerant of absent fields.
package scrapecreators

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

const defaultBaseURL = "https://api.scrapecreators.com"

// Client queries per-platform ad-library endpoints.
type Client interface {
	MetaAds(ctx context.Context, q AdQuery) (*MetaResponse, error)
	GoogleAds(ctx context.Context, q AdQuery) (*GoogleResponse, error)
	LinkedInAds(ctx context.Context, q AdQuery) (*LinkedInResponse, error)
	TikTokAds(ctx context.Context, q AdQuery) (*TikTokResponse, error)
}

// AdQuery is the common request shape for all platform endpoints.
type AdQuery struct {
	Company string
	Domain  string
	Country string
	Limit   int
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

// NewClient creates a ScrapeCreators API client.
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

func (c *httpClient) MetaAds(ctx context.Context, q AdQuery) (*MetaResponse, error) {
	params := url.Values{"companyName": {q.Company}}
	addCommon(params, q)

	var out MetaResponse
	if err := c.get(ctx, "/v1/meta/adLibrary/company/ads", params, &out); err != nil {
		return nil, eris.Wrap(err, "scrapecreators: meta ads")
	}
	return &out, nil
}

func (c *httpClient) GoogleAds(ctx context.Context, q AdQuery) (*GoogleResponse, error) {
	params := url.Values{"domain": {q.Domain}}
	addCommon(params, q)

	var out GoogleResponse
	if err := c.get(ctx, "/v1/google/adsTransparency/company/ads", params, &out); err != nil {
		return nil, eris.Wrap(err, "scrapecreators: google ads")
	}
	return &out, nil
}

func (c *httpClient) LinkedInAds(ctx context.Context, q AdQuery) (*LinkedInResponse, error) {
	params := url.Values{"company": {q.Company}}
	addCommon(params, q)

	var out LinkedInResponse
	if err := c.get(ctx, "/v1/linkedin/adLibrary/ads", params, &out); err != nil {
		return nil, eris.Wrap(err, "scrapecreators: linkedin ads")
	}
	return &out, nil
}

func (c *httpClient) TikTokAds(ctx context.Context, q AdQuery) (*TikTokResponse, error) {
	params := url.Values{"keyword": {q.Company}}
	addCommon(params, q)

	var out TikTokResponse
	if err := c.get(ctx, "/v1/tiktok/creativeCenter/ads", params, &out); err != nil {
		return nil, eris.Wrap(err, "scrapecreators: tiktok ads")
	}
	return &out, nil
}

func addCommon(params url.Values, q AdQuery) {
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("x-api-key", c.apiKey)

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
