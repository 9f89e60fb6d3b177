package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/pkg/scrapecreators"
)

func newStubClient(t *testing.T, routes map[string]string) scrapecreators.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return scrapecreators.NewClient("test-key", scrapecreators.WithBaseURL(srv.URL))
}

func TestMetaAdapterFetch(t *testing.T) {
	client := newStubClient(t, map[string]string{
		"/v1/meta/adLibrary/company/ads": `{
			"searchResults": [{
				"adArchiveID": "m1",
				"pageName": "HubSpot",
				"isActive": true,
				"startDate": 1767225600,
				"publisherPlatform": ["facebook"],
				"url": "https://facebook.com/ads/library/?id=m1",
				"snapshot": {
					"title": "Grow better",
					"body": {"text": "Free CRM"},
					"display_format": "video",
					"videos": [{"video_hd_url": "https://cdn/v.mp4"}]
				}
			}],
			"totalCount": 12
		}`,
	})

	a := NewMetaAdapter(client)
	assert.Equal(t, model.PlatformMeta, a.Platform())

	res, err := a.Fetch(context.Background(), Query{Company: "HubSpot"})
	require.NoError(t, err)
	require.Len(t, res.Creatives, 1)
	assert.Equal(t, 12, res.TotalCount)

	c := res.Creatives[0]
	assert.Equal(t, "m1", c.ID)
	assert.Equal(t, "HubSpot", c.Advertiser)
	assert.Equal(t, "Grow better", c.Headline)
	assert.Equal(t, "Free CRM", c.Body)
	assert.Equal(t, model.FormatVideo, c.Format)
	assert.Equal(t, "https://cdn/v.mp4", c.MediaURL)
	assert.True(t, c.Active)
	require.NotNil(t, c.FirstSeen)
	assert.NotEmpty(t, c.RawPayload)
}

func TestMetaAdapterReportedError(t *testing.T) {
	client := newStubClient(t, map[string]string{
		"/v1/meta/adLibrary/company/ads": `{"error": "page not found"}`,
	})

	_, err := NewMetaAdapter(client).Fetch(context.Background(), Query{Company: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page not found")
}

func TestMetaAdapterTotalCountFallback(t *testing.T) {
	// Inconsistent total falls back to returned-list length.
	client := newStubClient(t, map[string]string{
		"/v1/meta/adLibrary/company/ads": `{
			"searchResults": [
				{"adArchiveID": "a", "pageName": "X"},
				{"adArchiveID": "b", "pageName": "X"}
			],
			"totalCount": 1
		}`,
	})

	res, err := NewMetaAdapter(client).Fetch(context.Background(), Query{Company: "X"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
}

func TestGoogleAdapterDerivesDomain(t *testing.T) {
	var gotDomain string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDomain = r.URL.Query().Get("domain")
		_, _ = w.Write([]byte(`{"ads": []}`))
	}))
	t.Cleanup(srv.Close)
	client := scrapecreators.NewClient("k", scrapecreators.WithBaseURL(srv.URL))

	res, err := NewGoogleAdapter(client).Fetch(context.Background(), Query{Company: "Acme Widgets"})
	require.NoError(t, err)
	assert.Empty(t, res.Creatives)
	assert.Equal(t, "acmewidgets.com", gotDomain, "domain guessed from company name")
}

func TestGoogleAdapterNoDomainResolvable(t *testing.T) {
	client := newStubClient(t, nil)

	_, err := NewGoogleAdapter(client).Fetch(context.Background(), Query{Company: "!!!"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no domain resolvable")
}

func TestLinkedInAdapterFetch(t *testing.T) {
	client := newStubClient(t, map[string]string{
		"/v1/linkedin/adLibrary/ads": `{
			"results": [{
				"id": "li1",
				"advertiser": {"name": "HubSpot"},
				"headline": "Free CRM",
				"imageUrl": "https://cdn/i.png",
				"isActive": true,
				"startDate": "2026-02-01"
			}],
			"total": 4
		}`,
	})

	res, err := NewLinkedInAdapter(client).Fetch(context.Background(), Query{Company: "HubSpot"})
	require.NoError(t, err)
	require.Len(t, res.Creatives, 1)
	assert.Equal(t, model.FormatImage, res.Creatives[0].Format)
	assert.Equal(t, "https://cdn/i.png", res.Creatives[0].MediaURL)
	require.NotNil(t, res.Creatives[0].FirstSeen)
	assert.Equal(t, 2026, res.Creatives[0].FirstSeen.Year())
}

func TestTikTokAdapterFetch(t *testing.T) {
	client := newStubClient(t, map[string]string{
		"/v1/tiktok/creativeCenter/ads": `{
			"data": {
				"materials": [{"id": "tt1", "brand_name": "HubSpot", "ad_title": "CRM", "live": true}],
				"total_count": 9
			}
		}`,
	})

	res, err := NewTikTokAdapter(client).Fetch(context.Background(), Query{Company: "HubSpot"})
	require.NoError(t, err)
	require.Len(t, res.Creatives, 1)
	assert.Equal(t, model.FormatVideo, res.Creatives[0].Format)
	assert.Equal(t, 9, res.TotalCount)
}

func TestGuessDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acmewidgets.com", guessDomain("Acme Widgets"))
	assert.Equal(t, "funnelio.com", guessDomain("Funnel.io"))
	assert.Empty(t, guessDomain("!!!"))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.FormatVideo, parseFormat("VIDEO"))
	assert.Equal(t, model.FormatImage, parseFormat("image"))
	assert.Equal(t, model.FormatImage, parseFormat("TEXT"))
	assert.Equal(t, model.FormatCarousel, parseFormat("carousel"))
	assert.Equal(t, model.FormatCarousel, parseFormat("DCO"))
	assert.Equal(t, model.FormatUnknown, parseFormat(""))
}

func TestThrottleSpacesRequests(t *testing.T) {
	t.Parallel()

	th := NewThrottle(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, th.Wait(ctx, "meta"))
	require.NoError(t, th.Wait(ctx, "meta"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 25*time.Millisecond, "second call must wait the interval")

	// Different keys are throttled independently.
	start = time.Now()
	require.NoError(t, th.Wait(ctx, "google"))
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestThrottleRespectsContext(t *testing.T) {
	t.Parallel()

	th := NewThrottle(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, th.Wait(ctx, "slow"))
	err := th.Wait(ctx, "slow")
	require.Error(t, err)
}
