package source

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/pkg/scrapecreators"
)

// GoogleAdapter queries the Google Ads Transparency Center. The endpoint
// is keyed by domain; when the query carries none, a best-effort guess is
// derived from the company name.
type GoogleAdapter struct {
	client scrapecreators.Client
}

// NewGoogleAdapter creates a Google Ads Transparency adapter.
func NewGoogleAdapter(client scrapecreators.Client) *GoogleAdapter {
	return &GoogleAdapter{client: client}
}

func (a *GoogleAdapter) Platform() model.Platform {
	return model.PlatformGoogle
}

func (a *GoogleAdapter) Fetch(ctx context.Context, q Query) (Result, error) {
	domain := q.Domain
	if domain == "" {
		domain = guessDomain(q.Company)
	}
	if domain == "" {
		return Result{}, eris.New("google: no domain resolvable for query")
	}

	resp, err := a.client.GoogleAds(ctx, scrapecreators.AdQuery{
		Domain:  domain,
		Country: q.Country,
		Limit:   q.Limit,
	})
	if err != nil {
		return Result{}, err
	}
	if resp.Error != "" {
		return Result{}, eris.Errorf("google: api error: %s", resp.Error)
	}

	creatives := make([]model.Creative, 0, len(resp.Ads))
	for _, ad := range resp.Ads {
		creatives = append(creatives, googleCreative(ad))
	}

	total := resp.AdCount
	if total < len(creatives) {
		total = len(creatives)
	}
	return Result{Creatives: creatives, TotalCount: total}, nil
}

func googleCreative(ad scrapecreators.GoogleAd) model.Creative {
	raw, _ := json.Marshal(ad)

	return model.Creative{
		Platform:   model.PlatformGoogle,
		ID:         ad.CreativeID,
		Advertiser: ad.AdvertiserName,
		MediaURL:   ad.ImageURL,
		Format:     parseFormat(ad.Format),
		Active:     ad.LastShown == "",
		FirstSeen:  parseDate(ad.FirstShown),
		LastSeen:   parseDate(ad.LastShown),
		DetailsURL: ad.AdURL,
		RawPayload: raw,
	}
}
