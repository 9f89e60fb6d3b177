package source

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/pkg/scrapecreators"
)

// LinkedInAdapter queries the LinkedIn Ad Library.
type LinkedInAdapter struct {
	client scrapecreators.Client
}

// NewLinkedInAdapter creates a LinkedIn Ad Library adapter.
func NewLinkedInAdapter(client scrapecreators.Client) *LinkedInAdapter {
	return &LinkedInAdapter{client: client}
}

func (a *LinkedInAdapter) Platform() model.Platform {
	return model.PlatformLinkedIn
}

func (a *LinkedInAdapter) Fetch(ctx context.Context, q Query) (Result, error) {
	resp, err := a.client.LinkedInAds(ctx, scrapecreators.AdQuery{
		Company: q.Company,
		Country: q.Country,
		Limit:   q.Limit,
	})
	if err != nil {
		return Result{}, err
	}
	if resp.Message != "" {
		return Result{}, eris.Errorf("linkedin: api error: %s", resp.Message)
	}

	creatives := make([]model.Creative, 0, len(resp.Results))
	for _, ad := range resp.Results {
		creatives = append(creatives, linkedinCreative(ad))
	}

	total := resp.Total
	if total < len(creatives) {
		total = len(creatives)
	}
	return Result{Creatives: creatives, TotalCount: total}, nil
}

func linkedinCreative(ad scrapecreators.LinkedInAd) model.Creative {
	raw, _ := json.Marshal(ad)

	c := model.Creative{
		Platform:   model.PlatformLinkedIn,
		ID:         ad.ID,
		Advertiser: ad.Advertiser.Name,
		Headline:   ad.Headline,
		Body:       ad.Description,
		Active:     ad.IsActive,
		FirstSeen:  parseDate(ad.StartDate),
		LastSeen:   parseDate(ad.EndDate),
		DetailsURL: ad.AdURL,
		RawPayload: raw,
	}

	switch {
	case ad.VideoURL != "":
		c.MediaURL = ad.VideoURL
		c.Format = model.FormatVideo
	case ad.ImageURL != "":
		c.MediaURL = ad.ImageURL
		c.Format = model.FormatImage
	default:
		c.Format = model.FormatUnknown
	}

	return c
}
