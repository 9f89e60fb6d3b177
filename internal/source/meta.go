package source

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/pkg/scrapecreators"
)

// MetaAdapter queries the Meta Ad Library.
type MetaAdapter struct {
	client scrapecreators.Client
}

// NewMetaAdapter creates a Meta Ad Library adapter.
func NewMetaAdapter(client scrapecreators.Client) *MetaAdapter {
	return &MetaAdapter{client: client}
}

func (a *MetaAdapter) Platform() model.Platform {
	return model.PlatformMeta
}

func (a *MetaAdapter) Fetch(ctx context.Context, q Query) (Result, error) {
	resp, err := a.client.MetaAds(ctx, scrapecreators.AdQuery{
		Company: q.Company,
		Country: q.Country,
		Limit:   q.Limit,
	})
	if err != nil {
		return Result{}, err
	}
	if resp.Error != "" {
		return Result{}, eris.Errorf("meta: api error: %s", resp.Error)
	}

	creatives := make([]model.Creative, 0, len(resp.SearchResults))
	for _, ad := range resp.SearchResults {
		creatives = append(creatives, metaCreative(ad))
	}

	total := resp.TotalCount
	if total < len(creatives) {
		total = len(creatives)
	}
	return Result{Creatives: creatives, TotalCount: total}, nil
}

func metaCreative(ad scrapecreators.MetaAd) model.Creative {
	raw, _ := json.Marshal(ad)

	c := model.Creative{
		Platform:   model.PlatformMeta,
		ID:         ad.AdArchiveID,
		Advertiser: ad.PageName,
		Headline:   ad.Snapshot.Title,
		Body:       ad.Snapshot.Body.Text,
		Format:     parseFormat(ad.Snapshot.DisplayFormat),
		Active:     ad.IsActive,
		FirstSeen:  parseUnix(ad.StartDate),
		LastSeen:   parseUnix(ad.EndDate),
		Platforms:  ad.PublisherPlatform,
		DetailsURL: ad.URL,
		RawPayload: raw,
	}

	switch {
	case len(ad.Snapshot.Videos) > 0:
		c.MediaURL = ad.Snapshot.Videos[0].VideoHDURL
		if c.Format == model.FormatUnknown {
			c.Format = model.FormatVideo
		}
	case len(ad.Snapshot.Images) > 0:
		c.MediaURL = ad.Snapshot.Images[0].OriginalImageURL
		if c.Format == model.FormatUnknown {
			c.Format = model.FormatImage
		}
	}

	return c
}
