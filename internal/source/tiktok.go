package source

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adintel/internal/model"
	"github.com/sells-group/adintel/pkg/scrapecreators"
)

// TikTokAdapter queries the TikTok Creative Center.
type TikTokAdapter struct {
	client scrapecreators.Client
}

// NewTikTokAdapter creates a TikTok Creative Center adapter.
func NewTikTokAdapter(client scrapecreators.Client) *TikTokAdapter {
	return &TikTokAdapter{client: client}
}

func (a *TikTokAdapter) Platform() model.Platform {
	return model.PlatformTikTok
}

func (a *TikTokAdapter) Fetch(ctx context.Context, q Query) (Result, error) {
	resp, err := a.client.TikTokAds(ctx, scrapecreators.AdQuery{
		Company: q.Company,
		Country: q.Country,
		Limit:   q.Limit,
	})
	if err != nil {
		return Result{}, err
	}
	if resp.Error != "" {
		return Result{}, eris.Errorf("tiktok: api error: %s", resp.Error)
	}

	creatives := make([]model.Creative, 0, len(resp.Data.Materials))
	for _, ad := range resp.Data.Materials {
		creatives = append(creatives, tiktokCreative(ad))
	}

	total := resp.Data.TotalCount
	if total < len(creatives) {
		total = len(creatives)
	}
	return Result{Creatives: creatives, TotalCount: total}, nil
}

func tiktokCreative(ad scrapecreators.TikTokAd) model.Creative {
	raw, _ := json.Marshal(ad)

	return model.Creative{
		Platform:   model.PlatformTikTok,
		ID:         ad.ID,
		Advertiser: ad.BrandName,
		Headline:   ad.AdTitle,
		Body:       ad.AdText,
		MediaURL:   ad.VideoURL,
		Format:     model.FormatVideo,
		Active:     ad.Live,
		RawPayload: raw,
	}
}
