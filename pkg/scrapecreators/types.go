package scrapecreators

// MetaResponse is the envelope for the Meta Ad Library endpoint.
type MetaResponse struct {
	Error         string   `json:"error,omitempty"`
	SearchResults []MetaAd `json:"searchResults"`
	TotalCount    int      `json:"totalCount"`
}

// MetaAd is one raw Meta Ad Library record.
type MetaAd struct {
	AdArchiveID       string       `json:"adArchiveID"`
	PageName          string       `json:"pageName"`
	IsActive          bool         `json:"isActive"`
	StartDate         int64        `json:"startDate"`
	EndDate           int64        `json:"endDate"`
	PublisherPlatform []string     `json:"publisherPlatform"`
	URL               string       `json:"url"`
	Snapshot          MetaSnapshot `json:"snapshot"`
}

// MetaSnapshot holds the creative content of a Meta ad. All members are
// optional in practice.
type MetaSnapshot struct {
	Title         string      `json:"title"`
	Body          MetaBody    `json:"body"`
	DisplayFormat string      `json:"display_format"`
	LinkURL       string      `json:"link_url"`
	Images        []MetaImage `json:"images"`
	Videos        []MetaVideo `json:"videos"`
}

// MetaBody wraps the ad body text.
type MetaBody struct {
	Text string `json:"text"`
}

// MetaImage is one image asset reference.
type MetaImage struct {
	OriginalImageURL string `json:"original_image_url"`
}

// MetaVideo is one video asset reference.
type MetaVideo struct {
	VideoHDURL string `json:"video_hd_url"`
}

// GoogleResponse is the envelope for the Google Ads Transparency endpoint.
type GoogleResponse struct {
	Error   string     `json:"error,omitempty"`
	Ads     []GoogleAd `json:"ads"`
	AdCount int        `json:"adCount"`
}

// GoogleAd is one raw Google Ads Transparency record.
type GoogleAd struct {
	AdvertiserID   string `json:"advertiserId"`
	CreativeID     string `json:"creativeId"`
	AdvertiserName string `json:"advertiserName"`
	Format         string `json:"format"`
	AdURL          string `json:"adUrl"`
	ImageURL       string `json:"imageUrl"`
	FirstShown     string `json:"firstShown"`
	LastShown      string `json:"lastShown"`
}

// LinkedInResponse is the envelope for the LinkedIn Ad Library endpoint.
// Errors arrive under "message" rather than "error".
type LinkedInResponse struct {
	Message string       `json:"message,omitempty"`
	Results []LinkedInAd `json:"results"`
	Total   int          `json:"total"`
}

// LinkedInAd is one raw LinkedIn Ad Library record.
type LinkedInAd struct {
	ID          string             `json:"id"`
	Advertiser  LinkedInAdvertiser `json:"advertiser"`
	Headline    string             `json:"headline"`
	Description string             `json:"description"`
	ImageURL    string             `json:"imageUrl"`
	VideoURL    string             `json:"videoUrl"`
	AdURL       string             `json:"adUrl"`
	IsActive    bool               `json:"isActive"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
}

// LinkedInAdvertiser identifies the advertising page.
type LinkedInAdvertiser struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TikTokResponse is the envelope for the TikTok Creative Center endpoint.
// The record list nests under "data".
type TikTokResponse struct {
	Error string     `json:"error,omitempty"`
	Data  TikTokData `json:"data"`
}

// TikTokData holds the nested result list.
type TikTokData struct {
	Materials  []TikTokAd `json:"materials"`
	TotalCount int        `json:"total_count"`
}

// TikTokAd is one raw TikTok Creative Center record.
type TikTokAd struct {
	ID        string `json:"id"`
	BrandName string `json:"brand_name"`
	AdTitle   string `json:"ad_title"`
	AdText    string `json:"ad_text"`
	VideoURL  string `json:"video_url"`
	CoverURL  string `json:"cover_url"`
	Live      bool   `json:"live"`
}
