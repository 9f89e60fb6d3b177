// Package source adapts per-platform ad-library endpoints to the unified
// creative model. Raw platform shapes never leave this package.
package source

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/sells-group/adintel/internal/model"
)

// Query is the platform-independent search request.
type Query struct {
	Company string
	Domain  string
	Country string
	Limit   int
}

// Result is one platform's parsed response. TotalCount is the platform's
// declared total when it reports one; it falls back to len(Creatives).
type Result struct {
	Creatives  []model.Creative
	TotalCount int
}

// Adapter issues one query against a single ad-library platform.
type Adapter interface {
	Platform() model.Platform
	Fetch(ctx context.Context, q Query) (Result, error)
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// guessDomain derives a best-effort domain from a company name for
// adapters that require one. A heuristic fallback, not an error.
func guessDomain(company string) string {
	slug := nonAlnumRe.ReplaceAllString(strings.ToLower(company), "")
	if slug == "" {
		return ""
	}
	return slug + ".com"
}

// parseFormat maps a platform format tag onto the unified format set.
func parseFormat(s string) model.Format {
	switch strings.ToLower(s) {
	case "video":
		return model.FormatVideo
	case "image", "text":
		return model.FormatImage
	case "carousel", "dco", "dpa", "multi_images":
		return model.FormatCarousel
	default:
		return model.FormatUnknown
	}
}

// parseUnix converts a unix-seconds timestamp, tolerating zero.
func parseUnix(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// parseDate converts a YYYY-MM-DD date string, tolerating empty/garbage.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
