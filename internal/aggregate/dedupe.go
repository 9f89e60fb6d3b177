package aggregate

import (
	"regexp"
	"strings"

	"github.com/sells-group/adintel/internal/model"
)

// dedupComponentMax caps each key component so one oversized body cannot
// defeat keying on the other components.
const dedupComponentMax = 60

var alnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Deduplicate collapses creatives that share a content key. The first
// occurrence of a key wins unless a later duplicate is secondary-sourced
// and the kept one is not; secondary creatives carry richer enrichment and
// are preferred on collision. A cross-platform duplicate records its
// platform on the kept creative instead of surviving as its own entry.
func Deduplicate(in []model.EnrichedCreative) []model.EnrichedCreative {
	out := make([]model.EnrichedCreative, 0, len(in))
	seen := make(map[string]int, len(in))

	for _, c := range in {
		key := dedupKey(c.Creative)
		idx, ok := seen[key]
		if !ok {
			seen[key] = len(out)
			out = append(out, c)
			continue
		}

		kept := &out[idx]
		if c.Origin == model.OriginSecondary && kept.Origin != model.OriginSecondary {
			c.Platforms = appendPlatform(kept.Platforms, kept.Platform)
			out[idx] = c
		} else if c.Platform != kept.Platform {
			kept.Platforms = appendPlatform(kept.Platforms, c.Platform)
		}
	}
	return out
}

// dedupKey joins the normalized advertiser, headline, and body. IDs are
// deliberately excluded: the same real ad surfaces under different IDs on
// different platforms.
func dedupKey(c model.Creative) string {
	return dedupComponent(c.Advertiser) + "|" + dedupComponent(c.Headline) + "|" + dedupComponent(c.Body)
}

func dedupComponent(s string) string {
	s = alnumRe.ReplaceAllString(strings.ToLower(s), "")
	if len(s) > dedupComponentMax {
		s = s[:dedupComponentMax]
	}
	return s
}

func appendPlatform(platforms []string, p model.Platform) []string {
	for _, existing := range platforms {
		if existing == string(p) {
			return platforms
		}
	}
	return append(platforms, string(p))
}
