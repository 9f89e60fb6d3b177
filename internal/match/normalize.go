// Package match provides company and brand name normalization and fuzzy
// string comparison tuned for advertiser identity matching. The heuristics
// here are deliberately narrow: they work on company/brand name strings,
// not general entities.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// corporateSuffixes lists corporate/legal suffixes stripped during name
// normalization, anchored at the end of the name.
var corporateSuffixes = []string{
	"inc", "llc", "corp", "corporation", "ltd", "limited",
	"co", "company", "group", "international", "intl",
}

var (
	suffixRe     = regexp.MustCompile(`(?:\s+(?:` + strings.Join(corporateSuffixes, "|") + `))+\s*$`)
	punctRe      = regexp.MustCompile(`[^a-z0-9\s]+`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// Normalize standardizes a company or brand name for comparison by:
//  1. Lowercasing and trimming whitespace
//  2. Folding diacritics to their ASCII base ("Nestlé" -> "nestle")
//  3. Stripping all punctuation
//  4. Stripping corporate suffixes (Inc, LLC, Corp, ...) at the end
//  5. Collapsing runs of whitespace
//
// Punctuation goes before the suffix strip so a wrapped suffix ("Acme
// (Inc)") is still recognized; the order is what keeps Normalize
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, name); err == nil {
		name = folded
	}

	name = punctRe.ReplaceAllString(name, "")
	name = suffixRe.ReplaceAllString(name, "")
	name = multiSpaceRe.ReplaceAllString(name, " ")

	return strings.TrimSpace(name)
}

// genericSLD holds registrable second-level labels that are themselves
// generic (co.uk-style multi-part TLDs).
var genericSLD = map[string]bool{
	"co":  true,
	"com": true,
	"org": true,
	"net": true,
}

// CompanyFromDomain extracts the company label from a domain or URL.
// "https://www.hubspot.com/pricing" -> "hubspot", "bbc.co.uk" -> "bbc".
// Returns "" for empty or unsplittable input.
func CompanyFromDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	domain = strings.TrimPrefix(domain, "www.")
	if i := strings.IndexAny(domain, "/?"); i >= 0 {
		domain = domain[:i]
	}
	if domain == "" {
		return ""
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return ""
	}
	if len(labels) >= 3 && genericSLD[labels[len(labels)-2]] {
		return labels[len(labels)-3]
	}
	return labels[len(labels)-2]
}
