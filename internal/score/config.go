// Package score assigns relevance assessments to creatives: a 0-100
// confidence score, a category, and the signals that produced them.
package score

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Tables holds the static lookup data the scorer depends on. Injected
// rather than hard-coded so lists are tunable and pinnable in tests.
type Tables struct {
	// Subsidiaries maps a parent brand to its known subsidiary brands.
	// Matching is bidirectional: parent<->subsidiary and sibling<->sibling.
	Subsidiaries map[string][]string `yaml:"subsidiaries"`

	// LeadMagnetKeywords flag gated-content language (free guides, webinars).
	LeadMagnetKeywords []string `yaml:"lead_magnet_keywords"`

	// ProductKeywords are generic product/marketing terms whose absence,
	// together with no company mention, suggests partnership content.
	ProductKeywords []string `yaml:"product_keywords"`

	// TLDSuffixes are trailing TLD-like suffixes stripped from company
	// names before similarity comparison ("Funnel.io" -> "Funnel").
	TLDSuffixes []string `yaml:"tld_suffixes"`
}

// DefaultTables returns the built-in lookup tables.
func DefaultTables() Tables {
	return Tables{
		Subsidiaries: map[string][]string{
			"google":     {"youtube", "waymo", "deepmind", "fitbit", "alphabet"},
			"meta":       {"facebook", "instagram", "whatsapp", "oculus"},
			"microsoft":  {"linkedin", "github", "xbox", "activision"},
			"amazon":     {"twitch", "audible", "zappos", "whole foods"},
			"hubspot":    {"the hustle"},
			"salesforce": {"slack", "tableau", "mulesoft"},
		},
		LeadMagnetKeywords: []string{
			"free guide", "free ebook", "ebook", "free webinar", "webinar",
			"masterclass", "checklist", "template", "playbook", "secrets",
			"discover how", "free training", "cheat sheet", "download now",
			"free report", "swipe file",
		},
		ProductKeywords: []string{
			"platform", "software", "app", "tool", "solution", "product",
			"service", "pricing", "demo", "features", "upgrade", "plan",
			"integration", "dashboard", "automation",
		},
		TLDSuffixes: []string{
			".ai", ".io", ".com", ".co", ".net", ".org", ".app", ".dev", ".tech",
		},
	}
}

// LoadTables reads lookup tables from a YAML file, falling back to the
// defaults for any key the file omits.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, eris.Wrap(err, "score: read tables file")
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return tables, eris.Wrap(err, "score: parse tables file")
	}
	return tables, nil
}
