package score

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sells-group/adintel/internal/match"
	"github.com/sells-group/adintel/internal/model"
)

// Point allocations and thresholds for the additive scoring signals. Kept
// as named constants so tests can pin exact expected scores.
const (
	// AdvertiserWeight scales advertiser-name similarity into points.
	AdvertiserWeight = 40
	// ContentMentionPoints is added when ad content mentions the company.
	ContentMentionPoints = 30
	// DomainPoints is added when the searched domain confirms the advertiser.
	DomainPoints = 20
	// ExtraWordPenalty is subtracted when the advertiser carries two or
	// more words absent from the searched company name.
	ExtraWordPenalty = 20
	// PartnershipPenalty is subtracted for likely sponsored content
	// unrelated to the brand's own product.
	PartnershipPenalty = 25
	// LeadMagnetPenalty is subtracted for lead-magnet content from an
	// advertiser that does not match the company.
	LeadMagnetPenalty = 10
	// SubsidiaryFloor is the minimum score for a known-subsidiary match.
	SubsidiaryFloor = 35

	// StrongMatchThreshold is the advertiser similarity at which the
	// advertiser is treated as the searched company itself.
	StrongMatchThreshold = 0.8
	// DomainSimThreshold is the advertiser-vs-domain-label similarity
	// needed for domain confirmation.
	DomainSimThreshold = 0.7

	maxScore = 100
)

// minTokenLen filters words considered by the extra-word penalty.
const minTokenLen = 2

// Scorer assigns relevance assessments to creatives for one searched
// company. Safe for concurrent use.
type Scorer struct {
	tables   Tables
	siblings map[string][]string
}

// NewScorer builds a Scorer around the given lookup tables.
func NewScorer(tables Tables) *Scorer {
	return &Scorer{
		tables:   tables,
		siblings: expandFamilies(tables.Subsidiaries),
	}
}

// expandFamilies turns the parent->subsidiaries table into a bidirectional
// relation: every family member maps to all other members.
func expandFamilies(subsidiaries map[string][]string) map[string][]string {
	rel := make(map[string][]string)
	for parent, subs := range subsidiaries {
		family := append([]string{parent}, subs...)
		for _, member := range family {
			for _, other := range family {
				if other != member {
					rel[member] = append(rel[member], other)
				}
			}
		}
	}
	return rel
}

// Assess scores one creative against the searched company and optional
// domain. The assessment is computed once and never mutated afterward.
func (s *Scorer) Assess(c model.Creative, company, domain string) model.RelevanceAssessment {
	var signals []string

	advCore := s.stripTLD(c.Advertiser)
	companyCore := s.stripTLD(company)

	// Signal 1: advertiser-name similarity, best of raw and core forms.
	advSim := math.Max(
		match.Similarity(c.Advertiser, company),
		match.Similarity(advCore, companyCore),
	)
	advPoints := int(math.Round(advSim * AdvertiserWeight))
	score := advPoints
	signals = append(signals, fmt.Sprintf("advertiser similarity %.2f (+%d)", advSim, advPoints))

	// Signal 2: extra words in the advertiser name suggest a different company.
	if extras := extraAdvertiserWords(c.Advertiser, company); len(extras) >= 2 {
		score -= ExtraWordPenalty
		signals = append(signals, fmt.Sprintf("extra advertiser words %v (-%d)", extras, ExtraWordPenalty))
	}

	// Signal 3: known parent/subsidiary relationship.
	subsidiary, relatedBrand := s.subsidiaryMatch(advCore, companyCore)
	if subsidiary {
		signals = append(signals, fmt.Sprintf("known related brand %q (floor %d)", relatedBrand, SubsidiaryFloor))
	}

	// Signal 4: ad content mentions the company.
	content := match.Normalize(c.Headline + " " + c.Body)
	companyNorm := match.Normalize(companyCore)
	contentMention := companyNorm != "" && content != "" && strings.Contains(content, companyNorm)
	if contentMention {
		score += ContentMentionPoints
		signals = append(signals, fmt.Sprintf("content mentions company (+%d)", ContentMentionPoints))
	}

	// Signal 5: searched domain confirms the advertiser.
	if domain != "" {
		if label := match.CompanyFromDomain(domain); label != "" {
			urlHit := c.DetailsURL != "" && strings.Contains(strings.ToLower(c.DetailsURL), label)
			if urlHit || match.Similarity(advCore, label) >= DomainSimThreshold {
				score += DomainPoints
				signals = append(signals, fmt.Sprintf("domain %q confirms advertiser (+%d)", label, DomainPoints))
			}
		}
	}

	// Signal 6: lead-magnet language.
	rawContent := strings.ToLower(c.Headline + " " + c.Body)
	leadMagnet := matchesAny(rawContent, s.tables.LeadMagnetKeywords)
	if leadMagnet {
		signals = append(signals, "lead-magnet content detected")
		if advSim < StrongMatchThreshold {
			score -= LeadMagnetPenalty
			signals = append(signals, fmt.Sprintf("lead magnet from unmatched advertiser (-%d)", LeadMagnetPenalty))
		}
	}

	// Signal 7: matching advertiser but off-topic content reads as
	// sponsored/partnership material.
	partnership := false
	if advSim >= StrongMatchThreshold && content != "" && !contentMention && !leadMagnet &&
		!matchesAny(rawContent, s.tables.ProductKeywords) {
		partnership = true
		score -= PartnershipPenalty
		signals = append(signals, fmt.Sprintf("likely partnership/off-topic content (-%d)", PartnershipPenalty))
	}

	if subsidiary && score < SubsidiaryFloor {
		score = SubsidiaryFloor
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	category, explanation := categorize(c.Advertiser, company, relatedBrand, advSim, contentMention, leadMagnet, partnership, subsidiary)

	return model.RelevanceAssessment{
		Score:       score,
		Category:    category,
		Explanation: explanation,
		Signals:     signals,
	}
}

// categorize applies the category decision table in priority order.
func categorize(advertiser, company, relatedBrand string, advSim float64, contentMention, leadMagnet, partnership, subsidiary bool) (model.Category, string) {
	switch {
	case advSim >= StrongMatchThreshold && contentMention:
		return model.CategoryDirect,
			fmt.Sprintf("%s matches %s and the ad promotes the company directly", advertiser, company)
	case advSim >= StrongMatchThreshold && leadMagnet:
		return model.CategoryLeadMagnet,
			fmt.Sprintf("%s matches %s and the ad offers gated content", advertiser, company)
	case partnership:
		return model.CategoryLeadMagnet,
			fmt.Sprintf("%s matches %s but the ad content looks like sponsored or partner material", advertiser, company)
	case advSim >= StrongMatchThreshold:
		return model.CategoryBrandAwareness,
			fmt.Sprintf("%s matches %s but the ad does not mention the company", advertiser, company)
	case subsidiary:
		return model.CategorySubsidiary,
			fmt.Sprintf("%s is a known related brand of %s (%s)", advertiser, company, relatedBrand)
	case advSim < 0.5:
		return model.CategoryUnclear,
			fmt.Sprintf("%s does not resemble %s", advertiser, company)
	default:
		return model.CategoryUnclear,
			fmt.Sprintf("%s partially resembles %s but no signal confirms the relationship", advertiser, company)
	}
}

// subsidiaryMatch reports whether the advertiser matches any known
// parent/subsidiary/sibling of the searched company.
func (s *Scorer) subsidiaryMatch(advCore, companyCore string) (bool, string) {
	related := s.siblings[match.Normalize(companyCore)]
	for _, brand := range related {
		if match.Similarity(advCore, brand) >= StrongMatchThreshold {
			return true, brand
		}
	}
	return false, ""
}

// extraAdvertiserWords returns advertiser words (longer than minTokenLen)
// that do not overlap, by substring in either direction, with any word of
// the searched company name.
func extraAdvertiserWords(advertiser, company string) []string {
	advWords := tokens(match.Normalize(advertiser))
	companyWords := tokens(match.Normalize(company))

	var extras []string
	for _, aw := range advWords {
		overlaps := false
		for _, cw := range companyWords {
			if strings.Contains(aw, cw) || strings.Contains(cw, aw) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			extras = append(extras, aw)
		}
	}
	sort.Strings(extras)
	return extras
}

func tokens(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) > minTokenLen {
			out = append(out, w)
		}
	}
	return out
}

func matchesAny(content string, keywords []string) bool {
	if content == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// stripTLD removes a trailing TLD-like suffix from a company name so
// "Funnel.io" compares as "Funnel".
func (s *Scorer) stripTLD(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range s.tables.TLDSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}
