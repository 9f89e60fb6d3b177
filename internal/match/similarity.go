package match

import "strings"

// DefaultMatchThreshold is the similarity at or above which an advertiser
// name is considered a match for the searched company.
const DefaultMatchThreshold = 0.7

// Fixed scores for the guarded comparison branches. Containment is scored
// on a graduated scale by how much extra text surrounds the match.
const (
	scoreShortPrefix   = 0.95 // longer starts with "<shorter> "
	scoreShortWord     = 0.90 // shorter appears as a whole word inside longer
	scoreShortMismatch = 0.3  // short name, first two characters differ
	scoreWordContain   = 0.80 // whole-word containment, multiple extra words
	scoreOneExtraWord  = 0.75 // whole-word containment, exactly one extra word
	scoreSubstring     = 0.5  // containment without a word boundary
)

// shortNameLen is the maximum normalized length handled by the short-string
// guard. Edit-distance metrics are unreliable on names this short ("ai"
// scores high against almost anything), so containment rules apply instead.
const shortNameLen = 5

// Winkler prefix boost parameters.
const (
	winklerPrefixMax = 4
	winklerWeight    = 0.1
)

// Similarity returns a similarity score in [0,1] between two company/brand
// names. Identical non-empty strings score 1.0. Both sides are normalized
// before comparison. Commutative: Similarity(a, b) == Similarity(b, a).
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len(shorter) <= shortNameLen {
		if strings.HasPrefix(longer, shorter+" ") {
			return scoreShortPrefix
		}
		if containsWord(longer, shorter) {
			return scoreShortWord
		}
		if firstTwoDiffer(na, nb) {
			return scoreShortMismatch
		}
	} else if strings.Contains(longer, shorter) {
		if !wordBoundary(longer, shorter) {
			return scoreSubstring
		}
		if extraWords(longer, shorter) == 1 {
			return scoreOneExtraWord
		}
		return scoreWordContain
	}

	return jaroWinkler(na, nb)
}

// IsMatch reports whether advertiser matches the searched company at the
// given threshold. Similarity exactly at threshold counts as a match.
func IsMatch(advertiser, searched string, threshold float64) bool {
	if Normalize(advertiser) == Normalize(searched) {
		return true
	}
	return Similarity(advertiser, searched) >= threshold
}

// containsWord reports whether w appears as a whole word inside s, other
// than as a leading prefix.
func containsWord(s, w string) bool {
	return strings.Contains(s, " "+w+" ") || strings.HasSuffix(s, " "+w)
}

// wordBoundary reports whether sub occurs in s delimited by spaces (or the
// string boundary) on both sides.
func wordBoundary(s, sub string) bool {
	return strings.HasPrefix(s, sub+" ") ||
		strings.HasSuffix(s, " "+sub) ||
		strings.Contains(s, " "+sub+" ")
}

// extraWords counts words of longer not present in shorter.
func extraWords(longer, shorter string) int {
	have := make(map[string]bool)
	for _, w := range strings.Fields(shorter) {
		have[w] = true
	}
	extra := 0
	for _, w := range strings.Fields(longer) {
		if !have[w] {
			extra++
		}
	}
	return extra
}

func firstTwoDiffer(a, b string) bool {
	n := 2
	if len(a) < n || len(b) < n {
		n = min(len(a), len(b))
	}
	return a[:n] != b[:n]
}

// jaroWinkler computes Jaro similarity with the Winkler shared-prefix boost
// (up to winklerPrefixMax characters, winklerWeight per matching character,
// applied against the residual 1-jaro), clamped to 1.0.
func jaroWinkler(a, b string) float64 {
	j := jaro(a, b)
	if j == 0 {
		return 0
	}

	prefix := 0
	for i := 0; i < len(a) && i < len(b) && i < winklerPrefixMax; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}

	jw := j + float64(prefix)*winklerWeight*(1-j)
	if jw > 1.0 {
		jw = 1.0
	}
	return jw
}

// jaro computes the Jaro similarity of two strings.
func jaro(a, b string) float64 {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	window := max(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, la)
	bMatched := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		lo := max(0, i-window)
		hi := min(lb-1, i+window)
		for j := lo; j <= hi; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3
}
