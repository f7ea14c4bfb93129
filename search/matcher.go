package search

import (
	"strings"

	"github.com/poiesic/pinyinsearch/core"
)

// Scores assigned by TieredMatcher. Zero means no match.
const (
	ScoreExact         = 500
	ScorePrefix        = 450
	ScoreContains      = 400
	ScoreInitials      = 380
	ScoreFull          = 350
	ScoreFullPrefix    = 300
	ScoreLooseInitials = 250
	ScoreAlternative   = 180
	ScoreTypo          = 80
)

// Matcher scores how well an item answers a query.
type Matcher interface {
	Score(query string, item *core.Item) int
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(query string, item *core.Item) int

// Score implements Matcher.
func (f MatcherFunc) Score(query string, item *core.Item) int {
	return f(query, item)
}

// TieredMatcher scores by the strongest tier the query reaches.
type TieredMatcher struct{}

var _ Matcher = TieredMatcher{}

// Score implements Matcher.
func (TieredMatcher) Score(query string, item *core.Item) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}

	// Han characters typed directly are matched against the name itself.
	if !isASCII(trimmed) {
		if strings.Contains(item.Name, trimmed) {
			return ScoreContains
		}
		return 0
	}

	score := literalScore(strings.ToLower(trimmed), strings.ToLower(item.Name))
	if item.Full == "" {
		return score
	}

	q := compactQuery(trimmed)
	full := item.Full

	if q == item.Initials {
		score = max(score, ScoreInitials)
	} else if looseMatch(q, item.Initials) {
		score = max(score, ScoreLooseInitials)
	}

	if q == full {
		score = max(score, ScoreFull)
	} else if strings.HasPrefix(full, q) {
		score = max(score, ScoreFullPrefix)
	}

	if score < ScoreAlternative && alternativeMatch(q, item) {
		score = ScoreAlternative
	}

	if score < ScoreTypo && len(q) >= 4 && withinOneEdit(q, full) {
		score = ScoreTypo
	}

	return score
}

func literalScore(q, name string) int {
	switch {
	case name == q:
		return ScoreExact
	case strings.HasPrefix(name, q):
		return ScorePrefix
	case strings.Contains(name, q):
		return ScoreContains
	default:
		return 0
	}
}

// alternativeMatch retries the query against the full reading with one
// polyphonic character switched to each of its other readings.
func alternativeMatch(q string, item *core.Item) bool {
	if len(item.Readings) == 0 {
		return false
	}

	primary := make([]string, len(item.Readings))
	for i := range item.Readings {
		primary[i] = item.Alternatives(i)[0]
	}

	for i := range item.Readings {
		alts := item.Alternatives(i)
		if len(alts) < 2 {
			continue
		}
		for _, alt := range alts[1:] {
			saved := primary[i]
			primary[i] = alt
			candidate := strings.Join(primary, "")
			primary[i] = saved

			if abs(len(q)-len(candidate)) <= 2 && looseMatch(q, candidate) {
				return true
			}
			if strings.HasPrefix(candidate, q) {
				return true
			}
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
