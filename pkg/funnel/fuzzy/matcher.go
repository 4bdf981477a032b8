package fuzzy

import (
	"strings"

	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Default two-tier thresholds. A score strictly above Apply is accepted
// without confirmation; a score in [Ask, Apply] requires a yes/no; anything
// below Ask is a miss. Exactly 70.0 therefore asks, it does NOT auto-apply.
const (
	DefaultApplyThreshold = 70.0
	DefaultAskThreshold   = 60.0
)

type Kind int

const (
	KindNotFound Kind = iota
	KindAsk
	KindApply
)

// Outcome is the result of matching one candidate against a catalog list.
type Outcome struct {
	Kind  Kind
	Value string  // best catalog entry; empty for NotFound
	Score float64 // similarity of the best entry, 0..100
}

func (o Outcome) Applied() bool  { return o.Kind == KindApply }
func (o Outcome) Asks() bool     { return o.Kind == KindAsk }
func (o Outcome) NotFound() bool { return o.Kind == KindNotFound }

// Match scores candidate against every entry of catalog using a ratio-based
// edit-distance metric (0..100) and classifies the single best entry into
// the apply / ask / not-found band. Ties keep the earlier catalog entry.
// An empty catalog short-circuits to NotFound(0) without scoring.
func Match(candidate string, catalog []string, applyThreshold, askThreshold float64) Outcome {
	if len(catalog) == 0 {
		return Outcome{Kind: KindNotFound}
	}

	needle := normalize(candidate)
	best := ""
	bestScore := -1.0
	for _, entry := range catalog {
		score := float64(fuzzywuzzy.Ratio(needle, normalize(entry)))
		if score > bestScore {
			best = entry
			bestScore = score
		}
	}

	switch {
	case bestScore > applyThreshold:
		return Outcome{Kind: KindApply, Value: best, Score: bestScore}
	case bestScore >= askThreshold:
		return Outcome{Kind: KindAsk, Value: best, Score: bestScore}
	default:
		return Outcome{Kind: KindNotFound, Score: bestScore}
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
