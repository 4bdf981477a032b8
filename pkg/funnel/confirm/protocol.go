package confirm

import "strings"

// Result of interpreting a user reply while an Ask candidate is pending.
type Result int

const (
	NotApplicable Result = iota
	Confirmed
	Rejected
)

// Pending is a mid-confidence fuzzy candidate parked in the session slots
// until the user answers "did you mean X?". DeferredModel carries the raw
// model text from a partial jump, so confirming the brand can immediately
// re-run model resolution without a second oracle call.
type Pending struct {
	Role          string // which slot the answer applies to: category/brand/model
	Value         string
	Score         float64
	DeferredModel string
}

// Resolve interprets a reply against a pending candidate. Only the two
// canonical forms are accepted; anything else is NotApplicable and the
// caller must leave the pending candidate intact and re-prompt.
func Resolve(reply string) Result {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "1", "yes":
		return Confirmed
	case "2", "no":
		return Rejected
	default:
		return NotApplicable
	}
}
