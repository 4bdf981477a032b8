package classify

import (
	"strings"

	"ai-showroom-be/pkg/store"
)

type Kind int

const (
	KindFreeText Kind = iota
	KindDigit
)

// Input is a classified inbound message.
type Input struct {
	Kind   Kind
	Token  string           // matched menu token, for digit selections
	Action store.MenuAction // bound action, for digit selections
	Text   string           // trimmed raw text, for free text
}

// Classify decides whether a raw message is a digit-menu selection or free
// text. A message is a digit selection iff its trimmed form is a key of the
// current menu mapping (including the reserved pagination tokens). This runs
// BEFORE any fuzzy or oracle work: digit input never reaches those paths,
// even when it would coincidentally resemble catalog text.
func Classify(raw string, menu map[string]store.MenuAction) Input {
	trimmed := strings.TrimSpace(raw)
	if menu != nil {
		if action, ok := menu[trimmed]; ok {
			return Input{Kind: KindDigit, Token: trimmed, Action: action}
		}
	}
	return Input{Kind: KindFreeText, Text: trimmed}
}
