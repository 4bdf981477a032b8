package classify

import (
	"testing"

	"ai-showroom-be/pkg/store"
)

func menuWith(tokens ...string) map[string]store.MenuAction {
	m := make(map[string]store.MenuAction, len(tokens))
	for _, tok := range tokens {
		m[tok] = store.MenuAction{Kind: store.ActionSelect, Value: "item-" + tok}
	}
	return m
}

func TestDigitBeforeFuzzyInvariant(t *testing.T) {
	// "3" must classify as a digit selection whenever the menu carries the
	// key, regardless of what catalog text it might also resemble.
	menu := menuWith("1", "2", "3")

	got := Classify("3", menu)
	if got.Kind != KindDigit {
		t.Fatalf("Classify(%q) = %v, want digit selection", "3", got.Kind)
	}
	if got.Action.Value != "item-3" {
		t.Errorf("action = %+v, want item-3", got.Action)
	}
}

func TestReservedTokensClassifyAsDigits(t *testing.T) {
	menu := menuWith("1")
	menu["00"] = store.MenuAction{Kind: store.ActionPage, Page: 1}
	menu["99"] = store.MenuAction{Kind: store.ActionPage, Page: 3}

	for _, tok := range []string{"00", "99"} {
		got := Classify(tok, menu)
		if got.Kind != KindDigit {
			t.Errorf("Classify(%q) = %v, want digit selection", tok, got.Kind)
		}
	}
}

func TestWhitespaceTrimmedBeforeLookup(t *testing.T) {
	got := Classify("  2 \n", menuWith("2"))
	if got.Kind != KindDigit || got.Token != "2" {
		t.Errorf("Classify with padding = %+v, want digit token 2", got)
	}
}

func TestTextFallsThrough(t *testing.T) {
	tests := []struct {
		raw  string
		menu map[string]store.MenuAction
		want string
	}{
		{"Toyota", menuWith("1", "2"), "Toyota"},
		{"3", menuWith("1", "2"), "3"}, // not on this menu: plain text
		{"  camry  ", nil, "camry"},    // no menu offered at all
	}

	for _, tt := range tests {
		got := Classify(tt.raw, tt.menu)
		if got.Kind != KindFreeText || got.Text != tt.want {
			t.Errorf("Classify(%q) = %+v, want free text %q", tt.raw, got, tt.want)
		}
	}
}
