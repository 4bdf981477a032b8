package fuzzy

import "testing"

func TestMatchEmptyCatalog(t *testing.T) {
	got := Match("anything", nil, DefaultApplyThreshold, DefaultAskThreshold)
	if !got.NotFound() || got.Score != 0 || got.Value != "" {
		t.Errorf("Match on empty catalog = %+v, want NotFound(0)", got)
	}
}

func TestMatchExact(t *testing.T) {
	catalog := []string{"Toyota", "Tofas", "Toyota Tsusho"}

	got := Match("Toyota", catalog, DefaultApplyThreshold, DefaultAskThreshold)
	if !got.Applied() {
		t.Fatalf("exact match should auto-apply, got %+v", got)
	}
	if got.Value != "Toyota" || got.Score != 100 {
		t.Errorf("Match = %+v, want Apply(Toyota, 100)", got)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	got := Match("  TOYOTA ", []string{"toyota"}, DefaultApplyThreshold, DefaultAskThreshold)
	if !got.Applied() || got.Score != 100 {
		t.Errorf("case/whitespace should not matter, got %+v", got)
	}
}

// Band boundaries. With the default thresholds (70, 60) the auto-apply bound
// is exclusive and the ask bound inclusive: 70 asks, 60 asks, 59 misses.
// The pairs below are built so the ratio metric (2*M/T) lands exactly on
// the boundary: 10-char strings sharing a 7-char (resp. 6-char) prefix with
// fully disjoint tails.
func TestMatchBandBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		entry     string
		wantScore float64
		wantKind  Kind
	}{
		{"exactly apply threshold asks", "abcdefghij", "abcdefgxyz", 70, KindAsk},
		{"exactly ask threshold asks", "abcdefghij", "abcdefxyzw", 60, KindAsk},
		{"just below ask misses", "abcdefghij", "abcdexyzwv", 50, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.candidate, []string{tt.entry}, DefaultApplyThreshold, DefaultAskThreshold)
			if got.Score != tt.wantScore {
				t.Fatalf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestMatchDeterministicAndBounded(t *testing.T) {
	catalog := []string{"Audi", "BMW", "Mercedes-Benz", "Skoda"}

	first := Match("Ауди", catalog, DefaultApplyThreshold, DefaultAskThreshold)
	for i := 0; i < 10; i++ {
		again := Match("Ауди", catalog, DefaultApplyThreshold, DefaultAskThreshold)
		if again != first {
			t.Fatalf("Match is not deterministic: %+v vs %+v", first, again)
		}
	}
	if first.Score < 0 || first.Score > 100 {
		t.Errorf("score out of [0,100]: %v", first.Score)
	}
}

func TestMatchTieKeepsEarlierEntry(t *testing.T) {
	got := Match("Golf", []string{"Golf", "Golf"}, DefaultApplyThreshold, DefaultAskThreshold)
	if got.Value != "Golf" || !got.Applied() {
		t.Errorf("tie should resolve to the first entry, got %+v", got)
	}
}
