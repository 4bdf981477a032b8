package paginate

import (
	"fmt"
	"testing"
)

func makeList(n int) []string {
	list := make([]string, n)
	for i := range list {
		list[i] = fmt.Sprintf("item-%02d", i+1)
	}
	return list
}

func TestSliceTotalPages(t *testing.T) {
	tests := []struct {
		listLen, size, wantTotal int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{12, 6, 2},
		{13, 6, 3},
	}
	for _, tt := range tests {
		got := Slice(makeList(tt.listLen), 1, tt.size)
		if got.Total != tt.wantTotal {
			t.Errorf("Slice(len=%d, size=%d).Total = %d, want %d", tt.listLen, tt.size, got.Total, tt.wantTotal)
		}
	}
}

func TestSliceClampsOutOfRange(t *testing.T) {
	list := makeList(13) // 3 pages of 6

	for _, page := range []int{-5, 0, 1} {
		got := Slice(list, page, 6)
		if got.Number != 1 {
			t.Errorf("Slice(page=%d) clamped to %d, want 1", page, got.Number)
		}
	}
	for _, page := range []int{3, 4, 100} {
		got := Slice(list, page, 6)
		if got.Number != 3 {
			t.Errorf("Slice(page=%d) clamped to %d, want 3", page, got.Number)
		}
	}
}

func TestSliceNeverEmptyInRange(t *testing.T) {
	list := makeList(13)
	for page := 1; page <= 3; page++ {
		got := Slice(list, page, 6)
		if len(got.Items) == 0 {
			t.Errorf("page %d of a non-empty list has no items", page)
		}
	}

	last := Slice(list, 3, 6)
	if len(last.Items) != 1 || last.Items[0] != "item-13" {
		t.Errorf("last page = %v, want [item-13]", last.Items)
	}
}

func TestMenuNavigationTokens(t *testing.T) {
	list := makeList(13)

	first := Slice(list, 1, 6).Menu()
	if _, ok := first[TokenPrevPage]; ok {
		t.Error("first page must not offer a previous-page token")
	}
	if next, ok := first[TokenNextPage]; !ok || next.Page != 2 {
		t.Errorf("first page next token = %+v, want page 2", next)
	}

	mid := Slice(list, 2, 6).Menu()
	if prev, ok := mid[TokenPrevPage]; !ok || prev.Page != 1 {
		t.Errorf("middle page prev token = %+v, want page 1", prev)
	}
	if next, ok := mid[TokenNextPage]; !ok || next.Page != 3 {
		t.Errorf("middle page next token = %+v, want page 3", next)
	}

	last := Slice(list, 3, 6).Menu()
	if _, ok := last[TokenNextPage]; ok {
		t.Error("last page must not offer a next-page token")
	}
}

func TestMenuSelectTokens(t *testing.T) {
	menu := Slice(makeList(3), 1, 6).Menu()

	for i := 1; i <= 3; i++ {
		tok := fmt.Sprintf("%d", i)
		action, ok := menu[tok]
		if !ok {
			t.Fatalf("token %q missing from menu", tok)
		}
		want := fmt.Sprintf("item-%02d", i)
		if action.Value != want {
			t.Errorf("token %q selects %q, want %q", tok, action.Value, want)
		}
	}
	if _, ok := menu["4"]; ok {
		t.Error("menu offers a token past the page items")
	}
}
