package paginate

import (
	"strconv"

	"ai-showroom-be/pkg/store"
)

// Reserved navigation tokens. Kept in sync with the funnel constants; they
// are part of the wire contract with users, not an implementation detail.
const (
	TokenPrevPage = "00"
	TokenNextPage = "99"
)

const DefaultPageSize = 6

// Page is one slice of an ordered catalog list.
type Page struct {
	Items  []string
	Number int // clamped page number, 1-based
	Total  int // ceil(len(list)/size); 0 for an empty list
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Total }

// Slice cuts list into pages of size and returns the requested page.
// Out-of-range page numbers (0, negative, past the end) are silently
// clamped into [1, Total] rather than erroring.
func Slice(list []string, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := (len(list) + size - 1) / size
	if total == 0 {
		return Page{Number: 1}
	}

	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * size
	end := start + size
	if end > len(list) {
		end = len(list)
	}

	return Page{Items: list[start:end], Number: page, Total: total}
}

// Menu builds the token mapping for this page: digits 1..len(Items) select
// the item, "00"/"99" change page and are present only when the neighbour
// page exists.
func (p Page) Menu() map[string]store.MenuAction {
	menu := make(map[string]store.MenuAction, len(p.Items)+2)
	for i, item := range p.Items {
		menu[strconv.Itoa(i+1)] = store.MenuAction{Kind: store.ActionSelect, Value: item}
	}
	if p.HasPrev() {
		menu[TokenPrevPage] = store.MenuAction{Kind: store.ActionPage, Page: p.Number - 1}
	}
	if p.HasNext() {
		menu[TokenNextPage] = store.MenuAction{Kind: store.ActionPage, Page: p.Number + 1}
	}
	return menu
}
