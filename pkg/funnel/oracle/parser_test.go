package oracle

import "testing"

func TestParseEntities(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Entities
	}{
		{
			name: "pure json",
			raw:  `{"brand": "Audi", "model": "Q5"}`,
			want: Entities{Brand: "Audi", Model: "Q5"},
		},
		{
			name: "pure json with null model",
			raw:  `{"brand": "Toyota", "model": null}`,
			want: Entities{Brand: "Toyota"},
		},
		{
			name: "json inside prose",
			raw:  "Sure! Based on the message, the entities are:\n{\"brand\": \"Audi\", \"model\": \"Quattro\"}\nLet me know if you need more.",
			want: Entities{Brand: "Audi", Model: "Quattro"},
		},
		{
			name: "json inside code fence",
			raw:  "```json\n{\"brand\": \"BMW\", \"model\": null}\n```",
			want: Entities{Brand: "BMW"},
		},
		{
			name: "bare single line treated as brand",
			raw:  "Mercedes-Benz",
			want: Entities{Brand: "Mercedes-Benz"},
		},
		{
			name: "bare single line with quotes and period",
			raw:  `"Skoda".`,
			want: Entities{Brand: "Skoda"},
		},
		{
			name: "literal null string means nothing extracted",
			raw:  `{"brand": "null", "model": "none"}`,
			want: Entities{},
		},
		{
			name: "multi-line prose without json is discarded",
			raw:  "I could not find any vehicle.\nPlease ask the customer again.",
			want: Entities{},
		},
		{
			name: "oversized single line is discarded",
			raw:  "The customer seems to be talking about something that is definitely not a vehicle brand at all",
			want: Entities{},
		},
		{
			name: "empty response",
			raw:  "   ",
			want: Entities{},
		},
		{
			name: "broken json falls back to nothing (contains braces)",
			raw:  `{"brand": "Audi"`,
			want: Entities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEntities(tt.raw)
			if got != tt.want {
				t.Errorf("ParseEntities(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
