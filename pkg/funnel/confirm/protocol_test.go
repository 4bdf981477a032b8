package confirm

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		reply string
		want  Result
	}{
		{"1", Confirmed},
		{"yes", Confirmed},
		{"YES", Confirmed},
		{" 1 ", Confirmed},
		{"2", Rejected},
		{"no", Rejected},
		{"No", Rejected},
		{"hello", NotApplicable},
		{"", NotApplicable},
		{"y", NotApplicable},
		{"yes please", NotApplicable},
		{"3", NotApplicable},
	}

	for _, tt := range tests {
		if got := Resolve(tt.reply); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.reply, got, tt.want)
		}
	}
}
