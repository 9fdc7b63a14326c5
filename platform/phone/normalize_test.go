package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"national us", "(650) 253-0000", "us", "+16502530000"},
		{"already international", "+31 20 794 8000", "US", "+31207948000"},
		{"national nl", "020 794 8000", "NL", "+31207948000"},
		{"garbage kept", "  call us  ", "US", "call us"},
		{"empty", "   ", "US", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input, tc.region); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseReportsInvalid(t *testing.T) {
	if _, ok := Parse("12", "US"); ok {
		t.Fatal("expected a two digit number to be rejected")
	}
	if _, ok := Parse("", "US"); ok {
		t.Fatal("expected blank input to be rejected")
	}
	got, ok := Parse("+1 650 253 0000", "")
	if !ok || got != "+16502530000" {
		t.Fatalf("expected international number without region, got %q/%v", got, ok)
	}
}
