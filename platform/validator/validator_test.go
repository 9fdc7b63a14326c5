package validator

import "testing"

type searchQuery struct {
	City    string `validate:"required"`
	Country string `validate:"countrycode"`
}

func TestCountryCodeRule(t *testing.T) {
	v := New()

	if err := v.Struct(searchQuery{City: "Austin", Country: "us"}); err != nil {
		t.Fatalf("expected valid query, got %v", err)
	}
	if err := v.Struct(searchQuery{City: "Austin"}); err != nil {
		t.Fatalf("expected empty country to be valid, got %v", err)
	}
	if err := v.Struct(searchQuery{City: "Austin", Country: "usa"}); err == nil {
		t.Fatalf("expected three-letter country to fail")
	}
	if err := v.Struct(searchQuery{Country: "us"}); err == nil {
		t.Fatalf("expected missing city to fail")
	}
}
