package business

import "testing"

func TestParseIndustry(t *testing.T) {
	got, err := ParseIndustry(" Beauty_Salon ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != IndustryBeautySalon {
		t.Fatalf("expected beauty_salon, got %q", got)
	}

	if _, err := ParseIndustry("spaceport"); err == nil {
		t.Fatalf("expected unknown industry to fail")
	}
}

func TestEveryIndustryExceptOtherHasPlacesType(t *testing.T) {
	for _, industry := range Industries() {
		_, ok := industry.PlacesType()
		if industry == IndustryOther && ok {
			t.Fatalf("other must not map to a provider type")
		}
		if industry != IndustryOther && !ok {
			t.Fatalf("industry %q has no provider type", industry)
		}
	}
}

func TestFromPlacesTypes(t *testing.T) {
	if got := FromPlacesTypes([]string{"point_of_interest", "cafe", "food"}); got != IndustryCafe {
		t.Fatalf("expected cafe, got %q", got)
	}
	if got := FromPlacesTypes([]string{"point_of_interest"}); got != IndustryOther {
		t.Fatalf("expected other, got %q", got)
	}
}

func TestImportable(t *testing.T) {
	if (Result{ExternalID: "biz-1"}).Importable() {
		t.Fatalf("result without name must not be importable")
	}
	if !(Result{ExternalID: "biz-1", Name: "Cafe A"}).Importable() {
		t.Fatalf("expected result to be importable")
	}
}
