package business

import "testing"

type prefixLinker string

func (p prefixLinker) PhotoURL(name string) *string {
	u := string(p) + name
	return &u
}

func TestLinkPhotos(t *testing.T) {
	name := "places/X/photos/1"
	stale := "https://old.example/photo?key=leaked"
	results := []Result{
		{ExternalID: "a", PhotoName: &name, PhotoURL: &stale},
		{ExternalID: "b"},
	}

	linked := LinkPhotos(results, prefixLinker("https://media/"))
	if linked[0].PhotoURL == nil || *linked[0].PhotoURL != "https://media/places/X/photos/1" {
		t.Fatalf("expected linked photo url, got %v", linked[0].PhotoURL)
	}
	if linked[1].PhotoURL != nil {
		t.Fatalf("result without a photo must stay unlinked")
	}
	if *results[0].PhotoURL != stale {
		t.Fatalf("input must not be mutated")
	}

	if unlinked := LinkPhotos(results, nil); unlinked[0].PhotoURL != nil {
		t.Fatalf("nil linker must clear photo urls")
	}
}
