package geocode

import "fmt"

// MatchSelector picks the best candidate. Candidates arrive in provider order
// and have already been range-checked. The bool is false for an empty slice.
type MatchSelector func(candidates []Candidate) (Candidate, bool)

// FirstMatch keeps the provider's ordering.
func FirstMatch(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// HighestImportance picks the candidate with the greatest importance score.
// Ties go to the earlier candidate.
func HighestImportance(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Importance > best.Importance {
			best = c
		}
	}
	return best, true
}

// SelectorByName maps a configuration value to a selector.
func SelectorByName(name string) (MatchSelector, error) {
	switch name {
	case "", "importance":
		return HighestImportance, nil
	case "first":
		return FirstMatch, nil
	default:
		return nil, fmt.Errorf("unknown geocode selector %q", name)
	}
}
