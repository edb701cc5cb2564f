package match

import (
	"sort"
)

// DefaultSuggestionThreshold is the minimum normalized similarity for a name
// to be offered as a suggestion.
const DefaultSuggestionThreshold = 0.6

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name     string
	Score    float64 // normalized similarity (0-1), higher is better
	Distance int     // raw edit distance between normalized forms
}

// CandidateList is a list of candidates sorted by score.
type CandidateList []Candidate

// RankCandidates scores every known name against the requested one.
// Returns candidates sorted by score (descending), then by name.
func RankCandidates(requested string, known []string) CandidateList {
	target := NormalizeIdent(requested)
	out := make(CandidateList, 0, len(known))

	for _, name := range known {
		norm := NormalizeIdent(name)
		out = append(out, Candidate{
			Name:     name,
			Score:    NormalizedLevenshteinScore(requested, name),
			Distance: Levenshtein(target, norm),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// Above returns the candidates whose score reaches the threshold.
func (l CandidateList) Above(threshold float64) CandidateList {
	var out CandidateList

	for _, c := range l {
		if c.Score >= threshold {
			out = append(out, c)
		}
	}

	return out
}

// Names returns the candidate names in order.
func (l CandidateList) Names() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}

	return names
}

// Suggest returns at most limit known names close to the requested one.
// Exact matches are never suggested.
func Suggest(requested string, known []string, limit int) []string {
	var filtered []string

	for _, k := range known {
		if k != requested {
			filtered = append(filtered, k)
		}
	}

	best := RankCandidates(requested, filtered).Above(DefaultSuggestionThreshold)
	if limit > 0 && len(best) > limit {
		best = best[:limit]
	}

	return best.Names()
}
