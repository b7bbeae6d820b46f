package match

import (
	"sort"
)

// Default suggestion tuning.
const (
	DefaultMaxSuggestions = 3
	DefaultMinScore       = 0.6
)

// Candidate is a known operator name scored against an unknown one.
type Candidate struct {
	Name string

	// Scoring components
	NameScore float64 // Normalized Levenshtein similarity of the full names (0-1)
	SameBase  bool    // Base names match exactly, only the overload differs

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against target.
// Returns candidates sorted by combined score (descending); ties keep the order of known.
func RankCandidates(target string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	targetBase := BaseName(target)

	for _, name := range known {
		c := Candidate{
			Name:      name,
			NameScore: OperatorScore(target, name),
			SameBase:  BaseName(name) == targetBase,
		}

		c.CombinedScore = c.NameScore
		if c.SameBase {
			// A wrong overload is the most common mistake; rank it above unrelated near-misses.
			c.CombinedScore = 0.5 + c.NameScore/2
		}

		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})

	return candidates
}

// Top returns at most n candidates scoring at least minScore.
func (cl CandidateList) Top(n int, minScore float64) CandidateList {
	var res CandidateList

	for _, c := range cl {
		if len(res) == n {
			break
		}

		if c.CombinedScore < minScore {
			break
		}

		res = append(res, c)
	}

	return res
}

// Names returns the candidate names in ranking order.
func (cl CandidateList) Names() []string {
	names := make([]string, len(cl))
	for i, c := range cl {
		names[i] = c.Name
	}

	return names
}
