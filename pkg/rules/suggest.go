package rules

import "github.com/agnivade/levenshtein"

const maxSuggestionDistance = 5

// nearestName returns the candidate closest to input by edit distance, or ""
// when nothing is within maxSuggestionDistance. Ties go to the earliest
// candidate so suggestions stay deterministic.
func nearestName(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist == -1 || minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}
