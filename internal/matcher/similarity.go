package matcher

import "strings"

// similarity scores two normalized strings in [0,1]. Rules are tried in
// priority order and the first applicable one wins:
//  1. exact equality -> 1.0
//  2. full containment -> 0.7 + 0.3 * (shorter/longer), always >= 0.7
//  3. token-set Jaccard ratio, when the token intersection is non-empty
//  4. normalized Levenshtein: 1 - distance/max(len1, len2)
func similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		minLen := float64(min(len(s1), len(s2)))
		maxLen := float64(max(len(s1), len(s2)))
		return 0.7 + 0.3*minLen/maxLen
	}

	tokens1 := tokenSet(s1)
	tokens2 := tokenSet(s2)
	intersection := 0
	for t := range tokens1 {
		if _, ok := tokens2[t]; ok {
			intersection++
		}
	}
	if intersection > 0 {
		union := len(tokens1) + len(tokens2) - intersection
		return float64(intersection) / float64(union)
	}

	maxLen := max(len(s1), len(s2))
	if maxLen == 0 {
		return 0
	}
	return 1.0 - float64(levenshtein(s1, s2))/float64(maxLen)
}

func tokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// levenshtein computes the classic unit-cost edit distance between two
// strings using the dynamic-programming recurrence
func levenshtein(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
