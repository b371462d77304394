package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarityExactMatch(t *testing.T) {
	require.Equal(t, 1.0, similarity("dbs live fresh", "dbs live fresh"))
	require.Equal(t, 1.0, similarity("", ""))
}

func TestSimilarityContainment(t *testing.T) {
	// 0.7 + 0.3 * shorter/longer, so containment always scores >= 0.7
	got := similarity("dbs live fresh card", "dbs live fresh")
	require.InDelta(t, 0.7+0.3*14.0/19.0, got, 1e-9)
	require.GreaterOrEqual(t, got, 0.7)

	// Symmetric: which side contains which does not matter.
	require.Equal(t, got, similarity("dbs live fresh", "dbs live fresh card"))
}

func TestSimilarityTokenOverlap(t *testing.T) {
	// {dbs, live, fresh, visa} vs {dbs, altitude, visa}: 2 shared of 5 total
	got := similarity("dbs live fresh visa", "dbs altitude visa")
	require.InDelta(t, 2.0/5.0, got, 1e-9)
}

func TestSimilarityLevenshteinFallback(t *testing.T) {
	// No containment, no shared tokens: one substitution over length 4
	require.InDelta(t, 0.75, similarity("citi", "citl"), 1e-9)
}

func TestSimilarityPriorityOrder(t *testing.T) {
	// Containment outranks whatever the token rule would have scored.
	contained := similarity("uob one card", "one card")
	require.GreaterOrEqual(t, contained, 0.7)

	// Token overlap applies before Levenshtein whenever any token is shared.
	tokens := similarity("alpha omega", "alpha zulu")
	require.InDelta(t, 1.0/3.0, tokens, 1e-9)
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"citi", "citi", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, levenshtein(tc.s1, tc.s2), "levenshtein(%q, %q)", tc.s1, tc.s2)
	}
}
