// Package classifier maps free-text merchant names to spending categories
// using keyword-based matching.
package classifier

import (
	"strings"

	"github.com/PDHeisenberg/cardwise/internal/models"
)

// Classifier categorizes merchant names against an immutable keyword table.
// It is pure and safe for concurrent use.
type Classifier struct {
	table KeywordTable
}

// New creates a classifier over the given keyword table
func New(table KeywordTable) *Classifier {
	return &Classifier{table: table}
}

// Default creates a classifier with the built-in Singapore keyword table
func Default() *Classifier {
	return New(DefaultTable())
}

// Categorize maps a merchant name to a spending category. Matching is by
// substring containment over the normalized name; the longest matching
// keyword across all categories wins, equal lengths keep the earlier table
// entry. No match at all falls back to the general category.
func (c *Classifier) Categorize(merchantName string) models.SpendingCategory {
	normalized := strings.ToLower(strings.TrimSpace(merchantName))

	bestMatch := models.CategoryGeneral
	bestScore := 0

	for _, entry := range c.table {
		for _, keyword := range entry.Keywords {
			if !strings.Contains(normalized, keyword) {
				continue
			}
			// Longer matches are more specific
			if score := len(keyword); score > bestScore {
				bestScore = score
				bestMatch = entry.Category
			}
		}
	}

	return bestMatch
}

// Keywords returns the keyword list for a category, or nil if the table has
// no entry for it
func (c *Classifier) Keywords(category models.SpendingCategory) []string {
	for _, entry := range c.table {
		if entry.Category == category {
			return entry.Keywords
		}
	}
	return nil
}

// IsInCategory reports whether a merchant name classifies into the given
// category
func (c *Classifier) IsInCategory(merchantName string, category models.SpendingCategory) bool {
	return c.Categorize(merchantName) == category
}
