// Package matcher resolves raw card labels reported by payment platforms to
// known card products via fuzzy string matching.
package matcher

import (
	"strings"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/catalog"
	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/google/uuid"
)

// MatchResult is the outcome of matching a raw card label against the catalog
type MatchResult struct {
	Product    *models.CardProduct
	Confidence float64
	MatchedOn  string // which name or alias produced the best score
}

// Matcher fuzzy-matches raw card labels against the product catalog.
// Stateless and safe for concurrent use.
type Matcher struct {
	catalog *catalog.Catalog
}

// New creates a matcher over the given catalog
func New(cat *catalog.Catalog) *Matcher {
	return &Matcher{catalog: cat}
}

// Detect matches a raw card label (e.g. "DBS Live Fresh Visa") against every
// product's full name, display name and aliases, keeping the single
// highest-scoring candidate across the whole catalog. First-seen wins on
// ties. Returns nil when the catalog is empty.
func (m *Matcher) Detect(rawName string) *MatchResult {
	normalized := strings.ToLower(strings.TrimSpace(rawName))

	var best *MatchResult
	products := m.catalog.Products()
	for i := range products {
		product := &products[i]

		candidates := make([]string, 0, len(product.Aliases)+2)
		candidates = append(candidates, product.FullName, product.DisplayName())
		candidates = append(candidates, product.Aliases...)

		for _, candidate := range candidates {
			score := similarity(normalized, strings.ToLower(candidate))
			if best == nil || score > best.Confidence {
				best = &MatchResult{Product: product, Confidence: score, MatchedOn: candidate}
			}
		}
	}

	return best
}

// Resolve runs Detect and then upserts into the supplied portfolio snapshot:
// an existing active card is updated in place when the raw label is already
// in its history or its resolved product id equals the new match, otherwise
// a fresh card is created. Returns the card and whether it was created. The
// caller owns persisting the result.
func (m *Matcher) Resolve(rawName string, portfolio []*models.Card) (*models.Card, bool) {
	match := m.Detect(rawName)
	if match != nil && match.Confidence < models.MatchThreshold {
		match = nil
	}

	for _, card := range portfolio {
		if !card.IsActive {
			continue
		}
		sameProduct := match != nil && card.MatchedProductID != "" &&
			card.MatchedProductID == match.Product.ID
		if card.HasRawName(rawName) || sameProduct {
			if !card.HasRawName(rawName) {
				card.RawNames = append(card.RawNames, rawName)
			}
			card.LastUsed = time.Now()
			card.TransactionCount++
			return card, false
		}
	}

	now := time.Now()
	card := &models.Card{
		ID:               uuid.NewString(),
		Name:             rawName,
		Issuer:           ExtractIssuer(rawName),
		RawNames:         []string{rawName},
		FirstSeen:        now,
		LastUsed:         now,
		TransactionCount: 1,
		IsActive:         true,
	}
	if match != nil {
		card.Name = match.Product.Name
		card.Issuer = match.Product.Issuer
		card.MatchedProductID = match.Product.ID
		card.MatchConfidence = match.Confidence
	}

	return card, true
}
