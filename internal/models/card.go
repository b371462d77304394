package models

import (
	"strings"
	"time"
)

// MatchThreshold is the minimum confidence at which a fuzzy card match is
// treated as a confirmed product identification
const MatchThreshold = 0.8

// Card is an auto-detected credit card in a user's portfolio
type Card struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	Issuer           string    `json:"issuer"`
	MatchedProductID string    `json:"matched_product_id,omitempty"`
	RawNames         []string  `json:"raw_names"`
	FirstSeen        time.Time `json:"first_seen"`
	LastUsed         time.Time `json:"last_used"`
	TransactionCount int       `json:"transaction_count"`
	IsActive         bool      `json:"is_active"`
	MatchConfidence  float64   `json:"match_confidence"`
}

// DisplayName returns the issuer-qualified card name
func (c *Card) DisplayName() string {
	return c.Issuer + " " + c.Name
}

// IsMatched reports whether the card is confidently resolved to a catalog
// product
func (c *Card) IsMatched() bool {
	return c.MatchedProductID != "" && c.MatchConfidence >= MatchThreshold
}

// HasRawName reports whether the card has already been seen under the given
// raw label, compared case-insensitively
func (c *Card) HasRawName(rawName string) bool {
	for _, n := range c.RawNames {
		if strings.EqualFold(n, rawName) {
			return true
		}
	}
	return false
}
