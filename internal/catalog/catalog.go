package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PDHeisenberg/cardwise/internal/models"
)

// ErrLoad wraps every catalog load failure (missing or malformed file).
// Callers may treat it as non-fatal and continue with Empty().
var ErrLoad = errors.New("catalog load failed")

// Catalog is the immutable in-memory set of known card products. Loaded once
// at startup and read-only thereafter, so concurrent reads need no locking.
type Catalog struct {
	Version     string
	LastUpdated string
	Country     string
	products    []models.CardProduct
	byID        map[string]*models.CardProduct
}

// Empty returns a catalog with no products. Used when the load file is
// missing and the system degrades to "no recommendations possible".
func Empty() *Catalog {
	return &Catalog{byID: map[string]*models.CardProduct{}}
}

// New builds a catalog from an ordered product list, validating catalog
// invariants: unique IDs, at most one general tier per product, non-negative
// rates and non-empty tier category sets
func New(version, lastUpdated, country string, products []models.CardProduct) (*Catalog, error) {
	c := &Catalog{
		Version:     version,
		LastUpdated: lastUpdated,
		Country:     country,
		products:    products,
		byID:        make(map[string]*models.CardProduct, len(products)),
	}

	for i := range products {
		p := &c.products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has empty id", p.Name)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}

		generalTiers := 0
		for j := range p.RewardTiers {
			t := &p.RewardTiers[j]
			if len(t.Categories) == 0 {
				return nil, fmt.Errorf("product %q tier %q has no categories", p.ID, t.ID)
			}
			if t.Rate < 0 {
				return nil, fmt.Errorf("product %q tier %q has negative rate", p.ID, t.ID)
			}
			if t.AppliesTo(models.CategoryGeneral) {
				generalTiers++
			}
		}
		if generalTiers > 1 {
			return nil, fmt.Errorf("product %q has %d general tiers, at most one allowed", p.ID, generalTiers)
		}

		c.byID[p.ID] = p
	}

	return c, nil
}

// Products returns the catalog's products in load-file order
func (c *Catalog) Products() []models.CardProduct {
	return c.products
}

// Len returns the number of products in the catalog
func (c *Catalog) Len() int {
	return len(c.products)
}

// Lookup returns the product with the given id, or nil if unknown
func (c *Catalog) Lookup(id string) *models.CardProduct {
	return c.byID[id]
}

// ByIssuer returns all products whose issuer matches the given name,
// compared case-insensitively
func (c *Catalog) ByIssuer(issuer string) []models.CardProduct {
	var result []models.CardProduct
	for _, p := range c.products {
		if strings.EqualFold(p.Issuer, issuer) {
			result = append(result, p)
		}
	}
	return result
}

// BestRate returns the product's tier with the highest effective cashback
// rate among those covering the category. Ties keep the first tier in
// catalog order, which is deterministic because the load file is ordered.
func (c *Catalog) BestRate(product *models.CardProduct, category models.SpendingCategory) *models.RewardTier {
	var best *models.RewardTier
	for i := range product.RewardTiers {
		t := &product.RewardTiers[i]
		if !t.AppliesTo(category) {
			continue
		}
		if best == nil || t.EffectiveCashbackRate() > best.EffectiveCashbackRate() {
			best = t
		}
	}
	return best
}

// GeneralRate returns the product's fallback tier tagged general, if present
func (c *Catalog) GeneralRate(product *models.CardProduct) *models.RewardTier {
	for i := range product.RewardTiers {
		if product.RewardTiers[i].AppliesTo(models.CategoryGeneral) {
			return &product.RewardTiers[i]
		}
	}
	return nil
}
