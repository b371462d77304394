// Package optimizer ranks a portfolio's reward tiers for a spending
// category and quantifies the reward left on the table by a sub-optimal
// card choice.
package optimizer

import (
	"sort"

	"github.com/PDHeisenberg/cardwise/internal/catalog"
	"github.com/PDHeisenberg/cardwise/internal/models"
)

// OptimalEpsilon is the reward delta below which a card choice still counts
// as optimal. Tied to two-decimal currency rounding.
const OptimalEpsilon = 0.01

// ReferenceAmount is the fixed spend used when ranking cards without a real
// transaction amount (recommendations, previews with ranking only)
const ReferenceAmount = 100.0

// Ranking is one portfolio card's computed reward for a category
type Ranking struct {
	Product *models.CardProduct
	Tier    *models.RewardTier
	Reward  float64
}

// OptimizationResult is the outcome of ranking a portfolio for one spend
type OptimizationResult struct {
	OptimalCard    *models.CardProduct
	OptimalTier    *models.RewardTier
	UsedCard       *models.CardProduct
	UsedTier       *models.RewardTier
	ActualRewards  float64
	OptimalRewards float64
	RewardsDelta   float64
	IsOptimal      bool
	Rankings       []Ranking
}

// Optimizer computes optimal card recommendations over the product catalog.
// Stateless and safe for concurrent use.
type Optimizer struct {
	catalog *catalog.Catalog
}

// New creates an optimizer over the given catalog
func New(cat *catalog.Catalog) *Optimizer {
	return &Optimizer{catalog: cat}
}

// bestTier selects the product's best category tier, falling back to its
// general tier when no category-specific tier applies
func (o *Optimizer) bestTier(product *models.CardProduct, category models.SpendingCategory) *models.RewardTier {
	if tier := o.catalog.BestRate(product, category); tier != nil {
		return tier
	}
	return o.catalog.GeneralRate(product)
}

// FindOptimalCard ranks every held product's applicable tier for the
// category at the given amount and returns the best choice, the choice
// actually used, and the delta between them. Product ids the catalog cannot
// resolve are silently skipped; an empty portfolio yields a neutral result
// with IsOptimal true.
func (o *Optimizer) FindOptimalCard(
	category models.SpendingCategory,
	amount float64,
	userProductIDs []string,
	usedProductID string,
) OptimizationResult {
	var rankings []Ranking
	for _, id := range userProductIDs {
		product := o.catalog.Lookup(id)
		if product == nil {
			continue
		}
		if tier := o.bestTier(product, category); tier != nil {
			rankings = append(rankings, Ranking{
				Product: product,
				Tier:    tier,
				Reward:  tier.Reward(amount),
			})
		}
	}

	// Stable sort: equal rewards preserve portfolio order
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Reward > rankings[j].Reward
	})

	result := OptimizationResult{IsOptimal: true, Rankings: rankings}
	if len(rankings) > 0 {
		result.OptimalCard = rankings[0].Product
		result.OptimalTier = rankings[0].Tier
		result.OptimalRewards = rankings[0].Reward
	}

	if usedProductID != "" {
		if used := o.catalog.Lookup(usedProductID); used != nil {
			result.UsedCard = used
			if tier := o.bestTier(used, category); tier != nil {
				result.UsedTier = tier
				result.ActualRewards = tier.Reward(amount)
			}
		}
	}

	delta := result.OptimalRewards - result.ActualRewards
	if delta > 0 {
		result.RewardsDelta = delta
	}
	if result.OptimalCard != nil {
		result.IsOptimal = usedProductID == result.OptimalCard.ID || delta < OptimalEpsilon
	}

	return result
}

// GenerateRecommendations computes the best card per category for a
// portfolio, in the fixed category order, skipping general and contactless
// and dropping categories no held card covers. The reference amount is used
// only for ranking, nothing is billed.
func (o *Optimizer) GenerateRecommendations(userProductIDs []string) []models.Recommendation {
	var recommendations []models.Recommendation
	for _, category := range models.AllCategories {
		if category == models.CategoryGeneral || category == models.CategoryContactless {
			continue
		}
		result := o.FindOptimalCard(category, ReferenceAmount, userProductIDs, "")
		if result.OptimalCard == nil {
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Category: category,
			Product:  result.OptimalCard,
			Tier:     result.OptimalTier,
		})
	}
	return recommendations
}

// Summarize reduces a set of transactions to aggregate reward performance
// with a per-category breakdown. Breakdown entries appear in the fixed
// category order.
func (o *Optimizer) Summarize(transactions []models.Transaction) models.RewardsSummary {
	summary := models.RewardsSummary{TransactionCount: len(transactions)}
	perCategory := map[models.SpendingCategory]*models.CategorySummary{}

	for _, txn := range transactions {
		summary.TotalSpend += txn.Amount
		summary.TotalActualRewards += txn.ActualRewards
		summary.TotalOptimalRewards += txn.OptimalRewards
		summary.TotalMissedRewards += txn.RewardsDelta
		if !txn.IsOptimal {
			summary.WrongCardCount++
		}

		cs, ok := perCategory[txn.Category]
		if !ok {
			cs = &models.CategorySummary{Category: txn.Category}
			perCategory[txn.Category] = cs
		}
		cs.TotalSpend += txn.Amount
		cs.MissedRewards += txn.RewardsDelta
		cs.TransactionCount++
	}

	for _, category := range models.AllCategories {
		if cs, ok := perCategory[category]; ok {
			summary.CategoryBreakdown = append(summary.CategoryBreakdown, *cs)
		}
	}

	return summary
}
