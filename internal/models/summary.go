package models

// RewardsSummary aggregates reward performance over a set of transactions
type RewardsSummary struct {
	TotalSpend          float64           `json:"total_spend"`
	TotalActualRewards  float64           `json:"total_actual_rewards"`
	TotalOptimalRewards float64           `json:"total_optimal_rewards"`
	TotalMissedRewards  float64           `json:"total_missed_rewards"`
	TransactionCount    int               `json:"transaction_count"`
	WrongCardCount      int               `json:"wrong_card_count"`
	CategoryBreakdown   []CategorySummary `json:"category_breakdown"`
}

// OptimizationRate is the share of transactions paid with the optimal card
func (s *RewardsSummary) OptimizationRate() float64 {
	if s.TransactionCount == 0 {
		return 1.0
	}
	return float64(s.TransactionCount-s.WrongCardCount) / float64(s.TransactionCount)
}

// CategorySummary is the per-category slice of a rewards summary
type CategorySummary struct {
	Category         SpendingCategory `json:"category"`
	TotalSpend       float64          `json:"total_spend"`
	MissedRewards    float64          `json:"missed_rewards"`
	TransactionCount int              `json:"transaction_count"`
}
