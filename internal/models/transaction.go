package models

import "time"

// Transaction is a captured payment event with its optimality verdict.
// Created once by the ingestion pipeline and immutable thereafter.
type Transaction struct {
	ID              string           `json:"id"`
	UserID          int64            `json:"user_id"`
	MerchantName    string           `json:"merchant_name"`
	Amount          float64          `json:"amount"`
	Currency        string           `json:"currency"`
	CardName        string           `json:"card_name"`
	CardID          string           `json:"card_id,omitempty"`
	Category        SpendingCategory `json:"category"`
	OptimalCardID   string           `json:"optimal_card_id,omitempty"`
	ActualRewards   float64          `json:"actual_rewards"`
	OptimalRewards  float64          `json:"optimal_rewards"`
	RewardsDelta    float64          `json:"rewards_delta"`
	OptimalCardName string           `json:"optimal_card_name,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
	IsOptimal       bool             `json:"is_optimal"`
}
