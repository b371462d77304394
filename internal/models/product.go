package models

import (
	"fmt"
	"math"
)

// CardNetwork is the payment network a card product runs on
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkAmex       CardNetwork = "amex"
	NetworkUnionPay   CardNetwork = "unionpay"
)

// RateType is the unit a reward rate is expressed in
type RateType string

const (
	RateCashback RateType = "cashback"
	RatePoints   RateType = "points"
	RateMiles    RateType = "miles"
)

// Conversion factors between rate units and an equivalent cashback
// percentage. These are policy constants, not derived values: typical
// Singapore points are worth ~$0.004 each (10x points ~ 2.5% cashback) and a
// mile ~$0.018 (1.2 mpd ~ 2.16%).
const (
	PointsCashbackFactor = 0.25
	MilesCashbackFactor  = 1.8
	MileDollarValue      = 0.018
)

// CardProduct is a credit card product from the bundled rewards catalog
type CardProduct struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Issuer          string       `json:"issuer"`
	FullName        string       `json:"fullName"`
	Country         string       `json:"country"`
	Network         CardNetwork  `json:"network"`
	AnnualFee       float64      `json:"annualFee"`
	AnnualFeeWaived bool         `json:"annualFeeWaived"`
	MinIncome       float64      `json:"minIncome"`
	RewardTiers     []RewardTier `json:"rewardTiers"`
	Aliases         []string     `json:"aliases"`
}

// DisplayName returns the issuer-qualified product name
func (p *CardProduct) DisplayName() string {
	return p.Issuer + " " + p.Name
}

// RewardTier is a reward rate applying to a set of spending categories
type RewardTier struct {
	ID         string             `json:"id"`
	Categories []SpendingCategory `json:"categories"`
	Rate       float64            `json:"rate"`
	RateType   RateType           `json:"rateType"`
	MonthlyCap *float64           `json:"monthlyCap,omitempty"`
	MinSpend   *float64           `json:"minSpend,omitempty"`
	Conditions string             `json:"conditions,omitempty"`
}

// AppliesTo reports whether the tier covers the given category
func (t *RewardTier) AppliesTo(category SpendingCategory) bool {
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// EffectiveCashbackRate converts the tier's rate to an equivalent cashback
// percentage for cross-tier comparison
func (t *RewardTier) EffectiveCashbackRate() float64 {
	switch t.RateType {
	case RatePoints:
		return t.Rate * PointsCashbackFactor
	case RateMiles:
		return t.Rate * MilesCashbackFactor
	default:
		return t.Rate
	}
}

// Reward calculates the dollar reward this tier earns on the given spend
func (t *RewardTier) Reward(amount float64) float64 {
	switch t.RateType {
	case RatePoints:
		return amount * (t.Rate * PointsCashbackFactor / 100.0)
	case RateMiles:
		return amount * t.Rate * MileDollarValue
	default:
		return amount * (t.Rate / 100.0)
	}
}

// RateDescription returns a human-readable description of the rate,
// e.g. "6% cashback", "10x points", "1.2 mpd"
func (t *RewardTier) RateDescription() string {
	switch t.RateType {
	case RatePoints:
		return fmt.Sprintf("%sx points", formatRate(t.Rate))
	case RateMiles:
		return fmt.Sprintf("%s mpd", formatRate(t.Rate))
	default:
		return fmt.Sprintf("%s%% cashback", formatRate(t.Rate))
	}
}

func formatRate(value float64) string {
	if value == math.Round(value) {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.1f", value)
}

// Recommendation pairs a spending category with the best product and tier
// for it from a user's portfolio
type Recommendation struct {
	Category SpendingCategory `json:"category"`
	Product  *CardProduct     `json:"product"`
	Tier     *RewardTier      `json:"tier"`
}
