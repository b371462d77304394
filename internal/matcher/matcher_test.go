package matcher

import (
	"testing"

	"github.com/PDHeisenberg/cardwise/internal/catalog"
	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/stretchr/testify/require"
)

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New("test", "", "SG", []models.CardProduct{
		{
			ID:       "dbs-live-fresh",
			Name:     "Live Fresh",
			Issuer:   "DBS",
			FullName: "DBS Live Fresh Card",
			Aliases:  []string{"Live Fresh Visa", "DBS Live Fresh Visa"},
			RewardTiers: []models.RewardTier{
				{ID: "lf-base", Categories: []models.SpendingCategory{models.CategoryGeneral}, Rate: 0.3, RateType: models.RateCashback},
			},
		},
		{
			ID:       "citi-cashback",
			Name:     "Cash Back",
			Issuer:   "Citi",
			FullName: "Citi Cash Back Card",
			Aliases:  []string{"Citi Cashback"},
			RewardTiers: []models.RewardTier{
				{ID: "cb-base", Categories: []models.SpendingCategory{models.CategoryGeneral}, Rate: 0.25, RateType: models.RateCashback},
			},
		},
	})
	require.NoError(t, err)
	return c
}

func TestDetect(t *testing.T) {
	m := New(fixtureCatalog(t))

	t.Run("exact alias match", func(t *testing.T) {
		result := m.Detect("DBS Live Fresh Visa")
		require.NotNil(t, result)
		require.Equal(t, "dbs-live-fresh", result.Product.ID)
		require.Equal(t, 1.0, result.Confidence)
		require.Equal(t, "DBS Live Fresh Visa", result.MatchedOn)
	})

	t.Run("case insensitive", func(t *testing.T) {
		result := m.Detect("dbs live fresh card")
		require.NotNil(t, result)
		require.Equal(t, "dbs-live-fresh", result.Product.ID)
		require.Equal(t, 1.0, result.Confidence)
	})

	t.Run("partial label still finds best product", func(t *testing.T) {
		result := m.Detect("Live Fresh")
		require.NotNil(t, result)
		require.Equal(t, "dbs-live-fresh", result.Product.ID)
		require.GreaterOrEqual(t, result.Confidence, 0.7)
	})

	t.Run("unrelated label scores low", func(t *testing.T) {
		result := m.Detect("HSBC Revolution")
		require.NotNil(t, result)
		require.Less(t, result.Confidence, models.MatchThreshold)
	})

	t.Run("empty catalog yields nil", func(t *testing.T) {
		empty := New(catalog.Empty())
		require.Nil(t, empty.Detect("DBS Live Fresh Visa"))
	})

	t.Run("empty label stays below threshold", func(t *testing.T) {
		// The empty string is contained in every candidate, scoring a flat
		// 0.7 under the containment rule, which never confirms a match.
		result := m.Detect("")
		require.NotNil(t, result)
		require.InDelta(t, 0.7, result.Confidence, 1e-9)
		require.Less(t, result.Confidence, models.MatchThreshold)
	})
}

func TestResolveCreatesMatchedCard(t *testing.T) {
	m := New(fixtureCatalog(t))

	card, created := m.Resolve("DBS Live Fresh Visa", nil)
	require.True(t, created)
	require.NotEmpty(t, card.ID)
	require.Equal(t, "Live Fresh", card.Name)
	require.Equal(t, "DBS", card.Issuer)
	require.Equal(t, "dbs-live-fresh", card.MatchedProductID)
	require.Equal(t, 1.0, card.MatchConfidence)
	require.Equal(t, []string{"DBS Live Fresh Visa"}, card.RawNames)
	require.Equal(t, 1, card.TransactionCount)
	require.True(t, card.IsActive)
	require.True(t, card.IsMatched())
}

func TestResolveBelowThresholdStaysUnmatched(t *testing.T) {
	m := New(fixtureCatalog(t))

	card, created := m.Resolve("AMEX Platinum Charge", nil)
	require.True(t, created)
	require.Empty(t, card.MatchedProductID)
	require.Equal(t, "AMEX", card.Issuer)
	require.Equal(t, "AMEX Platinum Charge", card.Name)
	require.False(t, card.IsMatched())
}

func TestResolveReusesCardByRawName(t *testing.T) {
	m := New(fixtureCatalog(t))

	first, created := m.Resolve("DBS Live Fresh Visa", nil)
	require.True(t, created)

	portfolio := []*models.Card{first}
	second, created := m.Resolve("dbs live fresh visa", portfolio)
	require.False(t, created)
	require.Same(t, first, second)
	require.Equal(t, 2, second.TransactionCount)
	// Case-insensitive duplicate label is not appended twice.
	require.Equal(t, []string{"DBS Live Fresh Visa"}, second.RawNames)
}

func TestResolveReusesCardBySameProduct(t *testing.T) {
	m := New(fixtureCatalog(t))

	first, _ := m.Resolve("DBS Live Fresh Visa", nil)
	portfolio := []*models.Card{first}

	// Different raw label resolving to the same product folds into the card.
	second, created := m.Resolve("Live Fresh Visa", portfolio)
	require.False(t, created)
	require.Same(t, first, second)
	require.Equal(t, []string{"DBS Live Fresh Visa", "Live Fresh Visa"}, second.RawNames)
	require.Equal(t, 2, second.TransactionCount)
}

func TestResolveSkipsInactiveCards(t *testing.T) {
	m := New(fixtureCatalog(t))

	first, _ := m.Resolve("DBS Live Fresh Visa", nil)
	first.IsActive = false

	second, created := m.Resolve("DBS Live Fresh Visa", []*models.Card{first})
	require.True(t, created)
	require.NotEqual(t, first.ID, second.ID)
}

func TestResolveDistinctProductsGetDistinctCards(t *testing.T) {
	m := New(fixtureCatalog(t))

	first, _ := m.Resolve("DBS Live Fresh Visa", nil)
	second, created := m.Resolve("Citi Cashback", []*models.Card{first})
	require.True(t, created)
	require.Equal(t, "citi-cashback", second.MatchedProductID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestExtractIssuer(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"DBS Live Fresh Visa", "DBS"},
		{"POSB Everyday Card", "DBS"},
		{"Citibank Rewards", "Citi"},
		{"American Express Platinum", "AMEX"},
		{"StanChart Smart Card", "Standard Chartered"},
		{"Bank of China Elite Miles", "BOC"},
		{"HSBC Revolution", "HSBC"},
		{"uob one card", "UOB"},
		{"Mystery Card 1234", "Unknown"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExtractIssuer(tc.raw), "ExtractIssuer(%q)", tc.raw)
	}
}
