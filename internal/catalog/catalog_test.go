package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/stretchr/testify/require"
)

func fixtureProducts() []models.CardProduct {
	return []models.CardProduct{
		{
			ID:       "alpha-cash",
			Name:     "Cash",
			Issuer:   "Alpha",
			FullName: "Alpha Cash Card",
			RewardTiers: []models.RewardTier{
				{ID: "alpha-dining", Categories: []models.SpendingCategory{models.CategoryDining}, Rate: 6, RateType: models.RateCashback},
				{ID: "alpha-base", Categories: []models.SpendingCategory{models.CategoryGeneral}, Rate: 0.3, RateType: models.RateCashback},
			},
		},
		{
			ID:       "beta-points",
			Name:     "Points",
			Issuer:   "Beta",
			FullName: "Beta Points Card",
			RewardTiers: []models.RewardTier{
				{ID: "beta-dining", Categories: []models.SpendingCategory{models.CategoryDining}, Rate: 10, RateType: models.RatePoints},
				{ID: "beta-base", Categories: []models.SpendingCategory{models.CategoryGeneral}, Rate: 1, RateType: models.RatePoints},
			},
		},
	}
}

func TestNewValidation(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		c, err := New("1.0.0", "2025-06-01", "SG", fixtureProducts())
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())
		require.Equal(t, "1.0.0", c.Version)
	})

	t.Run("duplicate product id", func(t *testing.T) {
		products := fixtureProducts()
		products[1].ID = products[0].ID
		_, err := New("1.0.0", "", "", products)
		require.ErrorContains(t, err, "duplicate product id")
	})

	t.Run("empty product id", func(t *testing.T) {
		products := fixtureProducts()
		products[0].ID = ""
		_, err := New("1.0.0", "", "", products)
		require.ErrorContains(t, err, "empty id")
	})

	t.Run("tier without categories", func(t *testing.T) {
		products := fixtureProducts()
		products[0].RewardTiers[0].Categories = nil
		_, err := New("1.0.0", "", "", products)
		require.ErrorContains(t, err, "no categories")
	})

	t.Run("negative rate", func(t *testing.T) {
		products := fixtureProducts()
		products[0].RewardTiers[0].Rate = -1
		_, err := New("1.0.0", "", "", products)
		require.ErrorContains(t, err, "negative rate")
	})

	t.Run("two general tiers", func(t *testing.T) {
		products := fixtureProducts()
		products[0].RewardTiers = append(products[0].RewardTiers, models.RewardTier{
			ID:         "alpha-base-2",
			Categories: []models.SpendingCategory{models.CategoryGeneral},
			Rate:       1,
			RateType:   models.RateCashback,
		})
		_, err := New("1.0.0", "", "", products)
		require.ErrorContains(t, err, "at most one allowed")
	})
}

func TestLookupAndByIssuer(t *testing.T) {
	c, err := New("1.0.0", "", "SG", fixtureProducts())
	require.NoError(t, err)

	require.NotNil(t, c.Lookup("alpha-cash"))
	require.Equal(t, "Alpha", c.Lookup("alpha-cash").Issuer)
	require.Nil(t, c.Lookup("nope"))

	byIssuer := c.ByIssuer("ALPHA")
	require.Len(t, byIssuer, 1)
	require.Equal(t, "alpha-cash", byIssuer[0].ID)
	require.Empty(t, c.ByIssuer("Gamma"))
}

func TestBestRateAndGeneralRate(t *testing.T) {
	c, err := New("1.0.0", "", "SG", fixtureProducts())
	require.NoError(t, err)

	alpha := c.Lookup("alpha-cash")
	tier := c.BestRate(alpha, models.CategoryDining)
	require.NotNil(t, tier)
	require.Equal(t, "alpha-dining", tier.ID)

	require.Nil(t, c.BestRate(alpha, models.CategoryGroceries))
	general := c.GeneralRate(alpha)
	require.NotNil(t, general)
	require.Equal(t, "alpha-base", general.ID)
}

func TestBestRateTieKeepsCatalogOrder(t *testing.T) {
	products := fixtureProducts()
	// Second dining tier with the same effective rate must not displace the first.
	products[0].RewardTiers = append([]models.RewardTier{products[0].RewardTiers[0]}, models.RewardTier{
		ID:         "alpha-dining-2",
		Categories: []models.SpendingCategory{models.CategoryDining},
		Rate:       6,
		RateType:   models.RateCashback,
	})
	c, err := New("1.0.0", "", "SG", products)
	require.NoError(t, err)

	tier := c.BestRate(c.Lookup("alpha-cash"), models.CategoryDining)
	require.Equal(t, "alpha-dining", tier.ID)
}

func TestEmpty(t *testing.T) {
	c := Empty()
	require.Equal(t, 0, c.Len())
	require.Nil(t, c.Lookup("anything"))
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	data := `{
		"version": "1.0.0",
		"lastUpdated": "2025-06-01",
		"country": "SG",
		"cards": [
			{
				"id": "alpha-cash",
				"name": "Cash",
				"issuer": "Alpha",
				"fullName": "Alpha Cash Card",
				"aliases": ["Alpha Cash"],
				"rewardTiers": [
					{"id": "alpha-dining", "categories": ["dining"], "rate": 6, "rateType": "cashback", "monthlyCap": 80, "minSpend": 800},
					{"id": "alpha-base", "categories": ["general"], "rate": 0.3, "rateType": "cashback"}
				]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", c.Version)
	require.Equal(t, "SG", c.Country)
	require.Equal(t, 1, c.Len())

	product := c.Lookup("alpha-cash")
	require.NotNil(t, product)
	require.Equal(t, []string{"Alpha Cash"}, product.Aliases)
	require.Len(t, product.RewardTiers, 2)
	require.NotNil(t, product.RewardTiers[0].MonthlyCap)
	require.Equal(t, 80.0, *product.RewardTiers[0].MonthlyCap)
	require.NotNil(t, product.RewardTiers[0].MinSpend)
	require.Equal(t, 800.0, *product.RewardTiers[0].MinSpend)
}

func TestLoadXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.xml")
	data := `<?xml version="1.0" encoding="UTF-8"?>
<cardCatalog version="2.1.0" lastUpdated="2025-06-01" country="SG">
	<card id="alpha-cash" name="Cash" issuer="Alpha" country="SG" network="visa" annualFee="192.6" annualFeeWaived="true" minIncome="30000">
		<fullName>Alpha Cash Card</fullName>
		<alias>Alpha Cash</alias>
		<tier id="alpha-dining" rate="6" rateType="cashback" monthlyCap="80" minSpend="800">
			<category>dining</category>
			<conditions>Min spend applies</conditions>
		</tier>
		<tier id="alpha-base" rate="0.3" rateType="cashback">
			<category>general</category>
		</tier>
	</card>
</cardCatalog>`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "2.1.0", c.Version)
	require.Equal(t, 1, c.Len())

	product := c.Lookup("alpha-cash")
	require.NotNil(t, product)
	require.Equal(t, "Alpha Cash Card", product.FullName)
	require.Equal(t, models.NetworkVisa, product.Network)
	require.Equal(t, 192.6, product.AnnualFee)
	require.True(t, product.AnnualFeeWaived)
	require.Len(t, product.RewardTiers, 2)

	dining := product.RewardTiers[0]
	require.Equal(t, []models.SpendingCategory{models.CategoryDining}, dining.Categories)
	require.Equal(t, "Min spend applies", dining.Conditions)
	require.NotNil(t, dining.MonthlyCap)
	require.Equal(t, 80.0, *dining.MonthlyCap)
}

func TestLoadFailuresWrapErrLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrLoad))
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		_, err := Load(path)
		require.True(t, errors.Is(err, ErrLoad))
	})

	t.Run("missing version tag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "noversion.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cards": []}`), 0o644))
		_, err := Load(path)
		require.True(t, errors.Is(err, ErrLoad))
		require.ErrorContains(t, err, "version")
	})

	t.Run("malformed xml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.xml")
		require.NoError(t, os.WriteFile(path, []byte("<cardCatalog"), 0o644))
		_, err := Load(path)
		require.True(t, errors.Is(err, ErrLoad))
	})

	t.Run("xml missing root element", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "noroot.xml")
		require.NoError(t, os.WriteFile(path, []byte("<other/>"), 0o644))
		_, err := Load(path)
		require.True(t, errors.Is(err, ErrLoad))
	})
}

func TestLoadBundledCatalog(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data", "sg_cards.json"))
	require.NoError(t, err)
	require.Equal(t, "SG", c.Country)
	require.NotEmpty(t, c.Version)
	require.GreaterOrEqual(t, c.Len(), 8)

	// Every bundled product must have a general fallback tier.
	for _, p := range c.Products() {
		require.NotNil(t, c.GeneralRate(&p), "product %s has no general tier", p.ID)
	}
}
