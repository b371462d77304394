package classifier

import (
	"testing"

	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCategorizeKnownMerchants(t *testing.T) {
	c := Default()

	cases := []struct {
		merchant string
		want     models.SpendingCategory
	}{
		{"Starbucks Orchard", models.CategoryDining},
		{"Din Tai Fung Jewel Changi", models.CategoryDining},
		{"McDonald's Bedok", models.CategoryDining},
		{"NTUC FairPrice Finest", models.CategoryGroceries},
		{"Cold Storage Great World", models.CategoryGroceries},
		{"Grab Ride 4453", models.CategoryTransport},
		{"SimplyGo Bus/MRT", models.CategoryTransport},
		{"Singapore Airlines", models.CategoryTravel},
		{"Agoda Bangkok Hotel", models.CategoryTravel},
		{"Shopee SG", models.CategoryOnlineShopping},
		{"Netflix.com", models.CategoryOnlineShopping},
		{"Golden Village Plaza Sing", models.CategoryEntertainment},
		{"Shell Bukit Timah", models.CategoryFuel},
		{"SP Services Bill", models.CategoryUtilities},
		{"AIA Premium Payment", models.CategoryInsurance},
		{"Guardian Pharmacy", models.CategoryHealthcare},
		{"Coursera Subscription", models.CategoryEducation},
		{"Takashimaya Orchard", models.CategoryDepartmentStore},
	}

	for _, tc := range cases {
		t.Run(tc.merchant, func(t *testing.T) {
			require.Equal(t, tc.want, c.Categorize(tc.merchant))
		})
	}
}

func TestCategorizeLongestKeywordWins(t *testing.T) {
	c := Default()

	// "national university hospital" must beat both the shorter education
	// keyword "national university" and the generic "hospital".
	require.Equal(t, models.CategoryHealthcare, c.Categorize("National University Hospital"))
	require.Equal(t, models.CategoryEducation, c.Categorize("National University of Singapore"))

	// "grabfood" is longer than "grab", so delivery beats ride hailing.
	require.Equal(t, models.CategoryDining, c.Categorize("GrabFood Order 99182"))
	require.Equal(t, models.CategoryTransport, c.Categorize("Grab Trip to Tampines"))

	// "fairprice" contains "rice" but the longer grocery keyword wins.
	require.Equal(t, models.CategoryGroceries, c.Categorize("FAIRPRICE XTRA"))
}

func TestCategorizeFallsBackToGeneral(t *testing.T) {
	c := Default()
	require.Equal(t, models.CategoryGeneral, c.Categorize("Acme Widgets Pte Ltd"))
	require.Equal(t, models.CategoryGeneral, c.Categorize(""))
}

func TestCategorizeNormalizesInput(t *testing.T) {
	c := Default()
	require.Equal(t, models.CategoryDining, c.Categorize("  STARBUCKS RESERVE  "))
	require.Equal(t, c.Categorize("starbucks"), c.Categorize("StArBuCkS"))
}

func TestCategorizeIsDeterministic(t *testing.T) {
	c := Default()
	first := c.Categorize("Mandarin Oriental Spa")
	for i := 0; i < 50; i++ {
		require.Equal(t, first, c.Categorize("Mandarin Oriental Spa"))
	}
}

func TestKeywords(t *testing.T) {
	c := Default()
	require.Contains(t, c.Keywords(models.CategoryDining), "starbucks")
	require.Contains(t, c.Keywords(models.CategoryGroceries), "fairprice")
	require.Nil(t, c.Keywords(models.CategoryGeneral))
}

func TestIsInCategory(t *testing.T) {
	c := Default()
	require.True(t, c.IsInCategory("Deliveroo SG", models.CategoryDining))
	require.False(t, c.IsInCategory("Deliveroo SG", models.CategoryTravel))
}

func TestCustomTableOrderBreaksTies(t *testing.T) {
	table := KeywordTable{
		{models.CategoryDining, []string{"abcd"}},
		{models.CategoryTravel, []string{"wxyz"}},
	}
	c := New(table)

	// Both keywords match at equal length, the earlier table entry wins.
	require.Equal(t, models.CategoryDining, c.Categorize("abcd wxyz"))
}
