package models

// SpendingCategory is a closed enumeration of recognized spending categories
// for card reward matching
type SpendingCategory string

const (
	CategoryDining          SpendingCategory = "dining"
	CategoryGroceries       SpendingCategory = "groceries"
	CategoryTransport       SpendingCategory = "transport"
	CategoryTravel          SpendingCategory = "travel"
	CategoryOnlineShopping  SpendingCategory = "onlineShopping"
	CategoryEntertainment   SpendingCategory = "entertainment"
	CategoryFuel            SpendingCategory = "fuel"
	CategoryUtilities       SpendingCategory = "utilities"
	CategoryInsurance       SpendingCategory = "insurance"
	CategoryHealthcare      SpendingCategory = "healthcare"
	CategoryEducation       SpendingCategory = "education"
	CategoryDepartmentStore SpendingCategory = "departmentStore"
	CategoryContactless     SpendingCategory = "contactless"
	CategoryGeneral         SpendingCategory = "general"
)

// AllCategories is the fixed iteration order for every place that walks the
// category set. Category assignment for ambiguous merchants depends on this
// order staying stable, so never replace it with a map.
var AllCategories = []SpendingCategory{
	CategoryDining,
	CategoryGroceries,
	CategoryTransport,
	CategoryTravel,
	CategoryOnlineShopping,
	CategoryEntertainment,
	CategoryFuel,
	CategoryUtilities,
	CategoryInsurance,
	CategoryHealthcare,
	CategoryEducation,
	CategoryDepartmentStore,
	CategoryContactless,
	CategoryGeneral,
}

var categoryDisplayNames = map[SpendingCategory]string{
	CategoryDining:          "Dining",
	CategoryGroceries:       "Groceries",
	CategoryTransport:       "Transport",
	CategoryTravel:          "Travel",
	CategoryOnlineShopping:  "Online Shopping",
	CategoryEntertainment:   "Entertainment",
	CategoryFuel:            "Fuel",
	CategoryUtilities:       "Utilities",
	CategoryInsurance:       "Insurance",
	CategoryHealthcare:      "Healthcare",
	CategoryEducation:       "Education",
	CategoryDepartmentStore: "Department Store",
	CategoryContactless:     "Contactless",
	CategoryGeneral:         "General",
}

// DisplayName returns the human-readable name for the category
func (c SpendingCategory) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether the category is one of the known values
func (c SpendingCategory) Valid() bool {
	_, ok := categoryDisplayNames[c]
	return ok
}

// ParseCategory returns the category for a raw string, falling back to
// general for unknown values
func ParseCategory(raw string) SpendingCategory {
	c := SpendingCategory(raw)
	if c.Valid() {
		return c
	}
	return CategoryGeneral
}
