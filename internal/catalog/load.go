package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/beevik/etree"
)

// fileWrapper mirrors the JSON rendition of the catalog load format
type fileWrapper struct {
	Version     string               `json:"version"`
	LastUpdated string               `json:"lastUpdated"`
	Country     string               `json:"country"`
	Cards       []models.CardProduct `json:"cards"`
}

// Load parses the versioned catalog file at path. The load format is a
// logical schema with two serializations, chosen by file extension: .xml is
// parsed with etree, everything else as JSON. All failures wrap ErrLoad.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return loadXML(data)
	}
	return loadJSON(data)
}

func loadJSON(data []byte) (*Catalog, error) {
	var wrapper fileWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %v", ErrLoad, err)
	}
	if wrapper.Version == "" {
		return nil, fmt.Errorf("%w: missing format version tag", ErrLoad)
	}

	c, err := New(wrapper.Version, wrapper.LastUpdated, wrapper.Country, wrapper.Cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return c, nil
}

func loadXML(data []byte) (*Catalog, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: parsing XML: %v", ErrLoad, err)
	}

	root := doc.FindElement("//cardCatalog")
	if root == nil {
		return nil, fmt.Errorf("%w: cardCatalog element not found", ErrLoad)
	}
	version := root.SelectAttrValue("version", "")
	if version == "" {
		return nil, fmt.Errorf("%w: missing format version tag", ErrLoad)
	}

	var cards []models.CardProduct
	for _, el := range root.FindElements("./card") {
		card, err := parseXMLCard(el)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		cards = append(cards, card)
	}

	c, err := New(version, root.SelectAttrValue("lastUpdated", ""), root.SelectAttrValue("country", ""), cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return c, nil
}

func parseXMLCard(el *etree.Element) (models.CardProduct, error) {
	card := models.CardProduct{
		ID:      el.SelectAttrValue("id", ""),
		Name:    el.SelectAttrValue("name", ""),
		Issuer:  el.SelectAttrValue("issuer", ""),
		Country: el.SelectAttrValue("country", ""),
		Network: models.CardNetwork(el.SelectAttrValue("network", "")),
	}

	if fullName := el.FindElement("./fullName"); fullName != nil {
		card.FullName = fullName.Text()
	}
	for _, alias := range el.FindElements("./alias") {
		card.Aliases = append(card.Aliases, alias.Text())
	}

	var err error
	if card.AnnualFee, err = xmlFloatAttr(el, "annualFee", 0); err != nil {
		return card, fmt.Errorf("card %q: %v", card.ID, err)
	}
	if card.MinIncome, err = xmlFloatAttr(el, "minIncome", 0); err != nil {
		return card, fmt.Errorf("card %q: %v", card.ID, err)
	}
	card.AnnualFeeWaived = el.SelectAttrValue("annualFeeWaived", "false") == "true"

	for _, tierEl := range el.FindElements("./tier") {
		tier, err := parseXMLTier(tierEl)
		if err != nil {
			return card, fmt.Errorf("card %q: %v", card.ID, err)
		}
		card.RewardTiers = append(card.RewardTiers, tier)
	}

	return card, nil
}

func parseXMLTier(el *etree.Element) (models.RewardTier, error) {
	tier := models.RewardTier{
		ID:       el.SelectAttrValue("id", ""),
		RateType: models.RateType(el.SelectAttrValue("rateType", string(models.RateCashback))),
	}

	rate, err := strconv.ParseFloat(el.SelectAttrValue("rate", ""), 64)
	if err != nil {
		return tier, fmt.Errorf("tier %q: invalid rate: %v", tier.ID, err)
	}
	tier.Rate = rate

	for _, cat := range el.FindElements("./category") {
		tier.Categories = append(tier.Categories, models.SpendingCategory(cat.Text()))
	}
	if cond := el.FindElement("./conditions"); cond != nil {
		tier.Conditions = cond.Text()
	}

	if raw := el.SelectAttrValue("monthlyCap", ""); raw != "" {
		cap, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return tier, fmt.Errorf("tier %q: invalid monthlyCap: %v", tier.ID, err)
		}
		tier.MonthlyCap = &cap
	}
	if raw := el.SelectAttrValue("minSpend", ""); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return tier, fmt.Errorf("tier %q: invalid minSpend: %v", tier.ID, err)
		}
		tier.MinSpend = &min
	}

	return tier, nil
}

func xmlFloatAttr(el *etree.Element, name string, def float64) (float64, error) {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s attribute: %v", name, err)
	}
	return v, nil
}
