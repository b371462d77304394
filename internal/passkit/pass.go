// Package passkit builds Apple Wallet pass documents carrying per-category
// card recommendations. Signing is out of scope; only the pass.json
// structure is produced.
package passkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/google/uuid"
)

// Field is one key/label/value entry on a pass
type Field struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	Value         string `json:"value"`
	TextAlignment string `json:"textAlignment,omitempty"`
}

// Generic groups the field layout of a generic-style pass
type Generic struct {
	PrimaryFields   []Field `json:"primaryFields"`
	SecondaryFields []Field `json:"secondaryFields"`
	AuxiliaryFields []Field `json:"auxiliaryFields,omitempty"`
	BackFields      []Field `json:"backFields,omitempty"`
}

// Pass is the pass.json document for one category recommendation
type Pass struct {
	FormatVersion      int     `json:"formatVersion"`
	PassTypeIdentifier string  `json:"passTypeIdentifier"`
	SerialNumber       string  `json:"serialNumber"`
	TeamIdentifier     string  `json:"teamIdentifier"`
	OrganizationName   string  `json:"organizationName"`
	Description        string  `json:"description"`
	LogoText           string  `json:"logoText"`
	ForegroundColor    string  `json:"foregroundColor"`
	BackgroundColor    string  `json:"backgroundColor"`
	LabelColor         string  `json:"labelColor"`
	Generic            Generic `json:"generic"`
	RelevantDate       string  `json:"relevantDate"`
}

var categoryColors = map[models.SpendingCategory]string{
	models.CategoryDining:          "rgb(255, 107, 53)",
	models.CategoryGroceries:       "rgb(52, 199, 89)",
	models.CategoryTransport:       "rgb(0, 122, 255)",
	models.CategoryTravel:          "rgb(175, 82, 222)",
	models.CategoryOnlineShopping:  "rgb(255, 55, 95)",
	models.CategoryEntertainment:   "rgb(255, 59, 48)",
	models.CategoryFuel:            "rgb(255, 204, 0)",
	models.CategoryUtilities:       "rgb(90, 200, 250)",
	models.CategoryInsurance:       "rgb(88, 86, 214)",
	models.CategoryHealthcare:      "rgb(0, 199, 190)",
	models.CategoryEducation:       "rgb(50, 173, 230)",
	models.CategoryDepartmentStore: "rgb(162, 132, 94)",
	models.CategoryContactless:     "rgb(142, 142, 147)",
	models.CategoryGeneral:         "rgb(99, 99, 102)",
}

// Generator builds wallet passes for recommendations
type Generator struct {
	PassTypeIdentifier string
	TeamIdentifier     string
	OrganizationName   string
}

// NewGenerator creates a pass generator with CardWise defaults
func NewGenerator() *Generator {
	return &Generator{
		PassTypeIdentifier: "pass.com.cardwise.recommendation",
		TeamIdentifier:     "CARDWISE",
		OrganizationName:   "CardWise",
	}
}

// GeneratePass builds the pass document for one category recommendation
func (g *Generator) GeneratePass(rec models.Recommendation) Pass {
	now := time.Now().Format(time.RFC3339)
	return Pass{
		FormatVersion:      1,
		PassTypeIdentifier: g.PassTypeIdentifier,
		SerialNumber:       fmt.Sprintf("%s-%s", rec.Category, uuid.NewString()),
		TeamIdentifier:     g.TeamIdentifier,
		OrganizationName:   g.OrganizationName,
		Description:        rec.Category.DisplayName() + " - Best Card",
		LogoText:           g.OrganizationName,
		ForegroundColor:    "rgb(255, 255, 255)",
		BackgroundColor:    categoryColors[rec.Category],
		LabelColor:         "rgb(255, 255, 255)",
		Generic: Generic{
			PrimaryFields: []Field{
				{Key: "bestCard", Label: "BEST CARD", Value: rec.Product.DisplayName()},
			},
			SecondaryFields: []Field{
				{Key: "earn", Label: "EARN", Value: rec.Tier.RateDescription()},
				{Key: "category", Label: "CATEGORY", Value: rec.Category.DisplayName()},
			},
			BackFields: []Field{
				{
					Key:   "info",
					Label: "About CardWise",
					Value: "CardWise automatically detects your credit cards and recommends the optimal card for each spending category.",
				},
				{Key: "updated", Label: "Last Updated", Value: now},
			},
		},
		RelevantDate: now,
	}
}

// GenerateAll builds a pass per recommendation
func (g *Generator) GenerateAll(recommendations []models.Recommendation) []Pass {
	passes := make([]Pass, 0, len(recommendations))
	for _, rec := range recommendations {
		passes = append(passes, g.GeneratePass(rec))
	}
	return passes
}

// WritePassBundle writes the pass.json for a category into
// <dir>/<category>.pass/. The bundle is unsigned; icons, manifest and
// signature are added by the platform-specific packaging step.
func (g *Generator) WritePassBundle(pass Pass, dir string, category models.SpendingCategory) error {
	bundleDir := filepath.Join(dir, string(category)+".pass")
	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		return fmt.Errorf("failed to create pass bundle dir: %w", err)
	}

	data, err := json.MarshalIndent(pass, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pass: %w", err)
	}
	if err := os.WriteFile(filepath.Join(bundleDir, "pass.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write pass.json: %w", err)
	}
	return nil
}
