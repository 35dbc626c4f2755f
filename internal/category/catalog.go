// Package category resolves free-text need and resource types to canonical
// categories. The catalog below is the source of truth; types that are not
// listed resolve to their own normalized text.
package category

import (
	"strings"

	"donormatch/pkg/types"
)

var defaultCategories = []types.Category{
	{
		Slug:         "housing",
		Name:         "Housing & Shelter",
		Description:  "Rent, mortgage, temporary housing, or shelter needs",
		Aliases:      []string{"housing-shelter", "shelter", "rent", "home", "house", "accommodation", "tent"},
		DisplayOrder: 1,
	},
	{
		Slug:         "food",
		Name:         "Food & Nutrition",
		Description:  "Groceries, meal assistance, or nutrition support",
		Aliases:      []string{"food-nutrition", "groceries", "grocery", "meals", "meal", "nutrition", "ration"},
		DisplayOrder: 2,
	},
	{
		Slug:         "medical",
		Name:         "Medical & Healthcare",
		Description:  "Medical bills, prescriptions, treatments, or health-related expenses",
		Aliases:      []string{"medical-healthcare", "health", "healthcare", "medicine", "medication", "medicines", "treatment"},
		DisplayOrder: 3,
	},
	{
		Slug:         "utilities",
		Name:         "Utilities & Bills",
		Description:  "Electricity, water, gas, phone, internet, or other essential services",
		Aliases:      []string{"utilities-bills", "bills", "electricity", "internet", "phone"},
		DisplayOrder: 4,
	},
	{
		Slug:         "water",
		Name:         "Water & Sanitation",
		Description:  "Drinking water, hygiene kits, or sanitation supplies",
		Aliases:      []string{"drinking water", "sanitation", "hygiene"},
		DisplayOrder: 5,
	},
	{
		Slug:         "clothing",
		Name:         "Clothing & Bedding",
		Description:  "Clothes, blankets, or bedding",
		Aliases:      []string{"clothes", "blankets", "blanket", "bedding"},
		DisplayOrder: 6,
	},
	{
		Slug:         "transportation",
		Name:         "Transportation",
		Description:  "Vehicle repairs, fuel, public transportation, or mobility assistance",
		Aliases:      []string{"transport", "fuel", "vehicle"},
		DisplayOrder: 7,
	},
	{
		Slug:         "education",
		Name:         "Education & Training",
		Description:  "School supplies, tuition, books, or vocational training costs",
		Aliases:      []string{"education-training", "school", "tuition", "books"},
		DisplayOrder: 8,
	},
	{
		Slug:         "money",
		Name:         "Financial Support",
		Description:  "Direct cash support or income gap assistance",
		Aliases:      []string{"cash", "funds", "financial", "employment-income", "income"},
		DisplayOrder: 9,
	},
}

// Catalog maps type strings to canonical category slugs.
type Catalog struct {
	categories []types.Category
	index      map[string]string
}

// Default returns a catalog built from the built-in category list.
func Default() *Catalog {
	return New(defaultCategories)
}

func New(categories []types.Category) *Catalog {
	c := &Catalog{
		categories: categories,
		index:      make(map[string]string, len(categories)*4),
	}

	for _, cat := range categories {
		slug := Normalize(cat.Slug)
		c.index[slug] = slug
		c.index[Normalize(cat.Name)] = slug
		for _, alias := range cat.Aliases {
			c.index[Normalize(alias)] = slug
		}
	}

	return c
}

// Canonical returns the category slug for a need or resource type.
// Unknown types resolve to their normalized form, so two identical unknown
// types still compare equal.
func (c *Catalog) Canonical(kind string) string {
	n := Normalize(kind)
	if slug, ok := c.index[n]; ok {
		return slug
	}
	return n
}

// Same reports whether two types resolve to the same category.
func (c *Catalog) Same(a, b string) bool {
	ca := c.Canonical(a)
	return ca != "" && ca == c.Canonical(b)
}

func (c *Catalog) Categories() []types.Category {
	out := make([]types.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Normalize lowercases s, trims it and collapses inner whitespace,
// underscores and hyphens between words into single spaces.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
