// Package recipe defines the domain types shared across the application:
// recipes and search results as returned by the recipe API, meal plans,
// shopping list items, user preferences and search filters.
package recipe

import (
	"encoding/json"
	"fmt"
)

// ID is a recipe identifier. The recipe API serves ids as JSON numbers, but
// they are opaque strings everywhere in this application, so both encodings
// are accepted on decode.
type ID string

// String returns the id as a plain string.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("recipe id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Recipe is a full recipe record as returned by the recipe API. Recipes are
// externally sourced and treated as immutable; the application only holds
// copies.
type Recipe struct {
	ID               ID                    `json:"id"`
	Title            string                `json:"title"`
	Image            string                `json:"image"`
	ImageType        string                `json:"imageType"`
	Servings         int                   `json:"servings"`
	ReadyInMinutes   int                   `json:"readyInMinutes"`
	SourceURL        string                `json:"sourceUrl,omitempty"`
	SourceName       string                `json:"sourceName,omitempty"`
	Summary          string                `json:"summary"`
	Cuisines         []string              `json:"cuisines"`
	DishTypes        []string              `json:"dishTypes"`
	Diets            []string              `json:"diets"`
	Occasions        []string              `json:"occasions"`
	Instructions     string                `json:"instructions,omitempty"`
	AnalyzedSteps    []AnalyzedInstruction `json:"analyzedInstructions,omitempty"`
	Ingredients      []ExtendedIngredient  `json:"extendedIngredients"`
	Nutrition        *Nutrition            `json:"nutrition,omitempty"`
	Cheap            bool                  `json:"cheap,omitempty"`
	DairyFree        bool                  `json:"dairyFree,omitempty"`
	GlutenFree       bool                  `json:"glutenFree,omitempty"`
	Vegan            bool                  `json:"vegan,omitempty"`
	Vegetarian       bool                  `json:"vegetarian,omitempty"`
	VeryHealthy      bool                  `json:"veryHealthy,omitempty"`
	VeryPopular      bool                  `json:"veryPopular,omitempty"`
	Sustainable      bool                  `json:"sustainable,omitempty"`
	AggregateLikes   int                   `json:"aggregateLikes,omitempty"`
	HealthScore      float64               `json:"healthScore,omitempty"`
	SpoonacularScore float64               `json:"spoonacularScore,omitempty"`
}

// SearchResult is the lighter-weight recipe summary returned by search
// endpoints. It shares the Recipe id space but carries no instructions or
// nutrition.
type SearchResult struct {
	ID                    ID                   `json:"id"`
	Title                 string               `json:"title"`
	Image                 string               `json:"image"`
	ImageType             string               `json:"imageType"`
	UsedIngredientCount   int                  `json:"usedIngredientCount,omitempty"`
	MissedIngredientCount int                  `json:"missedIngredientCount,omitempty"`
	MissedIngredients     []ExtendedIngredient `json:"missedIngredients,omitempty"`
	UnusedIngredients     []ExtendedIngredient `json:"unusedIngredients,omitempty"`
	Likes                 int                  `json:"likes,omitempty"`
}

// AnalyzedInstruction is a named group of instruction steps.
type AnalyzedInstruction struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// InstructionStep is a single numbered cooking step.
type InstructionStep struct {
	Number      int             `json:"number"`
	Step        string          `json:"step"`
	Ingredients []StepReference `json:"ingredients,omitempty"`
	Equipment   []StepReference `json:"equipment,omitempty"`
}

// StepReference points at an ingredient or piece of equipment used in a step.
type StepReference struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ExtendedIngredient is a fully described ingredient line of a recipe.
type ExtendedIngredient struct {
	ID           int      `json:"id"`
	Aisle        string   `json:"aisle"`
	Image        string   `json:"image"`
	Consistency  string   `json:"consistency"`
	Name         string   `json:"name"`
	NameClean    string   `json:"nameClean"`
	Original     string   `json:"original"`
	OriginalName string   `json:"originalName"`
	Amount       float64  `json:"amount"`
	Unit         string   `json:"unit"`
	Meta         []string `json:"meta,omitempty"`
	Measures     Measures `json:"measures"`
}

// Measures holds the US and metric renderings of an ingredient amount.
type Measures struct {
	US     Measure `json:"us"`
	Metric Measure `json:"metric"`
}

// Measure is a single amount/unit pair.
type Measure struct {
	Amount    float64 `json:"amount"`
	UnitShort string  `json:"unitShort"`
	UnitLong  string  `json:"unitLong"`
}

// Nutrition is the nutrition block optionally attached to a recipe.
type Nutrition struct {
	Nutrients        []Nutrient       `json:"nutrients"`
	CaloricBreakdown CaloricBreakdown `json:"caloricBreakdown"`
	WeightPerServing Measure          `json:"weightPerServing"`
}

// Nutrient is a single nutrient measurement.
type Nutrient struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percentOfDailyNeeds"`
}

// CaloricBreakdown is the protein/fat/carb percentage split.
type CaloricBreakdown struct {
	PercentProtein float64 `json:"percentProtein"`
	PercentFat     float64 `json:"percentFat"`
	PercentCarbs   float64 `json:"percentCarbs"`
}
