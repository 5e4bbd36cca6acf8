package recipe

// SortDirection orders search results ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchFilters is the transient query configuration driving a recipe
// search. It is never persisted as a business entity.
type SearchFilters struct {
	Query                 string        `json:"query,omitempty"`
	Cuisine               string        `json:"cuisine,omitempty"`
	Diet                  string        `json:"diet,omitempty"`
	Intolerances          []string      `json:"intolerances,omitempty"`
	Type                  string        `json:"type,omitempty"`
	MaxReadyTime          int           `json:"maxReadyTime,omitempty"`
	MinServings           int           `json:"minServings,omitempty"`
	MaxServings           int           `json:"maxServings,omitempty"`
	AddRecipeInformation  bool          `json:"addRecipeInformation"`
	AddRecipeInstructions bool          `json:"addRecipeInstructions"`
	AddRecipeNutrition    bool          `json:"addRecipeNutrition"`
	Sort                  string        `json:"sort"`
	SortDirection         SortDirection `json:"sortDirection"`
	Number                int           `json:"number"`
	Offset                int           `json:"offset"`
}

// DefaultFilters returns the filter defaults used at startup and after a
// filter reset: one page of 24 random-sorted results with recipe information
// and instructions but no nutrition.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		AddRecipeInformation:  true,
		AddRecipeInstructions: true,
		AddRecipeNutrition:    false,
		Sort:                  "random",
		SortDirection:         SortDesc,
		Number:                24,
		Offset:                0,
	}
}

// SearchFiltersUpdate is a partial SearchFilters; nil fields are left
// untouched when merged.
type SearchFiltersUpdate struct {
	Query                 *string        `json:"query,omitempty"`
	Cuisine               *string        `json:"cuisine,omitempty"`
	Diet                  *string        `json:"diet,omitempty"`
	Intolerances          *[]string      `json:"intolerances,omitempty"`
	Type                  *string        `json:"type,omitempty"`
	MaxReadyTime          *int           `json:"maxReadyTime,omitempty"`
	MinServings           *int           `json:"minServings,omitempty"`
	MaxServings           *int           `json:"maxServings,omitempty"`
	AddRecipeInformation  *bool          `json:"addRecipeInformation,omitempty"`
	AddRecipeInstructions *bool          `json:"addRecipeInstructions,omitempty"`
	AddRecipeNutrition    *bool          `json:"addRecipeNutrition,omitempty"`
	Sort                  *string        `json:"sort,omitempty"`
	SortDirection         *SortDirection `json:"sortDirection,omitempty"`
	Number                *int           `json:"number,omitempty"`
	Offset                *int           `json:"offset,omitempty"`
}

// CuisineOptions lists the cuisines the recipe API understands.
var CuisineOptions = []string{
	"African", "American", "British", "Cajun", "Caribbean", "Chinese",
	"Eastern European", "European", "French", "German", "Greek", "Indian",
	"Irish", "Italian", "Japanese", "Jewish", "Korean", "Latin American",
	"Mediterranean", "Mexican", "Middle Eastern", "Nordic", "Southern",
	"Spanish", "Thai", "Vietnamese",
}

// DietOptions lists the supported diets.
var DietOptions = []string{
	"Gluten Free", "Ketogenic", "Vegetarian", "Vegan", "Pescetarian",
	"Paleo", "Primal", "Low FODMAP", "Whole30",
}

// IntoleranceOptions lists the supported intolerances.
var IntoleranceOptions = []string{
	"Dairy", "Egg", "Gluten", "Grain", "Peanut", "Seafood", "Sesame",
	"Shellfish", "Soy", "Sulfite", "Tree Nut", "Wheat",
}

// MealTypeOptions lists the supported meal types.
var MealTypeOptions = []string{
	"Main Course", "Side Dish", "Dessert", "Appetizer", "Salad", "Bread",
	"Breakfast", "Soup", "Beverage", "Sauce", "Marinade", "Fingerfood",
	"Snack", "Drink",
}
