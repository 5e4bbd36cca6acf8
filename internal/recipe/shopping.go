package recipe

// ManualSource marks a shopping list item the user typed in by hand rather
// than one added from a recipe.
const ManualSource = "manual"

// ShoppingListItem is one line of the shopping list. The ID is assigned when
// the item is added; Checked starts false.
type ShoppingListItem struct {
	ID          string             `json:"id"`
	Ingredient  ExtendedIngredient `json:"ingredient"`
	RecipeID    string             `json:"recipeId"`
	RecipeTitle string             `json:"recipeTitle"`
	Quantity    float64            `json:"quantity"`
	Unit        string             `json:"unit"`
	Checked     bool               `json:"checked"`
}

// ShoppingListItemUpdate is a partial ShoppingListItem; nil fields are left
// untouched when merged.
type ShoppingListItemUpdate struct {
	Ingredient  *ExtendedIngredient `json:"ingredient,omitempty"`
	RecipeID    *string             `json:"recipeId,omitempty"`
	RecipeTitle *string             `json:"recipeTitle,omitempty"`
	Quantity    *float64            `json:"quantity,omitempty"`
	Unit        *string             `json:"unit,omitempty"`
	Checked     *bool               `json:"checked,omitempty"`
}
