package recipe

// MealSlotToggles enables or disables each slot for meal planning.
type MealSlotToggles struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
	Snack     bool `json:"snack"`
}

// UserPreferences holds the user's dietary profile and planning toggles.
type UserPreferences struct {
	FavoriteRecipes     []string        `json:"favoriteRecipes"`
	DietaryRestrictions []string        `json:"dietaryRestrictions"`
	FavoriteCuisines    []string        `json:"favoriteCuisines"`
	Intolerances        []string        `json:"intolerances"`
	MealPlanPreferences MealSlotToggles `json:"mealPlanPreferences"`
}

// DefaultPreferences returns the initial preference set: all lists empty and
// every slot enabled except snack.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		FavoriteRecipes:     []string{},
		DietaryRestrictions: []string{},
		FavoriteCuisines:    []string{},
		Intolerances:        []string{},
		MealPlanPreferences: MealSlotToggles{
			Breakfast: true,
			Lunch:     true,
			Dinner:    true,
			Snack:     false,
		},
	}
}

// PreferencesUpdate is a partial UserPreferences; nil fields are left
// untouched when merged (shallow merge).
type PreferencesUpdate struct {
	FavoriteRecipes     *[]string        `json:"favoriteRecipes,omitempty"`
	DietaryRestrictions *[]string        `json:"dietaryRestrictions,omitempty"`
	FavoriteCuisines    *[]string        `json:"favoriteCuisines,omitempty"`
	Intolerances        *[]string        `json:"intolerances,omitempty"`
	MealPlanPreferences *MealSlotToggles `json:"mealPlanPreferences,omitempty"`
}
