// Package store implements the application state store: the single source of
// truth for favorites, search history, recently viewed recipes, meal plans,
// the shopping list, user preferences and transient search state.
//
// Every mutation is atomic with respect to the in-memory state and is
// followed by a best-effort synchronous save of the persisted subset through
// the configured Persister; save failures are logged, never returned.
package store

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
)

const (
	maxSearchHistory = 10
	maxRecentRecipes = 20
)

// Snapshot is the persisted subset of the store state. Transient fields
// (search filters and results) are deliberately absent.
type Snapshot struct {
	Favorites     []string                  `json:"favorites"`
	SearchHistory []string                  `json:"searchHistory"`
	RecentRecipes []recipe.Recipe           `json:"recentRecipes"`
	MealPlans     []recipe.MealPlan         `json:"mealPlans"`
	ShoppingList  []recipe.ShoppingListItem `json:"shoppingList"`
	Preferences   recipe.UserPreferences    `json:"preferences"`
}

// Persister saves and restores a Snapshot. Load returns (nil, nil) when no
// previous state exists.
type Persister interface {
	Save(Snapshot) error
	Load() (*Snapshot, error)
}

// Store holds all user-generated application state. It is safe for use from
// multiple goroutines; each exported method is a single atomic operation.
type Store struct {
	mu sync.Mutex

	favorites    []string
	favoriteSet  map[string]struct{}
	history      []string
	recent       []recipe.Recipe
	mealPlans    []recipe.MealPlan
	shoppingList []recipe.ShoppingListItem
	preferences  recipe.UserPreferences

	// Transient state, never persisted.
	filters recipe.SearchFilters
	results []recipe.SearchResult

	persister Persister
}

// New creates a Store rehydrated from the persister. A load failure falls
// back to the default empty state with a logged warning. A nil persister
// disables persistence (used by tests).
func New(p Persister) *Store {
	s := &Store{
		favoriteSet: map[string]struct{}{},
		preferences: recipe.DefaultPreferences(),
		filters:     recipe.DefaultFilters(),
		persister:   p,
	}

	if p == nil {
		return s
	}

	snap, err := p.Load()
	if err != nil {
		log.Printf("Warning: failed to load persisted state, starting fresh: %v", err)
		return s
	}
	if snap != nil {
		s.restore(*snap)
	}
	return s
}

func (s *Store) restore(snap Snapshot) {
	s.favorites = append([]string(nil), snap.Favorites...)
	for _, id := range s.favorites {
		s.favoriteSet[id] = struct{}{}
	}
	s.history = append([]string(nil), snap.SearchHistory...)
	s.recent = append([]recipe.Recipe(nil), snap.RecentRecipes...)
	s.mealPlans = append([]recipe.MealPlan(nil), snap.MealPlans...)
	s.shoppingList = append([]recipe.ShoppingListItem(nil), snap.ShoppingList...)
	s.preferences = snap.Preferences
}

// snapshot must be called with the lock held.
func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Favorites:     append([]string(nil), s.favorites...),
		SearchHistory: append([]string(nil), s.history...),
		RecentRecipes: append([]recipe.Recipe(nil), s.recent...),
		MealPlans:     append([]recipe.MealPlan(nil), s.mealPlans...),
		ShoppingList:  append([]recipe.ShoppingListItem(nil), s.shoppingList...),
		Preferences:   s.preferences,
	}
}

// persist must be called with the lock held. Persistence is best-effort: the
// in-memory state stays authoritative for the session on failure.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.snapshot()); err != nil {
		log.Printf("Warning: failed to persist state: %v", err)
	}
}

// --- Favorites ---

// AddToFavorites adds a recipe id to the favorites set. Adding an existing
// id is a no-op.
func (s *Store) AddToFavorites(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favoriteSet[id]; ok {
		return
	}
	s.favoriteSet[id] = struct{}{}
	s.favorites = append(s.favorites, id)
	s.persist()
}

// RemoveFromFavorites removes a recipe id from the favorites set.
func (s *Store) RemoveFromFavorites(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favoriteSet[id]; !ok {
		return
	}
	delete(s.favoriteSet, id)
	for i, fav := range s.favorites {
		if fav == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			break
		}
	}
	s.persist()
}

// IsFavorite reports whether a recipe id is in the favorites set.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favoriteSet[id]
	return ok
}

// Favorites returns the favorited recipe ids in insertion order.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favorites...)
}

// --- Search history ---

// AddToSearchHistory records a query at the front of the history. An
// existing identical query is moved to the front instead of duplicated; the
// history is capped at 10 entries.
func (s *Store) AddToSearchHistory(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]string, 0, len(s.history)+1)
	filtered = append(filtered, query)
	for _, q := range s.history {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > maxSearchHistory {
		filtered = filtered[:maxSearchHistory]
	}
	s.history = filtered
	s.persist()
}

// ClearSearchHistory empties the search history.
func (s *Store) ClearSearchHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.persist()
}

// SearchHistory returns the recorded queries, most recent first.
func (s *Store) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// --- Recent recipes ---

// AddToRecentRecipes records a viewed recipe at the front of the recent
// list. A recipe with the same id is moved to the front; the list is capped
// at 20 entries.
func (s *Store) AddToRecentRecipes(rec recipe.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]recipe.Recipe, 0, len(s.recent)+1)
	filtered = append(filtered, rec)
	for _, r := range s.recent {
		if r.ID != rec.ID {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) > maxRecentRecipes {
		filtered = filtered[:maxRecentRecipes]
	}
	s.recent = filtered
	s.persist()
}

// ClearRecentRecipes empties the recently viewed list.
func (s *Store) ClearRecentRecipes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
	s.persist()
}

// RecentRecipes returns the recently viewed recipes, most recent first.
func (s *Store) RecentRecipes() []recipe.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.Recipe(nil), s.recent...)
}

// --- Meal plans ---

// AddMealPlan stores a meal plan, replacing any existing plan for the same
// date. At most one plan exists per date.
func (s *Store) AddMealPlan(plan recipe.MealPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]recipe.MealPlan, 0, len(s.mealPlans)+1)
	for _, mp := range s.mealPlans {
		if mp.Date != plan.Date {
			kept = append(kept, mp)
		}
	}
	s.mealPlans = append(kept, plan)
	s.persist()
}

// UpdateMealPlan merges a partial update into the plan with the given id.
// Unknown ids are a no-op.
func (s *Store) UpdateMealPlan(id string, update recipe.MealPlanUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, mp := range s.mealPlans {
		if mp.ID != id {
			continue
		}
		if update.Date != nil {
			mp.Date = *update.Date
		}
		if update.Meals != nil {
			mp.Meals = *update.Meals
		}
		s.mealPlans[i] = mp
		s.persist()
		return
	}
}

// DeleteMealPlan removes the plan with the given id.
func (s *Store) DeleteMealPlan(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, mp := range s.mealPlans {
		if mp.ID == id {
			s.mealPlans = append(s.mealPlans[:i], s.mealPlans[i+1:]...)
			s.persist()
			return
		}
	}
}

// GetMealPlanByDate returns the plan for an ISO date, or nil.
func (s *Store) GetMealPlanByDate(date string) *recipe.MealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, mp := range s.mealPlans {
		if mp.Date == date {
			plan := mp
			return &plan
		}
	}
	return nil
}

// MealPlans returns all stored meal plans.
func (s *Store) MealPlans() []recipe.MealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.MealPlan(nil), s.mealPlans...)
}

// --- Shopping list ---

// AddToShoppingList appends an item with a freshly assigned id and
// checked=false, and returns the assigned id.
func (s *Store) AddToShoppingList(item recipe.ShoppingListItem) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = uuid.NewString()
	item.Checked = false
	s.shoppingList = append(s.shoppingList, item)
	s.persist()
	return item.ID
}

// UpdateShoppingListItem merges a partial update into the item with the
// given id. Unknown ids are a no-op.
func (s *Store) UpdateShoppingListItem(id string, update recipe.ShoppingListItemUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.shoppingList {
		if item.ID != id {
			continue
		}
		if update.Ingredient != nil {
			item.Ingredient = *update.Ingredient
		}
		if update.RecipeID != nil {
			item.RecipeID = *update.RecipeID
		}
		if update.RecipeTitle != nil {
			item.RecipeTitle = *update.RecipeTitle
		}
		if update.Quantity != nil {
			item.Quantity = *update.Quantity
		}
		if update.Unit != nil {
			item.Unit = *update.Unit
		}
		if update.Checked != nil {
			item.Checked = *update.Checked
		}
		s.shoppingList[i] = item
		s.persist()
		return
	}
}

// RemoveShoppingListItem deletes the item with the given id.
func (s *Store) RemoveShoppingListItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.shoppingList {
		if item.ID == id {
			s.shoppingList = append(s.shoppingList[:i], s.shoppingList[i+1:]...)
			s.persist()
			return
		}
	}
}

// ToggleShoppingListItem flips the checked flag of the item with the given
// id.
func (s *Store) ToggleShoppingListItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.shoppingList {
		if item.ID == id {
			s.shoppingList[i].Checked = !item.Checked
			s.persist()
			return
		}
	}
}

// ClearShoppingList empties the shopping list.
func (s *Store) ClearShoppingList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingList = nil
	s.persist()
}

// ShoppingList returns all shopping list items in insertion order.
func (s *Store) ShoppingList() []recipe.ShoppingListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.ShoppingListItem(nil), s.shoppingList...)
}

// CheckedItems returns the checked shopping list items.
func (s *Store) CheckedItems() []recipe.ShoppingListItem {
	return s.filterShoppingList(true)
}

// UncheckedItems returns the unchecked shopping list items.
func (s *Store) UncheckedItems() []recipe.ShoppingListItem {
	return s.filterShoppingList(false)
}

func (s *Store) filterShoppingList(checked bool) []recipe.ShoppingListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []recipe.ShoppingListItem
	for _, item := range s.shoppingList {
		if item.Checked == checked {
			items = append(items, item)
		}
	}
	return items
}

// --- Preferences ---

// UpdatePreferences shallow-merges a partial update into the stored
// preferences.
func (s *Store) UpdatePreferences(update recipe.PreferencesUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if update.FavoriteRecipes != nil {
		s.preferences.FavoriteRecipes = *update.FavoriteRecipes
	}
	if update.DietaryRestrictions != nil {
		s.preferences.DietaryRestrictions = *update.DietaryRestrictions
	}
	if update.FavoriteCuisines != nil {
		s.preferences.FavoriteCuisines = *update.FavoriteCuisines
	}
	if update.Intolerances != nil {
		s.preferences.Intolerances = *update.Intolerances
	}
	if update.MealPlanPreferences != nil {
		s.preferences.MealPlanPreferences = *update.MealPlanPreferences
	}
	s.persist()
}

// Preferences returns the current user preferences.
func (s *Store) Preferences() recipe.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

// --- Transient search state ---

// SetSearchFilters merges a partial update into the transient search
// filters. Transient state is never persisted.
func (s *Store) SetSearchFilters(update recipe.SearchFiltersUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.filters
	if update.Query != nil {
		f.Query = *update.Query
	}
	if update.Cuisine != nil {
		f.Cuisine = *update.Cuisine
	}
	if update.Diet != nil {
		f.Diet = *update.Diet
	}
	if update.Intolerances != nil {
		f.Intolerances = *update.Intolerances
	}
	if update.Type != nil {
		f.Type = *update.Type
	}
	if update.MaxReadyTime != nil {
		f.MaxReadyTime = *update.MaxReadyTime
	}
	if update.MinServings != nil {
		f.MinServings = *update.MinServings
	}
	if update.MaxServings != nil {
		f.MaxServings = *update.MaxServings
	}
	if update.AddRecipeInformation != nil {
		f.AddRecipeInformation = *update.AddRecipeInformation
	}
	if update.AddRecipeInstructions != nil {
		f.AddRecipeInstructions = *update.AddRecipeInstructions
	}
	if update.AddRecipeNutrition != nil {
		f.AddRecipeNutrition = *update.AddRecipeNutrition
	}
	if update.Sort != nil {
		f.Sort = *update.Sort
	}
	if update.SortDirection != nil {
		f.SortDirection = *update.SortDirection
	}
	if update.Number != nil {
		f.Number = *update.Number
	}
	if update.Offset != nil {
		f.Offset = *update.Offset
	}
	s.filters = f
}

// ClearSearchFilters resets the transient filters to their defaults.
func (s *Store) ClearSearchFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = recipe.DefaultFilters()
}

// SearchFilters returns the current transient filters.
func (s *Store) SearchFilters() recipe.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetSearchResults stores the last search page. Transient, never persisted.
func (s *Store) SetSearchResults(results []recipe.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append([]recipe.SearchResult(nil), results...)
}

// ClearSearchResults drops the stored search page.
func (s *Store) ClearSearchResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
}

// SearchResults returns the last stored search page.
func (s *Store) SearchResults() []recipe.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.SearchResult(nil), s.results...)
}
