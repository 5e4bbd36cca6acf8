package acceptance_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/app"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/cache"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/config"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/storage"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/store"
)

// --- Mock API Client ---
type mockAPIClient struct {
	online  bool
	recipes map[string]*recipe.Recipe
	results []recipe.SearchResult
}

var errOffline = errors.New("network unreachable")

func (m *mockAPIClient) SearchRecipes(ctx context.Context, filters recipe.SearchFilters) ([]recipe.SearchResult, error) {
	if !m.online {
		return nil, errOffline
	}
	return m.results, nil
}

func (m *mockAPIClient) GetRecipeByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	if !m.online {
		return nil, errOffline
	}
	if rec, ok := m.recipes[id]; ok {
		return rec, nil
	}
	return nil, errors.New("not found")
}

func (m *mockAPIClient) GetRandomRecipes(ctx context.Context, number int) ([]recipe.Recipe, error) {
	if !m.online {
		return nil, errOffline
	}
	return nil, nil
}

func (m *mockAPIClient) SearchByIngredients(ctx context.Context, ingredients []string, number int) ([]recipe.SearchResult, error) {
	if !m.online {
		return nil, errOffline
	}
	return m.results, nil
}

func (m *mockAPIClient) GetSimilarRecipes(ctx context.Context, id string, number int) ([]recipe.Recipe, error) {
	if !m.online {
		return nil, errOffline
	}
	return nil, nil
}

func (m *mockAPIClient) Autocomplete(ctx context.Context, query string, number int) ([]string, error) {
	if !m.online {
		return nil, errOffline
	}
	return nil, nil
}

func newTestApp(t *testing.T, mock *mockAPIClient) (*app.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		SpoonacularAPIKey: "test-key",
		DataDir:           t.TempDir(),
	}

	stateFile, err := storage.NewStateFile(cfg.StateFilePath())
	if err != nil {
		t.Fatalf("Failed to create state file: %v", err)
	}
	cacheMgr := cache.NewManager(cfg.CacheDBPath(), cfg.ProbeURL)
	t.Cleanup(func() { cacheMgr.Close() })

	return app.New(mock, store.New(stateFile), cacheMgr, nil, cfg), cfg
}

// TestFavoriteSurvivesRestart covers the full favorite flow: view a recipe,
// favorite it, then rebuild the app from the same data directory and verify
// the favorite was persisted.
func TestFavoriteSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	carbonara := &recipe.Recipe{ID: "101", Title: "Carbonara"}
	mock := &mockAPIClient{online: true, recipes: map[string]*recipe.Recipe{"101": carbonara}}
	a, cfg := newTestApp(t, mock)

	rec, _, err := a.ViewRecipe(ctx, "101")
	if err != nil {
		t.Fatalf("Failed to view recipe: %v", err)
	}
	a.Store.AddToFavorites(rec.ID.String())
	if !a.Store.IsFavorite("101") {
		t.Fatal("Expected recipe 101 to be a favorite")
	}

	// Simulate a restart: a fresh store rehydrated from the same state file.
	stateFile, err := storage.NewStateFile(cfg.StateFilePath())
	if err != nil {
		t.Fatalf("Failed to reopen state file: %v", err)
	}
	restarted := store.New(stateFile)
	if !restarted.IsFavorite("101") {
		t.Error("Expected the favorite to survive a restart")
	}
	if got := restarted.RecentRecipes(); len(got) != 1 || got[0].ID != "101" {
		t.Errorf("Expected the recent recipe to survive a restart, got %v", got)
	}

	restarted.RemoveFromFavorites("101")
	if restarted.IsFavorite("101") {
		t.Error("Expected the favorite to be removable after a restart")
	}
	if got := restarted.Favorites(); len(got) != 0 {
		t.Errorf("Expected empty favorites, got %v", got)
	}
}

// TestOnePlanPerDate verifies that planning two menus for the same day keeps
// only the later one.
func TestOnePlanPerDate(t *testing.T) {
	a, _ := newTestApp(t, &mockAPIClient{online: true})

	a.Store.AddMealPlan(recipe.MealPlan{
		ID:   "first",
		Date: "2024-06-10",
		Meals: recipe.Meals{
			Dinner: &recipe.Recipe{ID: "1", Title: "Curry"},
		},
	})
	a.Store.AddMealPlan(recipe.MealPlan{
		ID:   "second",
		Date: "2024-06-10",
		Meals: recipe.Meals{
			Lunch: &recipe.Recipe{ID: "2", Title: "Salad"},
		},
	})

	plans := a.Store.MealPlans()
	if len(plans) != 1 {
		t.Fatalf("Expected 1 plan for the date, got %d", len(plans))
	}
	plan := a.Store.GetMealPlanByDate("2024-06-10")
	if plan.ID != "second" {
		t.Errorf("Expected the later plan to win, got %s", plan.ID)
	}
	if plan.Meals.Lunch == nil || plan.Meals.Dinner != nil {
		t.Errorf("Expected only the later plan's meals, got %+v", plan.Meals)
	}
}

// TestOfflineRecipeAccess covers the offline cache flow: a recipe viewed
// while online is served from the cache once the network goes away.
func TestOfflineRecipeAccess(t *testing.T) {
	ctx := context.Background()
	soup := &recipe.Recipe{ID: "55", Title: "Tomato Soup", Servings: 2}
	mock := &mockAPIClient{online: true, recipes: map[string]*recipe.Recipe{"55": soup}}
	a, _ := newTestApp(t, mock)

	if _, _, err := a.ViewRecipe(ctx, "55"); err != nil {
		t.Fatalf("Failed to view recipe while online: %v", err)
	}

	mock.online = false

	rec, fromCache, err := a.ViewRecipe(ctx, "55")
	if err != nil {
		t.Fatalf("Expected the cached recipe to be served offline, got %v", err)
	}
	if !fromCache {
		t.Error("Expected fromCache to be true while offline")
	}
	if rec.Title != "Tomato Soup" || rec.Servings != 2 {
		t.Errorf("Unexpected cached recipe %+v", rec)
	}

	// A recipe never viewed online stays unavailable.
	if _, _, err := a.ViewRecipe(ctx, "999"); err == nil {
		t.Error("Expected an error for an uncached recipe while offline")
	}
}

// TestOfflineSearchAccess covers the cached search flow: a query run online
// is answered from the cache when offline, and unknown queries fail.
func TestOfflineSearchAccess(t *testing.T) {
	ctx := context.Background()
	mock := &mockAPIClient{
		online:  true,
		results: []recipe.SearchResult{{ID: "1", Title: "Pasta Carbonara"}},
	}
	a, _ := newTestApp(t, mock)

	if _, _, err := a.Search(ctx, "pasta"); err != nil {
		t.Fatalf("Failed to search while online: %v", err)
	}

	mock.online = false

	results, fromCache, err := a.Search(ctx, "pasta")
	if err != nil {
		t.Fatalf("Expected cached results offline, got %v", err)
	}
	if !fromCache || len(results) != 1 {
		t.Errorf("Expected 1 cached result, got %d (fromCache=%v)", len(results), fromCache)
	}

	if _, _, err := a.Search(ctx, "sushi"); err == nil {
		t.Error("Expected an error for an uncached query while offline")
	}
}
