// Package app wires the recipe API client, the state store, the offline
// cache and the clipper into the user-facing flows.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/api"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/cache"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/clipper"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/config"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/export"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/store"
)

// App holds the application's dependencies. It is created once at process
// start and passed explicitly wherever needed; there is no global instance.
type App struct {
	APIClient api.Client
	Store     *store.Store
	Cache     *cache.Manager
	Clipper   *clipper.Clipper
	Config    *config.Config
}

// New creates and initializes a new App instance.
func New(apiClient api.Client, st *store.Store, cacheMgr *cache.Manager, clip *clipper.Clipper, cfg *config.Config) *App {
	return &App{
		APIClient: apiClient,
		Store:     st,
		Cache:     cacheMgr,
		Clipper:   clip,
		Config:    cfg,
	}
}

// Search runs a recipe search for the query using the current transient
// filters, records the query in the search history, and hydrates the offline
// cache with the result set. When the API is unreachable it falls back to a
// previously cached result set; fromCache reports which path served the
// results.
func (a *App) Search(ctx context.Context, query string) (results []recipe.SearchResult, fromCache bool, err error) {
	if query != "" {
		a.Store.SetSearchFilters(recipe.SearchFiltersUpdate{Query: &query})
		a.Store.AddToSearchHistory(query)
	}

	results, err = a.APIClient.SearchRecipes(ctx, a.Store.SearchFilters())
	if err != nil {
		cached, cacheErr := a.Cache.CachedSearchResults(ctx, query)
		if cacheErr != nil {
			log.Printf("Warning: cache lookup for %q failed: %v", query, cacheErr)
		}
		if cached == nil {
			return nil, false, fmt.Errorf("search failed: %w", err)
		}
		a.Store.SetSearchResults(cached.Results)
		return cached.Results, true, nil
	}

	a.Store.SetSearchResults(results)
	if cacheErr := a.Cache.CacheSearchResults(ctx, query, results); cacheErr != nil {
		log.Printf("Warning: failed to cache search results for %q: %v", query, cacheErr)
	}
	return results, false, nil
}

// ViewRecipe fetches full recipe detail, records it as recently viewed and
// refreshes its cache entry. When the API is unreachable it serves the
// cached copy if one exists.
func (a *App) ViewRecipe(ctx context.Context, id string) (rec *recipe.Recipe, fromCache bool, err error) {
	rec, err = a.APIClient.GetRecipeByID(ctx, id)
	if err != nil {
		cached, cacheErr := a.Cache.CachedRecipe(ctx, id)
		if cacheErr != nil {
			log.Printf("Warning: cache lookup for recipe %s failed: %v", id, cacheErr)
		}
		if cached == nil {
			return nil, false, fmt.Errorf("failed to fetch recipe %s: %w", id, err)
		}
		a.Store.AddToRecentRecipes(cached.Recipe)
		return &cached.Recipe, true, nil
	}

	a.Store.AddToRecentRecipes(*rec)
	if cacheErr := a.Cache.CacheRecipe(ctx, *rec); cacheErr != nil {
		log.Printf("Warning: failed to cache recipe %s: %v", id, cacheErr)
	}
	return rec, false, nil
}

// RandomRecipes fetches random recipes and hydrates the cache with them.
func (a *App) RandomRecipes(ctx context.Context, number int) ([]recipe.Recipe, error) {
	recipes, err := a.APIClient.GetRandomRecipes(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch random recipes: %w", err)
	}
	for _, rec := range recipes {
		if cacheErr := a.Cache.CacheRecipe(ctx, rec); cacheErr != nil {
			log.Printf("Warning: failed to cache recipe %s: %v", rec.ID, cacheErr)
		}
	}
	return recipes, nil
}

// SimilarRecipes fetches recipes similar to the given one.
func (a *App) SimilarRecipes(ctx context.Context, id string, number int) ([]recipe.Recipe, error) {
	recipes, err := a.APIClient.GetSimilarRecipes(ctx, id, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar recipes: %w", err)
	}
	return recipes, nil
}

// SuggestByIngredients finds recipes that use the given ingredients.
func (a *App) SuggestByIngredients(ctx context.Context, ingredients []string, number int) ([]recipe.SearchResult, error) {
	results, err := a.APIClient.SearchByIngredients(ctx, ingredients, number)
	if err != nil {
		return nil, fmt.Errorf("ingredient search failed: %w", err)
	}
	return results, nil
}

// AutocompleteSearch suggests recipe titles for a partial query.
func (a *App) AutocompleteSearch(ctx context.Context, query string, number int) ([]string, error) {
	titles, err := a.APIClient.Autocomplete(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("autocomplete failed: %w", err)
	}
	return titles, nil
}

// ClipRecipe imports a recipe from a web page, records it as recently
// viewed and caches it for offline use.
func (a *App) ClipRecipe(ctx context.Context, pageURL string) (*recipe.Recipe, error) {
	rec, err := a.Clipper.ClipURL(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to clip %s: %w", pageURL, err)
	}

	a.Store.AddToRecentRecipes(*rec)
	if cacheErr := a.Cache.CacheRecipe(ctx, *rec); cacheErr != nil {
		log.Printf("Warning: failed to cache clipped recipe %s: %v", rec.ID, cacheErr)
	}
	return rec, nil
}

// ExportShoppingList writes the unchecked shopping list items to
// shopping-list.txt in dir and returns the written path.
func (a *App) ExportShoppingList(dir string) (string, error) {
	return export.WriteShoppingList(dir, a.Store.ShoppingList())
}

// SweepCache removes cache entries older than maxAge and returns how many
// were deleted.
func (a *App) SweepCache(ctx context.Context, maxAge time.Duration) (int64, error) {
	return a.Cache.ClearOldCache(ctx, maxAge)
}
