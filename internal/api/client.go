// Package api implements the client for the external recipe HTTP API
// (Spoonacular). Authentication is a query-parameter key appended to every
// request.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/config"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
)

// Error taxonomy surfaced to the UI layer. Use errors.Is to classify.
var (
	ErrQuotaExceeded = errors.New("API quota exceeded. Please try again later")
	ErrInvalidAPIKey = errors.New("invalid API key. Please check your configuration")
	ErrTimeout       = errors.New("request timeout. Please check your connection")
)

const requestTimeout = 10 * time.Second

// Client is an interface for the recipe API.
type Client interface {
	SearchRecipes(ctx context.Context, filters recipe.SearchFilters) ([]recipe.SearchResult, error)
	GetRecipeByID(ctx context.Context, id string) (*recipe.Recipe, error)
	GetRandomRecipes(ctx context.Context, number int) ([]recipe.Recipe, error)
	SearchByIngredients(ctx context.Context, ingredients []string, number int) ([]recipe.SearchResult, error)
	GetSimilarRecipes(ctx context.Context, id string, number int) ([]recipe.Recipe, error)
	Autocomplete(ctx context.Context, query string, number int) ([]string, error)
}

// spoonacularClient is the concrete implementation of the recipe API client.
type spoonacularClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
}

// NewClient creates a new recipe API client. Requests are throttled to stay
// under the free-tier rate limit.
func NewClient(cfg *config.Config) Client {
	return &spoonacularClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL:    cfg.APIBaseURL,
		apiKey:     cfg.SpoonacularAPIKey,
	}
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *spoonacularClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to acquire rate limit slot: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrQuotaExceeded
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidAPIKey
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("recipe api error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// SearchRecipes runs a complex search with the given filters.
func (c *spoonacularClient) SearchRecipes(ctx context.Context, filters recipe.SearchFilters) ([]recipe.SearchResult, error) {
	params := url.Values{}
	params.Set("query", filters.Query)
	params.Set("cuisine", filters.Cuisine)
	params.Set("diet", filters.Diet)
	params.Set("intolerances", strings.Join(filters.Intolerances, ","))
	params.Set("type", filters.Type)
	if filters.MaxReadyTime > 0 {
		params.Set("maxReadyTime", strconv.Itoa(filters.MaxReadyTime))
	}
	if filters.MinServings > 0 {
		params.Set("minServings", strconv.Itoa(filters.MinServings))
	}
	if filters.MaxServings > 0 {
		params.Set("maxServings", strconv.Itoa(filters.MaxServings))
	}
	params.Set("addRecipeInformation", strconv.FormatBool(filters.AddRecipeInformation))
	params.Set("addRecipeInstructions", strconv.FormatBool(filters.AddRecipeInstructions))
	params.Set("addRecipeNutrition", strconv.FormatBool(filters.AddRecipeNutrition))
	params.Set("sort", filters.Sort)
	params.Set("sortDirection", string(filters.SortDirection))
	params.Set("number", strconv.Itoa(filters.Number))
	params.Set("offset", strconv.Itoa(filters.Offset))

	var response struct {
		Results []recipe.SearchResult `json:"results"`
	}
	if err := c.get(ctx, "/recipes/complexSearch", params, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// GetRecipeByID fetches full recipe information including nutrition.
func (c *spoonacularClient) GetRecipeByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")

	var rec recipe.Recipe
	if err := c.get(ctx, "/recipes/"+url.PathEscape(id)+"/information", params, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRandomRecipes fetches a number of random recipes.
func (c *spoonacularClient) GetRandomRecipes(ctx context.Context, number int) ([]recipe.Recipe, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	params.Set("limitLicense", "true")

	var response struct {
		Recipes []recipe.Recipe `json:"recipes"`
	}
	if err := c.get(ctx, "/recipes/random", params, &response); err != nil {
		return nil, err
	}
	return response.Recipes, nil
}

// SearchByIngredients finds recipes using the given ingredients, ranked to
// maximize used ingredients.
func (c *spoonacularClient) SearchByIngredients(ctx context.Context, ingredients []string, number int) ([]recipe.SearchResult, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(number))
	params.Set("ranking", "1")
	params.Set("ignorePantry", "false")

	var results []recipe.SearchResult
	if err := c.get(ctx, "/recipes/findByIngredients", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetSimilarRecipes fetches recipes similar to the given one.
func (c *spoonacularClient) GetSimilarRecipes(ctx context.Context, id string, number int) ([]recipe.Recipe, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	params.Set("limitLicense", "true")

	var recipes []recipe.Recipe
	if err := c.get(ctx, "/recipes/"+url.PathEscape(id)+"/similar", params, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Autocomplete suggests recipe titles for a partial query.
func (c *spoonacularClient) Autocomplete(ctx context.Context, query string, number int) ([]string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))
	params.Set("metaInformation", "false")

	var suggestions []struct {
		Title string `json:"title"`
	}
	if err := c.get(ctx, "/recipes/autocomplete", params, &suggestions); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		titles = append(titles, s.Title)
	}
	return titles, nil
}
