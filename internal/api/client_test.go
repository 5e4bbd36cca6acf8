package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/config"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&config.Config{
		SpoonacularAPIKey: "test-key",
		APIBaseURL:        server.URL,
	})
}

func TestSearchRecipes(t *testing.T) {
	t.Run("DecodesResultsAndInjectsKey", func(t *testing.T) {
		var gotPath, gotKey, gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("apiKey")
			gotQuery = r.URL.Query().Get("query")
			w.Write([]byte(`{"results": [{"id": 101, "title": "Pasta Carbonara"}]}`))
		})

		filters := recipe.DefaultFilters()
		filters.Query = "pasta"
		results, err := client.SearchRecipes(context.Background(), filters)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if gotPath != "/recipes/complexSearch" {
			t.Errorf("Expected complexSearch path, got %s", gotPath)
		}
		if gotKey != "test-key" {
			t.Errorf("Expected apiKey query parameter, got %q", gotKey)
		}
		if gotQuery != "pasta" {
			t.Errorf("Expected query parameter, got %q", gotQuery)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(results))
		}
		if results[0].ID != "101" {
			t.Errorf("Expected numeric id decoded as '101', got %q", results[0].ID)
		}
		if results[0].Title != "Pasta Carbonara" {
			t.Errorf("Expected title decoded, got %q", results[0].Title)
		}
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		})

		_, err := client.SearchRecipes(context.Background(), recipe.DefaultFilters())
		if !errors.Is(err, ErrQuotaExceeded) {
			t.Errorf("Expected ErrQuotaExceeded, got %v", err)
		}
	})

	t.Run("InvalidAPIKey", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.SearchRecipes(context.Background(), recipe.DefaultFilters())
		if !errors.Is(err, ErrInvalidAPIKey) {
			t.Errorf("Expected ErrInvalidAPIKey, got %v", err)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(server.Close)

		client := &spoonacularClient{
			httpClient: &http.Client{Timeout: 20 * time.Millisecond},
			limiter:    rate.NewLimiter(rate.Inf, 1),
			baseURL:    server.URL,
			apiKey:     "test-key",
		}

		_, err := client.SearchRecipes(context.Background(), recipe.DefaultFilters())
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("Expected ErrTimeout, got %v", err)
		}
	})

	t.Run("UnexpectedStatus", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.SearchRecipes(context.Background(), recipe.DefaultFilters())
		if err == nil {
			t.Fatal("Expected an error for a 500 response")
		}
		if errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrInvalidAPIKey) {
			t.Errorf("Expected a generic error, got %v", err)
		}
	})
}

func TestGetRecipeByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/101/information" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("includeNutrition") != "true" {
			t.Error("Expected includeNutrition=true")
		}
		w.Write([]byte(`{
			"id": 101,
			"title": "Pasta Carbonara",
			"servings": 4,
			"readyInMinutes": 30,
			"extendedIngredients": [{"id": 1, "name": "spaghetti", "original": "200g spaghetti"}]
		}`))
	})

	rec, err := client.GetRecipeByID(context.Background(), "101")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.ID != "101" || rec.Title != "Pasta Carbonara" {
		t.Errorf("Unexpected recipe %+v", rec)
	}
	if rec.Servings != 4 || rec.ReadyInMinutes != 30 {
		t.Errorf("Expected servings and time decoded, got %+v", rec)
	}
	if len(rec.Ingredients) != 1 || rec.Ingredients[0].Name != "spaghetti" {
		t.Errorf("Expected ingredients decoded, got %+v", rec.Ingredients)
	}
}

func TestGetRandomRecipes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/random" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("number") != "3" {
			t.Errorf("Expected number=3, got %s", r.URL.Query().Get("number"))
		}
		w.Write([]byte(`{"recipes": [{"id": 1}, {"id": 2}, {"id": 3}]}`))
	})

	recipes, err := client.GetRandomRecipes(context.Background(), 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(recipes) != 3 {
		t.Errorf("Expected 3 recipes, got %d", len(recipes))
	}
}

func TestSearchByIngredients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/findByIngredients" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ingredients") != "flour,eggs" {
			t.Errorf("Expected comma-joined ingredients, got %s", r.URL.Query().Get("ingredients"))
		}
		w.Write([]byte(`[{"id": 7, "title": "Crepes", "usedIngredientCount": 2, "missedIngredientCount": 1}]`))
	})

	results, err := client.SearchByIngredients(context.Background(), []string{"flour", "eggs"}, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].UsedIngredientCount != 2 || results[0].MissedIngredientCount != 1 {
		t.Errorf("Expected ingredient counts decoded, got %+v", results[0])
	}
}

func TestAutocomplete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/autocomplete" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id": 1, "title": "Pasta Carbonara"}, {"id": 2, "title": "Pasta Primavera"}]`))
	})

	titles, err := client.Autocomplete(context.Background(), "pasta", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(titles) != 2 || titles[0] != "Pasta Carbonara" {
		t.Errorf("Expected titles extracted, got %v", titles)
	}
}
