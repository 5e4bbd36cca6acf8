package clipper

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const jsonLDPage = `<!DOCTYPE html>
<html><head>
<title>Best Tomato Soup | Example Kitchen</title>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Best Tomato Soup",
  "description": "A comforting classic.",
  "image": ["https://example.com/soup.jpg"],
  "recipeYield": "4 servings",
  "totalTime": "PT1H30M",
  "recipeCuisine": "American",
  "recipeCategory": ["soup", "lunch"],
  "recipeIngredient": ["2 lbs tomatoes", "1 onion", "2 cups stock"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Roast the tomatoes."},
    {"@type": "HowToStep", "text": "Simmer with stock."}
  ]
}
</script>
</head><body><h1>Best Tomato Soup</h1></body></html>`

const graphPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Example Kitchen"},
    {"@type": ["Recipe", "NewsArticle"], "name": "Graph Soup", "recipeIngredient": ["1 carrot"]}
  ]
}
</script>
</head><body></body></html>`

const heuristicPage = `<!DOCTYPE html>
<html><head><title>Fallback Pie | Example</title></head>
<body>
<nav>ignore me</nav>
<h1>Fallback Pie</h1>
<ul>
  <li itemprop="recipeIngredient">1 pie crust</li>
  <li itemprop="recipeIngredient">3 apples</li>
</ul>
<footer>ignore me too</footer>
</body></html>`

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Expected no error parsing fixture, got %v", err)
	}
	return doc
}

func TestExtractJSONLD(t *testing.T) {
	c := New()

	t.Run("SingleRecipeBlock", func(t *testing.T) {
		rec, err := c.Extract(docFromString(t, jsonLDPage), "https://example.com/soup")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if rec.Title != "Best Tomato Soup" {
			t.Errorf("Expected title from JSON-LD, got %q", rec.Title)
		}
		if rec.Image != "https://example.com/soup.jpg" {
			t.Errorf("Expected image resolved from list, got %q", rec.Image)
		}
		if rec.Servings != 4 {
			t.Errorf("Expected yield '4 servings' parsed to 4, got %d", rec.Servings)
		}
		if rec.ReadyInMinutes != 90 {
			t.Errorf("Expected PT1H30M parsed to 90 minutes, got %d", rec.ReadyInMinutes)
		}
		if len(rec.Cuisines) != 1 || rec.Cuisines[0] != "American" {
			t.Errorf("Expected cuisine list, got %v", rec.Cuisines)
		}
		if len(rec.DishTypes) != 2 {
			t.Errorf("Expected 2 dish types, got %v", rec.DishTypes)
		}
		if len(rec.Ingredients) != 3 {
			t.Fatalf("Expected 3 ingredients, got %d", len(rec.Ingredients))
		}
		if rec.Ingredients[0].Original != "2 lbs tomatoes" {
			t.Errorf("Unexpected first ingredient %+v", rec.Ingredients[0])
		}
		if len(rec.AnalyzedSteps) != 1 || len(rec.AnalyzedSteps[0].Steps) != 2 {
			t.Fatalf("Expected 2 analyzed steps, got %+v", rec.AnalyzedSteps)
		}
		if !strings.Contains(rec.Instructions, "Roast the tomatoes.") {
			t.Errorf("Expected joined instructions, got %q", rec.Instructions)
		}
		if rec.ID == "" {
			t.Error("Expected a generated id")
		}
		if rec.SourceURL != "https://example.com/soup" || rec.SourceName != "example.com" {
			t.Errorf("Expected source fields set, got %q / %q", rec.SourceURL, rec.SourceName)
		}
	})

	t.Run("GraphContainerAndTypeList", func(t *testing.T) {
		rec, err := c.Extract(docFromString(t, graphPage), "https://example.com/graph")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Title != "Graph Soup" {
			t.Errorf("Expected recipe found inside @graph, got %q", rec.Title)
		}
	})
}

func TestExtractHeuristic(t *testing.T) {
	c := New()

	t.Run("TitleAndItempropIngredients", func(t *testing.T) {
		rec, err := c.Extract(docFromString(t, heuristicPage), "https://example.com/pie")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Title != "Fallback Pie" {
			t.Errorf("Expected h1 title, got %q", rec.Title)
		}
		if len(rec.Ingredients) != 2 {
			t.Fatalf("Expected 2 ingredients, got %d", len(rec.Ingredients))
		}
	})

	t.Run("NoRecipeFound", func(t *testing.T) {
		page := `<html><head><title>Nothing here</title></head><body><p>No recipe.</p></body></html>`
		if _, err := c.Extract(docFromString(t, page), "https://example.com/none"); err == nil {
			t.Error("Expected an error for a page with no ingredients")
		}
	})
}

func TestClipURL(t *testing.T) {
	t.Run("FetchAndExtract", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(jsonLDPage))
		}))
		defer server.Close()

		rec, err := New().ClipURL(server.URL + "/soup")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Title != "Best Tomato Soup" {
			t.Errorf("Unexpected title %q", rec.Title)
		}
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := New().ClipURL(server.URL); err == nil {
			t.Error("Expected an error for a 404 page")
		}
	})
}

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT30M", 30},
		{"PT1H", 60},
		{"PT1H30M", 90},
		{"pt2h15m", 135},
		{"", 0},
		{"not-a-duration", 0},
	}
	for _, tc := range cases {
		if got := parseISODuration(tc.in); got != tc.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
