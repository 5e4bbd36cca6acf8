// Package clipper imports recipes from arbitrary web pages. Most recipe
// sites embed a schema.org/Recipe block as JSON-LD; the clipper extracts it
// and falls back to DOM heuristics when no usable block is found.
package clipper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
)

// Clipper fetches and extracts recipes from URLs.
type Clipper struct {
	httpClient *http.Client
}

// New creates a new Clipper instance.
func New() *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ldRecipe mirrors the subset of schema.org/Recipe the clipper consumes.
type ldRecipe struct {
	Type             any               `json:"@type"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Image            any               `json:"image"`
	RecipeYield      any               `json:"recipeYield"`
	TotalTime        string            `json:"totalTime"`
	RecipeCuisine    any               `json:"recipeCuisine"`
	RecipeCategory   any               `json:"recipeCategory"`
	RecipeIngredient []string          `json:"recipeIngredient"`
	Instructions     any               `json:"recipeInstructions"`
	Graph            []json.RawMessage `json:"@graph"`
}

// ClipURL fetches the page and extracts a recipe from it.
func (c *Clipper) ClipURL(pageURL string) (*recipe.Recipe, error) {
	resp, err := c.httpClient.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return c.Extract(doc, pageURL)
}

// Extract pulls a recipe out of an already parsed document.
func (c *Clipper) Extract(doc *goquery.Document, pageURL string) (*recipe.Recipe, error) {
	rec := c.extractJSONLD(doc)
	if rec == nil {
		rec = c.extractHeuristic(doc)
	}
	if rec == nil {
		return nil, fmt.Errorf("no recipe found at %s", pageURL)
	}

	rec.ID = recipe.ID(uuid.NewString())
	rec.SourceURL = pageURL
	if u, err := url.Parse(pageURL); err == nil {
		rec.SourceName = u.Host
	}
	return rec, nil
}

func (c *Clipper) extractJSONLD(doc *goquery.Document) *recipe.Recipe {
	var found *recipe.Recipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		for _, raw := range candidateBlocks(s.Text()) {
			var ld ldRecipe
			if err := json.Unmarshal(raw, &ld); err != nil {
				continue
			}
			if !isRecipeType(ld.Type) || ld.Name == "" {
				continue
			}
			found = ldToRecipe(ld)
			return false
		}
		return true
	})
	return found
}

// candidateBlocks flattens a JSON-LD payload (single object, array, or
// @graph container) into individually decodable objects.
func candidateBlocks(text string) []json.RawMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var blocks []json.RawMessage
	if strings.HasPrefix(text, "[") {
		_ = json.Unmarshal([]byte(text), &blocks)
	} else {
		blocks = []json.RawMessage{json.RawMessage(text)}
	}

	var out []json.RawMessage
	for _, b := range blocks {
		out = append(out, b)
		var container struct {
			Graph []json.RawMessage `json:"@graph"`
		}
		if err := json.Unmarshal(b, &container); err == nil {
			out = append(out, container.Graph...)
		}
	}
	return out
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func ldToRecipe(ld ldRecipe) *recipe.Recipe {
	rec := &recipe.Recipe{
		Title:          ld.Name,
		Summary:        ld.Description,
		Image:          firstString(ld.Image),
		Servings:       parseYield(ld.RecipeYield),
		ReadyInMinutes: parseISODuration(ld.TotalTime),
		Cuisines:       stringList(ld.RecipeCuisine),
		DishTypes:      stringList(ld.RecipeCategory),
	}

	for _, ing := range ld.RecipeIngredient {
		rec.Ingredients = append(rec.Ingredients, recipe.ExtendedIngredient{
			Original:     ing,
			OriginalName: ing,
			Name:         ing,
		})
	}

	steps := instructionSteps(ld.Instructions)
	if len(steps) > 0 {
		rec.AnalyzedSteps = []recipe.AnalyzedInstruction{{Steps: steps}}
		var lines []string
		for _, st := range steps {
			lines = append(lines, st.Step)
		}
		rec.Instructions = strings.Join(lines, "\n")
	}
	return rec
}

// instructionSteps flattens schema.org recipeInstructions, which may be a
// plain string, a list of strings, HowToStep objects, or HowToSection
// containers with nested itemListElement steps.
func instructionSteps(v any) []recipe.InstructionStep {
	var steps []recipe.InstructionStep
	appendStep := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		steps = append(steps, recipe.InstructionStep{Number: len(steps) + 1, Step: text})
	}

	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			appendStep(t)
		case []any:
			for _, item := range t {
				walk(item)
			}
		case map[string]any:
			if nested, ok := t["itemListElement"]; ok {
				walk(nested)
				return
			}
			if text, ok := t["text"].(string); ok {
				appendStep(text)
			} else if name, ok := t["name"].(string); ok {
				appendStep(name)
			}
		}
	}
	walk(v)
	return steps
}

// firstString resolves a schema.org value that may be a string, a list, or
// an ImageObject.
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s := firstString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if s, ok := t["url"].(string); ok {
			return s
		}
	}
	return ""
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func parseYield(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		fields := strings.Fields(t)
		if len(fields) == 0 {
			return 0
		}
		if n, err := strconv.Atoi(fields[0]); err == nil {
			return n
		}
	case []any:
		for _, item := range t {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// parseISODuration converts an ISO 8601 duration like PT1H30M to minutes.
func parseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// extractHeuristic is the fallback for pages without structured data: take
// the page title and any itemprop-annotated ingredient lines.
func (c *Clipper) extractHeuristic(doc *goquery.Document) *recipe.Recipe {
	// Remove noise before reading text content.
	doc.Find("script, style, nav, footer, iframe").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		return nil
	}

	rec := &recipe.Recipe{Title: title}
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(i int, s *goquery.Selection) {
		line := strings.TrimSpace(s.Text())
		if line != "" {
			rec.Ingredients = append(rec.Ingredients, recipe.ExtendedIngredient{
				Original:     line,
				OriginalName: line,
				Name:         line,
			})
		}
	})

	if len(rec.Ingredients) == 0 {
		return nil
	}
	return rec
}
