package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/api"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/app"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/cache"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/clipper"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/config"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/storage"
	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/store"
)

func main() {
	ctx := context.Background()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	stateFile, err := storage.NewStateFile(cfg.StateFilePath())
	if err != nil {
		log.Fatalf("Failed to initialize state file: %v", err)
	}

	st := store.New(stateFile)
	cacheMgr := cache.NewManager(cfg.CacheDBPath(), cfg.ProbeURL)
	defer cacheMgr.Close()

	application := app.New(api.NewClient(cfg), st, cacheMgr, clipper.New(), cfg)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "search":
		runSearch(ctx, application, os.Args[2:])
	case "show":
		runShow(ctx, application, os.Args[2:])
	case "random":
		runRandom(ctx, application, os.Args[2:])
	case "similar":
		runSimilar(ctx, application, os.Args[2:])
	case "suggest":
		runSuggest(ctx, application, os.Args[2:])
	case "clip":
		runClip(ctx, application, os.Args[2:])
	case "favorites":
		runFavorites(st, os.Args[2:])
	case "history":
		runHistory(st, os.Args[2:])
	case "recent":
		for _, rec := range st.RecentRecipes() {
			fmt.Printf("%s  %s\n", rec.ID, rec.Title)
		}
	case "plan":
		runPlan(ctx, application, os.Args[2:])
	case "shopping":
		runShopping(st, os.Args[2:])
	case "export":
		runExport(application, os.Args[2:])
	case "cache":
		runCache(ctx, application, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runSearch(ctx context.Context, application *app.App, args []string) {
	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	cuisine := searchCmd.String("cuisine", "", "Restrict results to a cuisine")
	diet := searchCmd.String("diet", "", "Restrict results to a diet")
	number := searchCmd.Int("number", 0, "Number of results (default from filters)")
	searchCmd.Parse(args)

	if *cuisine != "" {
		application.Store.SetSearchFilters(recipe.SearchFiltersUpdate{Cuisine: cuisine})
	}
	if *diet != "" {
		application.Store.SetSearchFilters(recipe.SearchFiltersUpdate{Diet: diet})
	}
	if *number > 0 {
		application.Store.SetSearchFilters(recipe.SearchFiltersUpdate{Number: number})
	}

	query := strings.Join(searchCmd.Args(), " ")
	results, fromCache, err := application.Search(ctx, query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if fromCache {
		fmt.Println("(offline - showing cached results)")
	}
	for _, r := range results {
		fmt.Printf("%s  %s\n", r.ID, r.Title)
	}
}

func runShow(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: recipe-explorer show <recipe-id>")
	}

	rec, fromCache, err := application.ViewRecipe(ctx, args[0])
	if err != nil {
		log.Fatalf("Failed to fetch recipe: %v", err)
	}
	if fromCache {
		fmt.Println("(offline - showing cached copy)")
	}

	fmt.Printf("%s\n", rec.Title)
	fmt.Printf("Ready in %d minutes, serves %d\n", rec.ReadyInMinutes, rec.Servings)
	if application.Store.IsFavorite(rec.ID.String()) {
		fmt.Println("In favorites")
	}
	fmt.Println("\nIngredients:")
	for _, ing := range rec.Ingredients {
		fmt.Printf("- %s\n", ing.Original)
	}
	if rec.Instructions != "" {
		fmt.Printf("\nInstructions:\n%s\n", rec.Instructions)
	}
}

func runRandom(ctx context.Context, application *app.App, args []string) {
	randomCmd := flag.NewFlagSet("random", flag.ExitOnError)
	number := randomCmd.Int("number", 10, "Number of recipes")
	randomCmd.Parse(args)

	recipes, err := application.RandomRecipes(ctx, *number)
	if err != nil {
		log.Fatalf("Failed to fetch random recipes: %v", err)
	}
	for _, rec := range recipes {
		fmt.Printf("%s  %s\n", rec.ID, rec.Title)
	}
}

func runSimilar(ctx context.Context, application *app.App, args []string) {
	similarCmd := flag.NewFlagSet("similar", flag.ExitOnError)
	number := similarCmd.Int("number", 5, "Number of recipes")
	similarCmd.Parse(args)

	if similarCmd.NArg() < 1 {
		log.Fatal("Usage: recipe-explorer similar [-number N] <recipe-id>")
	}

	recipes, err := application.SimilarRecipes(ctx, similarCmd.Arg(0), *number)
	if err != nil {
		log.Fatalf("Failed to fetch similar recipes: %v", err)
	}
	for _, rec := range recipes {
		fmt.Printf("%s  %s\n", rec.ID, rec.Title)
	}
}

func runSuggest(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: recipe-explorer suggest <ingredient,ingredient,...>")
	}

	results, err := application.SuggestByIngredients(ctx, strings.Split(args[0], ","), 10)
	if err != nil {
		log.Fatalf("Ingredient search failed: %v", err)
	}
	for _, r := range results {
		fmt.Printf("%s  %s (uses %d, missing %d)\n", r.ID, r.Title, r.UsedIngredientCount, r.MissedIngredientCount)
	}
}

func runClip(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: recipe-explorer clip <url>")
	}

	rec, err := application.ClipRecipe(ctx, args[0])
	if err != nil {
		log.Fatalf("Clip failed: %v", err)
	}
	fmt.Printf("Clipped \"%s\" (%d ingredients) as %s\n", rec.Title, len(rec.Ingredients), rec.ID)
}

func runFavorites(st *store.Store, args []string) {
	if len(args) == 0 {
		for _, id := range st.Favorites() {
			fmt.Println(id)
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			log.Fatal("Usage: recipe-explorer favorites add <recipe-id>")
		}
		st.AddToFavorites(args[1])
	case "remove":
		if len(args) < 2 {
			log.Fatal("Usage: recipe-explorer favorites remove <recipe-id>")
		}
		st.RemoveFromFavorites(args[1])
	default:
		log.Fatalf("Unknown favorites subcommand: %s", args[0])
	}
}

func runHistory(st *store.Store, args []string) {
	if len(args) > 0 && args[0] == "clear" {
		st.ClearSearchHistory()
		return
	}
	for _, q := range st.SearchHistory() {
		fmt.Println(q)
	}
}

func runPlan(ctx context.Context, application *app.App, args []string) {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	date := planCmd.String("date", "", "ISO date (YYYY-MM-DD)")
	slot := planCmd.String("slot", string(recipe.SlotDinner), "Meal slot: breakfast, lunch, dinner or snack")
	recipeID := planCmd.String("recipe", "", "Recipe id to assign")
	planCmd.Parse(args)

	st := application.Store

	switch planCmd.Arg(0) {
	case "set":
		if *date == "" || *recipeID == "" {
			log.Fatal("Usage: recipe-explorer plan -date YYYY-MM-DD -slot dinner -recipe <id> set")
		}
		rec, _, err := application.ViewRecipe(ctx, *recipeID)
		if err != nil {
			log.Fatalf("Failed to fetch recipe for plan: %v", err)
		}

		plan := st.GetMealPlanByDate(*date)
		if plan == nil {
			plan = &recipe.MealPlan{ID: uuid.NewString(), Date: *date}
		}
		plan.Meals.Set(recipe.MealSlot(*slot), rec)
		st.AddMealPlan(*plan)
		fmt.Printf("Planned \"%s\" for %s on %s\n", rec.Title, *slot, *date)
	case "delete":
		if planCmd.NArg() < 2 {
			log.Fatal("Usage: recipe-explorer plan delete <plan-id>")
		}
		st.DeleteMealPlan(planCmd.Arg(1))
	case "", "list":
		for _, mp := range st.MealPlans() {
			fmt.Printf("%s (%s)\n", mp.Date, mp.ID)
			for _, s := range recipe.MealSlots {
				if rec := mp.Meals.Get(s); rec != nil {
					fmt.Printf("  %-9s %s\n", s, rec.Title)
				}
			}
		}
	case "show":
		if *date == "" {
			log.Fatal("Usage: recipe-explorer plan -date YYYY-MM-DD show")
		}
		mp := st.GetMealPlanByDate(*date)
		if mp == nil {
			fmt.Printf("No plan for %s\n", *date)
			return
		}
		for _, s := range recipe.MealSlots {
			if rec := mp.Meals.Get(s); rec != nil {
				fmt.Printf("%-9s %s\n", s, rec.Title)
			}
		}
	default:
		log.Fatalf("Unknown plan subcommand: %s", planCmd.Arg(0))
	}
}

func runShopping(st *store.Store, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			log.Fatal("Usage: recipe-explorer shopping add <item description>")
		}
		text := strings.Join(args[1:], " ")
		id := st.AddToShoppingList(recipe.ShoppingListItem{
			Ingredient:  recipe.ExtendedIngredient{Name: text, Original: text, OriginalName: text},
			RecipeID:    recipe.ManualSource,
			RecipeTitle: recipe.ManualSource,
			Quantity:    1,
		})
		fmt.Printf("Added %s\n", id)
	case "toggle":
		if len(args) < 2 {
			log.Fatal("Usage: recipe-explorer shopping toggle <item-id>")
		}
		st.ToggleShoppingListItem(args[1])
	case "remove":
		if len(args) < 2 {
			log.Fatal("Usage: recipe-explorer shopping remove <item-id>")
		}
		st.RemoveShoppingListItem(args[1])
	case "clear":
		st.ClearShoppingList()
	case "list":
		for _, item := range st.ShoppingList() {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Printf("[%s] %s  %s\n", mark, item.ID, item.Ingredient.Original)
		}
	default:
		log.Fatalf("Unknown shopping subcommand: %s", args[0])
	}
}

func runExport(application *app.App, args []string) {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	dir := exportCmd.String("dir", ".", "Directory to write shopping-list.txt into")
	exportCmd.Parse(args)

	path, err := application.ExportShoppingList(*dir)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func runCache(ctx context.Context, application *app.App, args []string) {
	cacheCmd := flag.NewFlagSet("cache", flag.ExitOnError)
	days := cacheCmd.Int("days", 7, "Remove entries older than N days")
	cacheCmd.Parse(args)

	switch cacheCmd.Arg(0) {
	case "sweep":
		removed, err := application.SweepCache(ctx, time.Duration(*days)*24*time.Hour)
		if err != nil {
			log.Fatalf("Cache sweep failed: %v", err)
		}
		fmt.Printf("Removed %d old cache entries\n", removed)
	case "", "list":
		recipes, err := application.Cache.AllCachedRecipes(ctx)
		if err != nil {
			log.Fatalf("Failed to list cache: %v", err)
		}
		for _, rec := range recipes {
			fmt.Printf("%s  %s (cached %s)\n", rec.ID, rec.Title, rec.CachedAt.Format(time.RFC3339))
		}
	case "status":
		usage := application.Cache.Usage()
		fmt.Printf("Cache size: %d bytes\n", usage.Used)
		fmt.Printf("Online: %v\n", application.Cache.IsOnline(ctx))
	case "watch":
		watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		application.Cache.SetupSyncListener(watchCtx, 30*time.Second, nil)
		fmt.Println("Watching connectivity; press Ctrl+C to stop")
		<-watchCtx.Done()
	default:
		log.Fatalf("Unknown cache subcommand: %s", cacheCmd.Arg(0))
	}
}

func printUsage() {
	fmt.Println("Usage: recipe-explorer <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  search         Search recipes (records search history)")
	fmt.Println("  show           Show full recipe detail by id")
	fmt.Println("  random         Fetch random recipes")
	fmt.Println("  similar        Fetch recipes similar to a given one")
	fmt.Println("  suggest        Find recipes by ingredients on hand")
	fmt.Println("  clip           Import a recipe from a web page")
	fmt.Println("  favorites      List, add or remove favorites")
	fmt.Println("  history        Show or clear the search history")
	fmt.Println("  recent         Show recently viewed recipes")
	fmt.Println("  plan           Manage the weekly meal plan")
	fmt.Println("  shopping       Manage the shopping list")
	fmt.Println("  export         Write shopping-list.txt")
	fmt.Println("  cache          Inspect or sweep the offline cache")
}
