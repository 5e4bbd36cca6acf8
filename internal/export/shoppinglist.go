// Package export renders the shopping list as a downloadable plain-text
// document.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AtharvaYadav-dev/Recipe-Explorers/internal/recipe"
)

// FileName is the fixed name of the exported document.
const FileName = "shopping-list.txt"

// ShoppingListText renders the original descriptor of every unchecked item,
// one per line.
func ShoppingListText(items []recipe.ShoppingListItem) string {
	var lines []string
	for _, item := range items {
		if item.Checked {
			continue
		}
		lines = append(lines, item.Ingredient.Original)
	}
	return strings.Join(lines, "\n")
}

// WriteShoppingList writes the rendered list into dir and returns the full
// path of the written file.
func WriteShoppingList(dir string, items []recipe.ShoppingListItem) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(ShoppingListText(items)), 0644); err != nil {
		return "", fmt.Errorf("failed to write shopping list: %w", err)
	}
	return path, nil
}
