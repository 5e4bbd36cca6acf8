package recipe

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshal(t *testing.T) {
	t.Run("Number", func(t *testing.T) {
		var rec Recipe
		if err := json.Unmarshal([]byte(`{"id": 716429, "title": "Pasta"}`), &rec); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.ID != "716429" {
			t.Errorf("Expected numeric id decoded as '716429', got %q", rec.ID)
		}
	})

	t.Run("String", func(t *testing.T) {
		var rec Recipe
		if err := json.Unmarshal([]byte(`{"id": "clip-abc", "title": "Clipped"}`), &rec); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.ID != "clip-abc" {
			t.Errorf("Expected string id preserved, got %q", rec.ID)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		var id ID
		if err := json.Unmarshal([]byte(`[1]`), &id); err == nil {
			t.Error("Expected an error for a non-scalar id")
		}
	})
}

func TestMealsGetSet(t *testing.T) {
	var m Meals
	rec := &Recipe{ID: "1", Title: "Omelette"}

	for _, slot := range MealSlots {
		m.Set(slot, rec)
		if got := m.Get(slot); got == nil || got.ID != "1" {
			t.Errorf("Expected recipe assigned to %s, got %v", slot, got)
		}
		m.Set(slot, nil)
		if m.Get(slot) != nil {
			t.Errorf("Expected %s cleared", slot)
		}
	}
}
