package recipe

// MealSlot identifies one of the four planned meals of a day.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// MealSlots lists all slots in display order.
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// Meals maps each slot of a day to an optionally assigned recipe.
type Meals struct {
	Breakfast *Recipe `json:"breakfast,omitempty"`
	Lunch     *Recipe `json:"lunch,omitempty"`
	Dinner    *Recipe `json:"dinner,omitempty"`
	Snack     *Recipe `json:"snack,omitempty"`
}

// Get returns the recipe assigned to a slot, or nil.
func (m Meals) Get(slot MealSlot) *Recipe {
	switch slot {
	case SlotBreakfast:
		return m.Breakfast
	case SlotLunch:
		return m.Lunch
	case SlotDinner:
		return m.Dinner
	case SlotSnack:
		return m.Snack
	}
	return nil
}

// Set assigns a recipe to a slot.
func (m *Meals) Set(slot MealSlot, rec *Recipe) {
	switch slot {
	case SlotBreakfast:
		m.Breakfast = rec
	case SlotLunch:
		m.Lunch = rec
	case SlotDinner:
		m.Dinner = rec
	case SlotSnack:
		m.Snack = rec
	}
}

// MealPlan holds the meals assigned to a single calendar date. The date is an
// ISO date string (YYYY-MM-DD) and is unique across plans.
type MealPlan struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Meals Meals  `json:"meals"`
}

// MealPlanUpdate is a partial MealPlan; nil fields are left untouched when
// merged into an existing plan.
type MealPlanUpdate struct {
	Date  *string `json:"date,omitempty"`
	Meals *Meals  `json:"meals,omitempty"`
}
