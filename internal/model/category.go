package model

import "time"

// Category is a user-defined label grouping tasks on a page.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// StarterCategories are seeded on first run, matching the sections of
// the original Glow routine.
var StarterCategories = []Category{
	{Name: "Beauty Routine", Emoji: "💄"},
	{Name: "Vitamins", Emoji: "💊"},
	{Name: "Meals", Emoji: "🥗"},
}
