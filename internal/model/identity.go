package model

import "time"

// Identity is a self-concept the user is reinforcing. Completions of
// tasks tagged with an identity accrue score for it.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateHabit is a starter habit bundled in an archetype.
type TemplateHabit struct {
	Title            string `json:"title"`
	TwoMinuteVersion string `json:"two_minute_version,omitempty"`
}

// Archetype is a reusable template bundling identities and starter
// habits. Catalog entries are read-only; users may add their own.
type Archetype struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Emoji             string          `json:"emoji"`
	Description       string          `json:"description"`
	DefaultIdentities []string        `json:"default_identities"`
	TemplateHabits    []TemplateHabit `json:"template_habits"`
	CreatedAt         time.Time       `json:"created_at"`
}
