package model

// StarterArchetypes is the read-only catalog seeded on first run.
// Users can extend the catalog with their own archetypes.
var StarterArchetypes = []Archetype{
	{
		Name:              "Disciplined Creator",
		Emoji:             "🎨",
		Description:       "Shows up for the craft every day, even badly.",
		DefaultIdentities: []string{"Creator", "Finisher"},
		TemplateHabits: []TemplateHabit{
			{Title: "Work on the current project", TwoMinuteVersion: "Open the project file"},
			{Title: "Ship one small thing", TwoMinuteVersion: "Write one sentence"},
		},
	},
	{
		Name:              "Radiant Self-Carer",
		Emoji:             "✨",
		Description:       "Treats rest and routine as non-negotiable.",
		DefaultIdentities: []string{"Glowing", "Well-Rested"},
		TemplateHabits: []TemplateHabit{
			{Title: "Full evening skincare routine", TwoMinuteVersion: "Wash your face"},
			{Title: "In bed by 23:00", TwoMinuteVersion: "Set a wind-down alarm"},
		},
	},
	{
		Name:              "Grounded Athlete",
		Emoji:             "🏃",
		Description:       "Moves daily and fuels properly.",
		DefaultIdentities: []string{"Athlete"},
		TemplateHabits: []TemplateHabit{
			{Title: "Train for 45 minutes", TwoMinuteVersion: "Put on workout clothes"},
			{Title: "Cook a real meal", TwoMinuteVersion: "Pour a glass of water"},
		},
	},
}
