package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette. "glow" matches the pink aesthetic
// of the web app; "dark" is a muted terminal-friendly alternative.
type Theme struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Completed lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Surface   lipgloss.Color
	Border    lipgloss.Color
}

var themes = map[string]Theme{
	"glow": {
		Primary:   lipgloss.Color("#FF4DA6"),
		Accent:    lipgloss.Color("#FFB6D9"),
		Completed: lipgloss.Color("#95E1A3"),
		Warning:   lipgloss.Color("#FFB347"),
		Text:      lipgloss.Color("#FFFFFF"),
		TextMuted: lipgloss.Color("#AA8899"),
		Surface:   lipgloss.Color("#2e1a26"),
		Border:    lipgloss.Color("#663344"),
	},
	"dark": {
		Primary:   lipgloss.Color("#4ECDC4"),
		Accent:    lipgloss.Color("#FFE66D"),
		Completed: lipgloss.Color("#95E1A3"),
		Warning:   lipgloss.Color("#FFB347"),
		Text:      lipgloss.Color("#FFFFFF"),
		TextMuted: lipgloss.Color("#888888"),
		Surface:   lipgloss.Color("#16213e"),
		Border:    lipgloss.Color("#333333"),
	},
}

// themeByName falls back to "glow" for unknown names.
func themeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["glow"]
}

// styles holds the lipgloss styles built from a theme.
type styles struct {
	Header       lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Score        lipgloss.Style
	Streak       lipgloss.Style
	Category     lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDone     lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	Choice       lipgloss.Style
	ChoiceActive lipgloss.Style
	StatusBar    lipgloss.Style
	Help         lipgloss.Style
	Divider      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			Background(t.Primary).
			Padding(0, 2),

		TabInactive: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 2),

		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),

		Streak: lipgloss.NewStyle().
			Foreground(t.Warning),

		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			MarginTop(1),

		Item: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),

		ItemSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Background(t.Surface).
			Bold(true),

		ItemDone: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Strikethrough(true).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),

		Choice: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),

		ChoiceActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(t.Border),

		Help: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Divider: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}
