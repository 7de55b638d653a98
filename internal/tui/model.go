package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/glow/internal/config"
	"github.com/existflow/glow/internal/habit"
	"github.com/existflow/glow/internal/logger"
	"github.com/existflow/glow/internal/model"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeOnboarding
	ModeAddTask
	ModeEditTask
	ModeFriction
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	svc *habit.Service
	st  styles

	// UI state
	width     int
	height    int
	mode      Mode
	page      model.Page
	cursor    int
	todayOnly bool
	tasks     []model.Task // current page, display order

	// Input
	input textinput.Model

	// Friction prompt state. Entering a reason is a sub-state of
	// ModeFriction with the text input focused.
	frictionTask    model.Task
	frictionCursor  int
	frictionReason  bool
	frictionChoices [3]habit.FrictionChoice

	// Archetype browser / onboarding
	archCursor int
	firstRun   bool

	message string
}

// NewModel creates a new TUI model
func NewModel(svc *habit.Service, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter habit..."
	ti.CharLimit = 256
	ti.Width = 50

	page := model.PageDaily
	if p, err := model.ParsePage(cfg.DefaultPage); err == nil {
		page = p
	}

	m := Model{
		svc:   svc,
		st:    newStyles(themeByName(cfg.Theme)),
		mode:  ModeNormal,
		page:  page,
		input: ti,
		frictionChoices: [3]habit.FrictionChoice{
			habit.FrictionTwoMinute,
			habit.FrictionCompletedWithReason,
			habit.FrictionSkipped,
		},
	}

	// A board with no identities and no habits gets the onboarding
	// wizard: pick an archetype or start from scratch.
	if len(svc.Identities()) == 0 &&
		len(svc.PageTasks(model.PageDaily)) == 0 &&
		len(svc.PageTasks(model.PageWork)) == 0 {
		m.mode = ModeOnboarding
		m.firstRun = true
	}

	m.loadData()
	logger.Debug("TUI model initialized",
		logger.F("page", m.page),
		logger.F("tasks", len(m.tasks)))
	return m
}

func (m *Model) loadData() {
	if m.todayOnly {
		m.tasks = m.svc.TodayTasks(m.page)
	} else {
		m.tasks = m.svc.PageTasks(m.page)
	}

	// Group by category, pending before done within a category, then
	// by scheduled time with all-day habits last.
	sort.SliceStable(m.tasks, func(i, j int) bool {
		t1, t2 := m.tasks[i], m.tasks[j]
		if t1.Category != t2.Category {
			return t1.Category < t2.Category
		}
		if t1.Completed != t2.Completed {
			return !t1.Completed
		}
		if t1.Schedule.AllDay != t2.Schedule.AllDay {
			return !t1.Schedule.AllDay
		}
		if t1.Schedule.Time != t2.Schedule.Time {
			return t1.Schedule.Time < t2.Schedule.Time
		}
		return t1.Title < t2.Title
	})

	if m.cursor >= len(m.tasks) {
		m.cursor = 0
	}
}

func (m *Model) currentTask() *model.Task {
	if m.cursor < len(m.tasks) {
		return &m.tasks[m.cursor]
	}
	return nil
}
