package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/glow/internal/habit"
	"github.com/existflow/glow/internal/model"
)

// tickMsg is sent every minute so the day can roll over while the TUI
// stays open.
type tickMsg time.Time

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.loadData()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeEditTask:
			return m.updateInput(msg)
		case ModeFriction:
			return m.updateFriction(msg)
		case ModeOnboarding:
			return m.updateOnboarding(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.page == model.PageDaily {
			m.page = model.PageWork
		} else {
			m.page = model.PageDaily
		}
		m.cursor = 0
		m.loadData()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case msg.String() == "G":
		if len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}

	case key.Matches(msg, keys.TodayOnly):
		m.todayOnly = !m.todayOnly
		m.cursor = 0
		m.loadData()
		if m.todayOnly {
			m.message = "Showing today's habits"
		} else {
			m.message = "Showing the whole week"
		}

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Edit):
		return m.startEditTask()

	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		return m.handleToggle()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Archetypes):
		m.mode = ModeOnboarding
		m.firstRun = false
		m.archCursor = 0

	case key.Matches(msg, keys.Refresh):
		if err := m.svc.Refresh(context.Background()); err != nil {
			m.message = fmt.Sprintf("Refresh error: %v", err)
		} else {
			m.message = "Refreshed"
		}
		m.loadData()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTask
	m.input.SetValue("")
	m.input.Placeholder = "Enter habit..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startEditTask() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	m.mode = ModeEditTask
	m.input.SetValue(task.Title)
	m.input.Placeholder = "Edit habit..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

// handleToggle completes a pending habit directly. For a completed
// habit it opens the friction prompt instead; nothing changes until
// the prompt is resolved.
func (m Model) handleToggle() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}

	res, err := m.svc.Toggle(context.Background(), task.ID)
	if err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	if res.Friction != nil {
		m.mode = ModeFriction
		m.frictionTask = res.Friction.Task
		m.frictionCursor = 0
		m.frictionReason = false
		m.input.SetValue("")
		return m, nil
	}

	m.message = fmt.Sprintf("Done! Glow score: %d", m.svc.DailyGlowScore())
	m.loadData()
	return m, nil
}

func (m *Model) handleDelete() {
	task := m.currentTask()
	if task == nil {
		return
	}
	if err := m.svc.DeleteTask(context.Background(), task.ID); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.message = fmt.Sprintf("Deleted: %s", task.Title)
	m.loadData()
	if m.cursor >= len(m.tasks) && m.cursor > 0 {
		m.cursor--
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		if value == "" {
			m.mode = ModeNormal
			return m, nil
		}

		switch m.mode {
		case ModeAddTask:
			_, err := m.svc.CreateTask(context.Background(), habit.NewTaskInput{
				Title:      value,
				Page:       m.page,
				Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
				Schedule:   model.AllDay(),
			})
			if err != nil {
				m.message = fmt.Sprintf("Error adding habit: %v", err)
			} else {
				m.message = fmt.Sprintf("Added: %s", value)
			}
		case ModeEditTask:
			task := m.currentTask()
			if task != nil {
				updated := *task
				updated.Title = value
				if err := m.svc.UpdateTask(context.Background(), updated); err != nil {
					m.message = fmt.Sprintf("Error: %v", err)
				} else {
					m.message = fmt.Sprintf("Updated: %s", value)
				}
			}
		}

		m.loadData()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateFriction drives the three-way prompt for uncompleting a habit.
// Escape abandons the prompt and the habit stays complete.
func (m Model) updateFriction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.frictionReason {
		switch {
		case key.Matches(msg, keys.Escape):
			m.frictionReason = false
			return m, nil
		case key.Matches(msg, keys.Enter):
			choice := m.frictionChoices[m.frictionCursor]
			reason := m.input.Value()
			if choice == habit.FrictionCompletedWithReason && reason == "" {
				m.message = "A reason is required"
				return m, nil
			}
			return m.resolveFriction(choice, reason)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.message = "Kept as complete"
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.frictionCursor > 0 {
			m.frictionCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.frictionCursor < 2 {
			m.frictionCursor++
		}

	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		m.frictionCursor = int(msg.String()[0] - '1')
		return m.pickFrictionChoice()

	case key.Matches(msg, keys.Enter):
		return m.pickFrictionChoice()
	}
	return m, nil
}

func (m Model) pickFrictionChoice() (tea.Model, tea.Cmd) {
	choice := m.frictionChoices[m.frictionCursor]
	if choice == habit.FrictionCompletedWithReason || choice == habit.FrictionSkipped {
		// Both take a free-text note; only the reason variant
		// requires one.
		m.frictionReason = true
		m.input.SetValue("")
		if choice == habit.FrictionCompletedWithReason {
			m.input.Placeholder = "What got in the way?"
		} else {
			m.input.Placeholder = "Note (optional)..."
		}
		m.input.Focus()
		return m, textinput.Blink
	}
	return m.resolveFriction(choice, "")
}

func (m Model) resolveFriction(choice habit.FrictionChoice, reason string) (tea.Model, tea.Cmd) {
	err := m.svc.ResolveFriction(context.Background(), m.frictionTask.ID, choice, reason)
	if err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		m.mode = ModeNormal
		return m, nil
	}

	switch choice {
	case habit.FrictionTwoMinute:
		m.message = "Two-minute version counts. Still glowing ✨"
	case habit.FrictionCompletedWithReason:
		m.message = "Reason recorded, habit stays complete"
	case habit.FrictionSkipped:
		m.message = "Skipped today. Tomorrow is a new day"
	}
	m.mode = ModeNormal
	m.frictionReason = false
	m.loadData()
	return m, nil
}

// updateOnboarding drives the archetype browser, which doubles as the
// first-run wizard.
func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	archetypes := m.svc.Archetypes()

	switch {
	case key.Matches(msg, keys.Quit):
		if m.firstRun {
			return m, tea.Quit
		}
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Escape), msg.String() == "s":
		m.mode = ModeNormal
		m.firstRun = false
		m.message = "Starting from scratch. Press 'a' to add your first habit."
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.archCursor > 0 {
			m.archCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.archCursor < len(archetypes)-1 {
			m.archCursor++
		}

	case key.Matches(msg, keys.Enter):
		if m.archCursor >= len(archetypes) {
			return m, nil
		}
		arch := archetypes[m.archCursor]
		res, err := m.svc.AdoptArchetype(context.Background(), arch.ID)
		if err != nil {
			m.message = fmt.Sprintf("Error adopting %s: %v", arch.Name, err)
			return m, nil
		}
		m.message = fmt.Sprintf("Adopted %s %s: %d identities, %d habits",
			arch.Emoji, arch.Name, len(res.Identities), len(res.Tasks))
		m.mode = ModeNormal
		m.firstRun = false
		m.page = model.PageDaily
		m.loadData()
		return m, nil
	}
	return m, nil
}
