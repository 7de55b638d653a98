package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/glow/internal/habit"
	"github.com/existflow/glow/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	list := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinVertical(lipgloss.Left, header, list)

	switch m.mode {
	case ModeAddTask, ModeEditTask:
		mainContent = m.placeModal(m.renderInputModal())
	case ModeFriction:
		mainContent = m.placeModal(m.renderFrictionModal())
	case ModeOnboarding:
		mainContent = m.placeModal(m.renderOnboarding())
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) placeModal(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderHeader() string {
	var tabs []string
	for _, p := range model.Pages {
		label := "🌸 Daily"
		if p == model.PageWork {
			label = "💼 Work"
		}
		if p == m.page {
			tabs = append(tabs, m.st.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.st.TabInactive.Render(label))
		}
	}

	score := m.st.Score.Render(fmt.Sprintf("✨ %d pts today", m.svc.DailyGlowScore()))
	streak := m.st.Streak.Render(fmt.Sprintf("🔥 %d day streak", m.svc.CurrentStreak(m.page)))

	left := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	right := score + "  " + streak

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderTaskList() string {
	var s strings.Builder

	if len(m.tasks) == 0 {
		if m.todayOnly {
			s.WriteString(m.st.Help.Render("\n  Nothing scheduled today. Press 't' to see the whole week."))
		} else {
			s.WriteString(m.st.Help.Render("\n  No habits yet. Press 'a' to add one, or 'b' to adopt an archetype."))
		}
		return lipgloss.NewStyle().Height(m.height - 4).Render(s.String())
	}

	lastCategory := "\x00"
	for i, t := range m.tasks {
		if t.Category != lastCategory {
			lastCategory = t.Category
			name := t.Category
			if name == "" {
				name = "Uncategorized"
			}
			s.WriteString(m.st.Category.Render(name) + "\n")
		}

		cursor := "  "
		style := m.st.Item
		if i == m.cursor {
			cursor = "❯ "
			style = m.st.ItemSelected
		}

		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
			if i != m.cursor {
				style = m.st.ItemDone
			}
		}

		when := "all day"
		if !t.Schedule.AllDay {
			when = t.Schedule.Time
		}
		days := fmt.Sprintf("%dx/wk", len(t.Weekdays))

		line := fmt.Sprintf("%s%s %s  %s  %s", cursor, icon, truncate(t.Title, m.width-30), when, days)
		s.WriteString(style.Render(line) + "\n")
	}

	return lipgloss.NewStyle().Height(m.height - 4).Render(s.String())
}

func (m Model) renderStatusBar() string {
	help := "x/enter:toggle  a:add  e:edit  d:del  t:today  tab:page  b:archetypes  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return m.st.StatusBar.Width(m.width).Render(help)
}

func (m Model) renderInputModal() string {
	title := "Add Habit"
	hint := fmt.Sprintf("Added to the %s page, every day, all day.", m.page)
	if m.mode == ModeEditTask {
		title = "Edit Habit"
		hint = "Edits the title; use the CLI to change schedule or recurrence."
	}

	content := m.st.ModalTitle.Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += m.st.Help.Render(hint) + "\n"
	content += m.st.Help.Render("Enter:save  Esc:cancel")

	return m.st.Modal.Render(content)
}

// renderFrictionModal shows the three ways out of uncompleting a
// habit. There is no fourth, silent option.
func (m Model) renderFrictionModal() string {
	modalWidth := 56

	content := m.st.ModalTitle.Render("Wait! You completed this.") + "\n\n"
	content += truncate(m.frictionTask.Title, modalWidth-8) + "\n\n"

	labels := [3]string{
		"1. I did the two-minute version",
		"2. I did it, but something got in the way",
		"3. I skipped it today",
	}
	if m.frictionTask.TwoMinuteVersion != "" {
		labels[0] = fmt.Sprintf("1. I did the two-minute version (%s)",
			truncate(m.frictionTask.TwoMinuteVersion, modalWidth-36))
	}

	for i, label := range labels {
		style := m.st.Choice
		marker := "  "
		if i == m.frictionCursor {
			style = m.st.ChoiceActive
			marker = "❯ "
		}
		content += style.Render(marker+label) + "\n"
	}

	if m.frictionReason {
		content += "\n" + m.input.View() + "\n"
	}

	content += "\n" + m.st.Help.Render("1-3/enter:choose  Esc:keep complete")
	return m.st.Modal.Width(modalWidth).Render(content)
}

func (m Model) renderOnboarding() string {
	modalWidth := 60
	archetypes := m.svc.Archetypes()

	title := "Browse Archetypes"
	if m.firstRun {
		title = "Welcome to Glow ✨"
	}
	content := m.st.ModalTitle.Render(title) + "\n"
	if m.firstRun {
		content += m.st.Help.Render("Who do you want to become? Adopt an archetype to start.") + "\n"
	}
	content += "\n"

	if len(archetypes) == 0 {
		content += m.st.Help.Render("No archetypes available.") + "\n"
	}

	for i, a := range archetypes {
		style := m.st.Choice
		marker := "  "
		if i == m.archCursor {
			style = m.st.ChoiceActive
			marker = "❯ "
		}
		content += style.Render(fmt.Sprintf("%s%s %s", marker, a.Emoji, a.Name)) + "\n"
		if i == m.archCursor {
			if a.Description != "" {
				content += m.st.Help.Render("    "+truncate(a.Description, modalWidth-10)) + "\n"
			}
			content += m.st.Help.Render(fmt.Sprintf("    %d identities, %d habits",
				len(a.DefaultIdentities), len(a.TemplateHabits))) + "\n"
		}
	}

	content += "\n" + m.st.Help.Render("↑↓:browse  Enter:adopt  s/Esc:start from scratch")
	return m.st.Modal.Width(modalWidth).Render(content)
}

func (m Model) renderHelp() string {
	help := fmt.Sprintf(`
╭──── Keyboard Shortcuts ────╮
│                            │
│  Navigation                │
│  ──────────                │
│  j/↓    Move down          │
│  k/↑    Move up            │
│  G      Go to bottom       │
│  Tab    Switch page        │
│  t      Today only         │
│                            │
│  Actions                   │
│  ───────                   │
│  x/Enter Toggle habit      │
│  a       Add habit         │
│  e       Edit habit        │
│  d       Delete habit      │
│  b       Browse archetypes │
│  R       Refresh           │
│                            │
│  Each completion is worth  │
│  %d points per identity.   │
│                            │
╰────────────────────────────╯

      Press any key to close
`, habit.PointsPerCompletion)
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
