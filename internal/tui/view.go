package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
	"github.com/julianstephens/harmony/internal/views"
)

var tabTitles = map[models.View]string{
	models.ViewDashboard: "Dashboard",
	models.ViewFocus:     "Focus",
	models.ViewProjects:  "Projects",
	models.ViewRoutine:   "Routine",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.store.Snapshot()
	var content string

	switch m.state {
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete(st)
	default:
		switch st.View {
		case models.ViewFocus:
			content = m.viewFocus(st)
		case models.ViewProjects:
			content = m.viewProjects(st)
		case models.ViewRoutine:
			content = m.viewRoutine(st)
		default:
			content = m.viewDashboard(st)
		}
	}

	parts := []string{m.viewTabs(st.View), content}
	if m.state == StateChat || m.chatTyping() {
		parts = append(parts, chatBorderStyle.Render(m.chat.View()))
	}
	if line := m.viewStatus(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs(current models.View) string {
	var tabs []string
	for _, v := range models.Views {
		if v == current {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[v]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[v]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return mutedStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewDashboard(st state.State) string {
	now := m.now()
	next := "nothing else scheduled today"
	if t := views.NextPriority(st.Tasks, now); t != nil {
		next = fmt.Sprintf("%s at %s (%s)", t.Title, t.StartTime, models.FormatDuration(t.DurationMinutes))
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Next up:")+" "+next,
		mutedStyle.Render(fmt.Sprintf("Today's volume: %d task(s)", views.TodayVolume(st.Tasks, now))),
	)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.taskList.View()))
}

func (m Model) viewFocus(st state.State) string {
	var days []string
	for i, d := range m.strip() {
		label := d[8:]
		if d == m.today() {
			label = "•" + label
		}
		if i == m.focusDay {
			days = append(days, focusedDayStyle.Render(label))
		} else {
			days = append(days, dayStyle.Render(label))
		}
	}

	day := m.focusedDate()
	plan := views.Workloads(st.Tasks, st.Projects, day)
	var groups []string
	for _, w := range plan.Workloads {
		groups = append(groups, fmt.Sprintf("%s (%d)", w.ProjectTitle, len(w.Tasks)))
	}

	var busy []string
	for _, o := range views.OffTimesOn(st.OffTimes, day) {
		busy = append(busy, warningStyle.Render("Off: "+o.Label))
	}
	for _, r := range views.RoutineOn(st.Routine, day) {
		busy = append(busy, mutedStyle.Render(fmt.Sprintf("Busy %s-%s: %s", r.StartTime, r.EndTime, r.Label)))
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, days...),
		"",
		headingStyle.Render(plan.Label),
	}
	if len(groups) > 0 {
		lines = append(lines, mutedStyle.Render(strings.Join(groups, " · ")))
	}
	lines = append(lines, busy...)
	lines = append(lines, m.focusList.View())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewProjects(st state.State) string {
	if len(st.Projects) == 0 {
		return docStyle.Render("No projects yet.\nPress 'a' to add one.")
	}
	var b strings.Builder
	for i, p := range st.Projects {
		tasks := st.ProjectTasks(p.ID)
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}

		status := "not broken down"
		switch {
		case m.breakingDown(p.ID):
			status = m.spinner.View() + " breaking down..."
		case p.IsBrokenDown:
			status = fmt.Sprintf("%d/%d done", done, len(tasks))
		}

		line := fmt.Sprintf("%s  %s → %s  %s", p.Title, p.StartDate, p.Deadline, mutedStyle.Render(status))
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		if p.Description != "" {
			b.WriteString("    " + mutedStyle.Render(p.Description) + "\n")
		}
	}
	return docStyle.Render(b.String())
}

func (m Model) viewRoutine(st state.State) string {
	var b strings.Builder
	if m.routineLoading() {
		b.WriteString(m.spinner.View() + " Generating routine...\n\n")
	}

	b.WriteString(headingStyle.Render("Weekly routine") + "\n")
	items := sortedRoutine(st.Routine)
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("  No routine yet. Press 'g' to describe your week.") + "\n")
	}
	for i, r := range items {
		line := fmt.Sprintf("%s-%s  %s  %s", r.StartTime, r.EndTime, r.DayLetters(), r.Label)
		b.WriteString(cursorLine(i == m.cursor, line) + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Off-times") + "\n")
	if len(st.OffTimes) == 0 {
		b.WriteString(mutedStyle.Render("  None. Press 'o' to add one.") + "\n")
	}
	for i, o := range st.OffTimes {
		line := fmt.Sprintf("%s  %s", o.Label, describeOffTime(o))
		b.WriteString(cursorLine(len(items)+i == m.cursor, line) + "\n")
	}
	return docStyle.Render(b.String())
}

func cursorLine(selected bool, line string) string {
	if selected {
		return selectedStyle.Render("> ") + line
	}
	return "  " + line
}

func describeOffTime(o models.OffTime) string {
	switch o.Kind {
	case models.OffTimeWeekend:
		return mutedStyle.Render("every Saturday and Sunday")
	case models.OffTimeSingle:
		return mutedStyle.Render(o.StartDate)
	default:
		return mutedStyle.Render(o.StartDate + " → " + o.EndDate)
	}
}

func (m Model) viewConfirmDelete(st state.State) string {
	n := len(st.ProjectTasks(m.deleteTarget.id))
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and its %d task(s)?", m.deleteTarget.label, n)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
