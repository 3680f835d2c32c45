package tui

import (
	"slices"
	"strings"

	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

type rowKind int

const (
	rowProject rowKind = iota
	rowRoutine
	rowOffTime
)

// row is one selectable line on the projects and routine tabs.
type row struct {
	kind  rowKind
	id    string
	label string
}

func sortedRoutine(items []models.RoutineItem) []models.RoutineItem {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b models.RoutineItem) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return out
}

func (m Model) rows(st state.State) []row {
	var out []row
	switch st.View {
	case models.ViewProjects:
		for _, p := range st.Projects {
			out = append(out, row{kind: rowProject, id: p.ID, label: p.Title})
		}
	case models.ViewRoutine:
		for _, r := range sortedRoutine(st.Routine) {
			out = append(out, row{kind: rowRoutine, id: r.ID, label: r.Label})
		}
		for _, o := range st.OffTimes {
			out = append(out, row{kind: rowOffTime, id: o.ID, label: o.Label})
		}
	}
	return out
}

func (m Model) selectedRow() (row, bool) {
	rows := m.rows(m.store.Snapshot())
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}
