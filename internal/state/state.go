// Package state holds the planner's application state and the reducer that
// applies typed actions to it.
package state

import (
	"errors"
	"slices"

	"github.com/julianstephens/harmony/internal/models"
)

// ErrNotFound is returned when an action names an id that does not exist.
var ErrNotFound = errors.New("not found")

// State is the whole application state. View is session-only and never
// persisted.
type State struct {
	Tasks    []models.Task        `json:"tasks"`
	Projects []models.Project     `json:"projects"`
	Routine  []models.RoutineItem `json:"routine"`
	OffTimes []models.OffTime     `json:"offTimes"`
	Chat     []models.ChatMessage `json:"chatHistory"`
	View     models.View          `json:"-"`
}

// Clone returns a deep copy so callers never alias the store's slices.
func (s State) Clone() State {
	out := State{
		Tasks:    slices.Clone(s.Tasks),
		Projects: slices.Clone(s.Projects),
		Routine:  make([]models.RoutineItem, len(s.Routine)),
		OffTimes: slices.Clone(s.OffTimes),
		Chat:     slices.Clone(s.Chat),
		View:     s.View,
	}
	for i, r := range s.Routine {
		r.Days = slices.Clone(r.Days)
		out.Routine[i] = r
	}
	if s.Routine == nil {
		out.Routine = nil
	}
	return out
}

// Task looks up a task by id.
func (s State) Task(id string) (models.Task, bool) {
	i := slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return s.Tasks[i], true
}

// Project looks up a project by id.
func (s State) Project(id string) (models.Project, bool) {
	i := slices.IndexFunc(s.Projects, func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return models.Project{}, false
	}
	return s.Projects[i], true
}

// ProjectTasks returns the tasks whose project reference is projectID.
func (s State) ProjectTasks(projectID string) []models.Task {
	var out []models.Task
	for _, t := range s.Tasks {
		if t.ProjectRef == projectID {
			out = append(out, t)
		}
	}
	return out
}

// PendingBreakdown returns projects that have not been broken down yet, in
// their stored order.
func (s State) PendingBreakdown() []models.Project {
	var out []models.Project
	for _, p := range s.Projects {
		if !p.IsBrokenDown {
			out = append(out, p)
		}
	}
	return out
}
