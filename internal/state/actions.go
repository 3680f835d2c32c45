package state

import "github.com/julianstephens/harmony/internal/models"

// Action is a single typed mutation. Reduce is the only place actions are
// interpreted.
type Action interface {
	actionName() string
}

// AddTask prepends a task, matching quick-add ordering.
type AddTask struct{ Task models.Task }

// AppendTasks appends tasks in order. Every ProjectRef must name an existing
// project.
type AppendTasks struct{ Tasks []models.Task }

// UpdateTask applies a field patch to one task.
type UpdateTask struct {
	ID    string
	Patch TaskPatch
}

type DeleteTask struct{ ID string }

type AddProject struct{ Project models.Project }

// DeleteProject removes a project and every task that references it.
type DeleteProject struct{ ID string }

type MarkProjectBrokenDown struct{ ID string }

// ApplyBreakdown appends a project's generated subtasks and marks it broken
// down in one step. It fails when the project no longer exists.
type ApplyBreakdown struct {
	ProjectID string
	Tasks     []models.Task
}

// ReplaceRoutine swaps the whole routine collection.
type ReplaceRoutine struct{ Items []models.RoutineItem }

type AddRoutineItem struct{ Item models.RoutineItem }

type UpdateRoutineItem struct {
	ID    string
	Patch RoutinePatch
}

type DeleteRoutineItem struct{ ID string }

// ToggleRoutineDay adds Day when absent and removes it when present.
type ToggleRoutineDay struct {
	ID  string
	Day int
}

type AddOffTime struct{ OffTime models.OffTime }

// UpdateOffTime patches an off-time. A new start date on a single-day entry
// is mirrored into its end date.
type UpdateOffTime struct {
	ID    string
	Patch OffTimePatch
}

type DeleteOffTime struct{ ID string }

type AppendChat struct{ Messages []models.ChatMessage }

type SetView struct{ View models.View }

func (AddTask) actionName() string               { return "add_task" }
func (AppendTasks) actionName() string           { return "append_tasks" }
func (UpdateTask) actionName() string            { return "update_task" }
func (DeleteTask) actionName() string            { return "delete_task" }
func (AddProject) actionName() string            { return "add_project" }
func (DeleteProject) actionName() string         { return "delete_project" }
func (MarkProjectBrokenDown) actionName() string { return "mark_project_broken_down" }
func (ApplyBreakdown) actionName() string        { return "apply_breakdown" }
func (ReplaceRoutine) actionName() string        { return "replace_routine" }
func (AddRoutineItem) actionName() string        { return "add_routine_item" }
func (UpdateRoutineItem) actionName() string     { return "update_routine_item" }
func (DeleteRoutineItem) actionName() string     { return "delete_routine_item" }
func (ToggleRoutineDay) actionName() string      { return "toggle_routine_day" }
func (AddOffTime) actionName() string            { return "add_off_time" }
func (UpdateOffTime) actionName() string         { return "update_off_time" }
func (DeleteOffTime) actionName() string         { return "delete_off_time" }
func (AppendChat) actionName() string            { return "append_chat" }
func (SetView) actionName() string               { return "set_view" }

// Name returns the action's stable identifier, used in logs.
func Name(a Action) string {
	return a.actionName()
}

// TaskPatch sets only the non-nil fields.
type TaskPatch struct {
	Title           *string
	Completed       *bool
	DurationMinutes *int
	Category        *models.Category
	Date            *string
	StartTime       *string // empty string clears the start time
}

type RoutinePatch struct {
	Label     *string
	StartTime *string
	EndTime   *string
}

type OffTimePatch struct {
	Label     *string
	StartDate *string
	EndDate   *string
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
