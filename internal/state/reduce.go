package state

import (
	"fmt"
	"slices"

	"github.com/julianstephens/harmony/internal/models"
)

// Reduce applies a to s and returns the new state. s itself is never
// modified; on error the returned state is the zero value and callers keep s.
func Reduce(s State, a Action) (State, error) {
	next := s.Clone()

	switch a := a.(type) {
	case AddTask:
		if err := checkNewTasks(next, []models.Task{a.Task}); err != nil {
			return State{}, err
		}
		next.Tasks = append([]models.Task{a.Task}, next.Tasks...)

	case AppendTasks:
		if err := checkNewTasks(next, a.Tasks); err != nil {
			return State{}, err
		}
		next.Tasks = append(next.Tasks, a.Tasks...)

	case UpdateTask:
		i := slices.IndexFunc(next.Tasks, func(t models.Task) bool { return t.ID == a.ID })
		if i < 0 {
			return State{}, fmt.Errorf("task %s: %w", a.ID, ErrNotFound)
		}
		t := applyTaskPatch(next.Tasks[i], a.Patch)
		if err := models.Validate(t); err != nil {
			return State{}, err
		}
		next.Tasks[i] = t

	case DeleteTask:
		n := len(next.Tasks)
		next.Tasks = slices.DeleteFunc(next.Tasks, func(t models.Task) bool { return t.ID == a.ID })
		if len(next.Tasks) == n {
			return State{}, fmt.Errorf("task %s: %w", a.ID, ErrNotFound)
		}

	case AddProject:
		if err := models.Validate(a.Project); err != nil {
			return State{}, err
		}
		next.Projects = append(next.Projects, a.Project)

	case DeleteProject:
		n := len(next.Projects)
		next.Projects = slices.DeleteFunc(next.Projects, func(p models.Project) bool { return p.ID == a.ID })
		if len(next.Projects) == n {
			return State{}, fmt.Errorf("project %s: %w", a.ID, ErrNotFound)
		}
		next.Tasks = slices.DeleteFunc(next.Tasks, func(t models.Task) bool { return t.ProjectRef == a.ID })

	case MarkProjectBrokenDown:
		i := slices.IndexFunc(next.Projects, func(p models.Project) bool { return p.ID == a.ID })
		if i < 0 {
			return State{}, fmt.Errorf("project %s: %w", a.ID, ErrNotFound)
		}
		next.Projects[i].IsBrokenDown = true

	case ApplyBreakdown:
		i := slices.IndexFunc(next.Projects, func(p models.Project) bool { return p.ID == a.ProjectID })
		if i < 0 {
			return State{}, fmt.Errorf("project %s: %w", a.ProjectID, ErrNotFound)
		}
		for _, t := range a.Tasks {
			if t.ProjectRef != a.ProjectID {
				return State{}, fmt.Errorf("subtask %q belongs to project %q, not %s", t.Title, t.ProjectRef, a.ProjectID)
			}
		}
		if err := checkNewTasks(next, a.Tasks); err != nil {
			return State{}, err
		}
		next.Tasks = append(next.Tasks, a.Tasks...)
		next.Projects[i].IsBrokenDown = true

	case ReplaceRoutine:
		items := make([]models.RoutineItem, len(a.Items))
		for i, r := range a.Items {
			r.Days = models.NormalizeDays(r.Days)
			if err := models.Validate(r); err != nil {
				return State{}, err
			}
			items[i] = r
		}
		next.Routine = items

	case AddRoutineItem:
		r := a.Item
		r.Days = models.NormalizeDays(r.Days)
		if err := models.Validate(r); err != nil {
			return State{}, err
		}
		next.Routine = append(next.Routine, r)

	case UpdateRoutineItem:
		i := slices.IndexFunc(next.Routine, func(r models.RoutineItem) bool { return r.ID == a.ID })
		if i < 0 {
			return State{}, fmt.Errorf("routine item %s: %w", a.ID, ErrNotFound)
		}
		r := next.Routine[i]
		if a.Patch.Label != nil {
			r.Label = *a.Patch.Label
		}
		if a.Patch.StartTime != nil {
			r.StartTime = *a.Patch.StartTime
		}
		if a.Patch.EndTime != nil {
			r.EndTime = *a.Patch.EndTime
		}
		if err := models.Validate(r); err != nil {
			return State{}, err
		}
		next.Routine[i] = r

	case DeleteRoutineItem:
		n := len(next.Routine)
		next.Routine = slices.DeleteFunc(next.Routine, func(r models.RoutineItem) bool { return r.ID == a.ID })
		if len(next.Routine) == n {
			return State{}, fmt.Errorf("routine item %s: %w", a.ID, ErrNotFound)
		}

	case ToggleRoutineDay:
		if a.Day < 0 || a.Day > 6 {
			return State{}, fmt.Errorf("weekday %d out of range 0-6", a.Day)
		}
		i := slices.IndexFunc(next.Routine, func(r models.RoutineItem) bool { return r.ID == a.ID })
		if i < 0 {
			return State{}, fmt.Errorf("routine item %s: %w", a.ID, ErrNotFound)
		}
		next.Routine[i].Days = toggleDay(next.Routine[i].Days, a.Day)

	case AddOffTime:
		if err := models.Validate(a.OffTime); err != nil {
			return State{}, err
		}
		next.OffTimes = append(next.OffTimes, a.OffTime)

	case UpdateOffTime:
		i := slices.IndexFunc(next.OffTimes, func(o models.OffTime) bool { return o.ID == a.ID })
		if i < 0 {
			return State{}, fmt.Errorf("off-time %s: %w", a.ID, ErrNotFound)
		}
		o := applyOffTimePatch(next.OffTimes[i], a.Patch)
		if err := models.Validate(o); err != nil {
			return State{}, err
		}
		next.OffTimes[i] = o

	case DeleteOffTime:
		n := len(next.OffTimes)
		next.OffTimes = slices.DeleteFunc(next.OffTimes, func(o models.OffTime) bool { return o.ID == a.ID })
		if len(next.OffTimes) == n {
			return State{}, fmt.Errorf("off-time %s: %w", a.ID, ErrNotFound)
		}

	case AppendChat:
		next.Chat = append(next.Chat, a.Messages...)

	case SetView:
		if !slices.Contains(models.Views, a.View) {
			return State{}, fmt.Errorf("unknown view %q", a.View)
		}
		next.View = a.View

	default:
		return State{}, fmt.Errorf("unsupported action %T", a)
	}

	return next, nil
}

// checkNewTasks validates tasks and rejects references to missing projects,
// which would survive a cascade delete.
func checkNewTasks(s State, tasks []models.Task) error {
	for _, t := range tasks {
		if err := models.Validate(t); err != nil {
			return err
		}
		if t.ProjectRef == "" {
			continue
		}
		if _, ok := s.Project(t.ProjectRef); !ok {
			return fmt.Errorf("task %q references project %s: %w", t.Title, t.ProjectRef, ErrNotFound)
		}
	}
	return nil
}

func applyTaskPatch(t models.Task, p TaskPatch) models.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	return t
}

func applyOffTimePatch(o models.OffTime, p OffTimePatch) models.OffTime {
	if p.Label != nil {
		o.Label = *p.Label
	}
	if p.EndDate != nil {
		o.EndDate = *p.EndDate
	}
	if p.StartDate != nil {
		o.StartDate = *p.StartDate
		if o.Kind == models.OffTimeSingle {
			o.EndDate = *p.StartDate
		}
	}
	return o
}

// toggleDay returns a fresh ascending, duplicate-free day set.
func toggleDay(days []int, day int) []int {
	if slices.Contains(days, day) {
		return models.NormalizeDays(slices.DeleteFunc(slices.Clone(days), func(d int) bool { return d == day }))
	}
	return models.NormalizeDays(append(slices.Clone(days), day))
}
