// Package views derives the dashboard, focus and schedule task sets from
// state. Every function here is pure.
package views

import (
	"cmp"
	"slices"
	"time"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
)

// GeneralWorkload labels tasks that belong to no project.
const GeneralWorkload = "General"

func byStartTime(a, b models.Task) int {
	return cmp.Compare(a.SortStartTime(), b.SortStartTime())
}

// DashboardTasks returns today's and tomorrow's tasks ordered by date, then
// start time. Unscheduled tasks sort last within their day.
func DashboardTasks(tasks []models.Task, now time.Time) []models.Task {
	today := now.Format(constants.DateFormat)
	tomorrow := now.AddDate(0, 0, 1).Format(constants.DateFormat)

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Date == today || t.Date == tomorrow {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Task) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return byStartTime(a, b)
	})
	return out
}

// NextPriority returns the earliest incomplete task today that starts strictly
// after now, or nil when nothing qualifies.
func NextPriority(tasks []models.Task, now time.Time) *models.Task {
	today := now.Format(constants.DateFormat)
	clock := now.Format(constants.TimeFormat)

	var next *models.Task
	for i := range tasks {
		t := tasks[i]
		if t.Date != today || t.Completed || !t.HasStartTime() || t.StartTime <= clock {
			continue
		}
		if next == nil || t.StartTime < next.StartTime {
			next = &t
		}
	}
	return next
}

// FocusedDayTasks returns the tasks dated day ordered by start time.
func FocusedDayTasks(tasks []models.Task, day string) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Date == day {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, byStartTime)
	return out
}

// TodayVolume counts today's tasks, completed or not.
func TodayVolume(tasks []models.Task, now time.Time) int {
	today := now.Format(constants.DateFormat)
	n := 0
	for _, t := range tasks {
		if t.Date == today {
			n++
		}
	}
	return n
}

// FocusStrip returns n consecutive dates starting yesterday.
func FocusStrip(now time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, now.AddDate(0, 0, i-1).Format(constants.DateFormat))
	}
	return days
}

// Workloads groups the tasks dated day under their project's title. Groups
// follow the project order; tasks without a known project come last under
// GeneralWorkload.
func Workloads(tasks []models.Task, projects []models.Project, day string) models.DayPlan {
	plan := models.DayPlan{ID: day, Date: day, Label: dayLabel(day)}

	dayTasks := FocusedDayTasks(tasks, day)
	grouped := make(map[string][]models.Task)
	for _, t := range dayTasks {
		grouped[t.ProjectRef] = append(grouped[t.ProjectRef], t)
	}

	for _, p := range projects {
		if ts, ok := grouped[p.ID]; ok {
			plan.Workloads = append(plan.Workloads, models.Workload{ProjectTitle: p.Title, Tasks: ts})
			delete(grouped, p.ID)
		}
	}

	var general []models.Task
	for _, t := range dayTasks {
		if _, orphan := grouped[t.ProjectRef]; orphan {
			general = append(general, t)
		}
	}
	if len(general) > 0 {
		plan.Workloads = append(plan.Workloads, models.Workload{ProjectTitle: GeneralWorkload, Tasks: general})
	}
	return plan
}

func dayLabel(day string) string {
	d, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return day
	}
	return d.Format("Monday, January 2")
}

// RoutineOn returns the routine items recurring on day's weekday, earliest
// first.
func RoutineOn(routine []models.RoutineItem, day string) []models.RoutineItem {
	d, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return nil
	}
	var out []models.RoutineItem
	for _, r := range routine {
		if r.OnWeekday(d.Weekday()) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.RoutineItem) int { return cmp.Compare(a.StartTime, b.StartTime) })
	return out
}

// OffTimesOn returns the off-times covering day. Weekend entries cover every
// Saturday and Sunday; single entries cover only their start date.
func OffTimesOn(offTimes []models.OffTime, day string) []models.OffTime {
	d, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return nil
	}
	var out []models.OffTime
	for _, o := range offTimes {
		switch o.Kind {
		case models.OffTimeWeekend:
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				out = append(out, o)
			}
		case models.OffTimeSingle:
			if o.StartDate == day {
				out = append(out, o)
			}
		case models.OffTimeRange:
			if o.StartDate <= day && day <= o.EndDate {
				out = append(out, o)
			}
		}
	}
	return out
}
