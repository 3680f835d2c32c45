package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/models"
)

var now = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func tk(id, date, start string) models.Task {
	return models.Task{ID: id, Title: id, DurationMinutes: 30, Category: models.CategoryWork, Date: date, StartTime: start}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestDashboardTasks(t *testing.T) {
	tasks := []models.Task{
		tk("tomorrow-early", "2024-03-11", "08:00"),
		tk("today-none", "2024-03-10", ""),
		tk("yesterday", "2024-03-09", "09:00"),
		tk("today-late", "2024-03-10", "18:00"),
		tk("today-early", "2024-03-10", "07:15"),
		tk("tomorrow-none", "2024-03-11", ""),
		tk("later", "2024-03-12", "09:00"),
	}

	got := DashboardTasks(tasks, now)
	assert.Equal(t, []string{"today-early", "today-late", "today-none", "tomorrow-early", "tomorrow-none"}, ids(got))
}

func TestDashboardTasksStable(t *testing.T) {
	tasks := []models.Task{
		tk("a", "2024-03-10", ""),
		tk("b", "2024-03-10", "10:00"),
		tk("c", "2024-03-10", ""),
		tk("d", "2024-03-10", "10:00"),
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(DashboardTasks(tasks, now)))
}

func TestNextPriority(t *testing.T) {
	done := tk("done", "2024-03-10", "15:00")
	done.Completed = true

	tests := []struct {
		name  string
		tasks []models.Task
		want  string
	}{
		{"none", nil, ""},
		{"only past", []models.Task{tk("past", "2024-03-10", "09:00")}, ""},
		{"equal to now is not later", []models.Task{tk("now", "2024-03-10", "14:30")}, ""},
		{"skips completed and unscheduled", []models.Task{done, tk("open", "2024-03-10", ""), tk("next", "2024-03-10", "16:00")}, "next"},
		{"earliest wins", []models.Task{tk("b", "2024-03-10", "20:00"), tk("a", "2024-03-10", "14:31")}, "a"},
		{"ignores tomorrow", []models.Task{tk("tmrw", "2024-03-11", "15:00")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPriority(tt.tasks, now)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestFocusedDayTasks(t *testing.T) {
	tasks := []models.Task{
		tk("none", "2024-03-12", ""),
		tk("late", "2024-03-12", "21:00"),
		tk("other", "2024-03-13", "08:00"),
		tk("early", "2024-03-12", "06:00"),
	}
	assert.Equal(t, []string{"early", "late", "none"}, ids(FocusedDayTasks(tasks, "2024-03-12")))
	assert.Empty(t, FocusedDayTasks(tasks, "2024-01-01"))
}

func TestTodayVolume(t *testing.T) {
	done := tk("done", "2024-03-10", "")
	done.Completed = true
	tasks := []models.Task{done, tk("a", "2024-03-10", "10:00"), tk("b", "2024-03-11", "")}
	assert.Equal(t, 2, TodayVolume(tasks, now))
}

func TestFocusStrip(t *testing.T) {
	days := FocusStrip(now, 15)
	require.Len(t, days, 15)
	assert.Equal(t, "2024-03-09", days[0])
	assert.Equal(t, "2024-03-10", days[1])
	assert.Equal(t, "2024-03-23", days[14])
}

func TestWorkloads(t *testing.T) {
	projects := []models.Project{{ID: "p1", Title: "Thesis"}, {ID: "p2", Title: "Move"}}
	a := tk("a", "2024-03-10", "10:00")
	a.ProjectRef = "p2"
	b := tk("b", "2024-03-10", "09:00")
	b.ProjectRef = "p1"
	c := tk("c", "2024-03-10", "")
	d := tk("d", "2024-03-10", "08:00")
	d.ProjectRef = "gone"

	plan := Workloads([]models.Task{a, b, c, d, tk("x", "2024-03-11", "")}, projects, "2024-03-10")
	assert.Equal(t, "Sunday, March 10", plan.Label)
	require.Len(t, plan.Workloads, 3)
	assert.Equal(t, "Thesis", plan.Workloads[0].ProjectTitle)
	assert.Equal(t, "Move", plan.Workloads[1].ProjectTitle)
	assert.Equal(t, GeneralWorkload, plan.Workloads[2].ProjectTitle)
	assert.Equal(t, []string{"d", "c"}, ids(plan.Workloads[2].Tasks))
	assert.Equal(t, 4, plan.TaskCount())
}

func TestRoutineOn(t *testing.T) {
	routine := []models.RoutineItem{
		{ID: "late", StartTime: "18:00", Days: []int{0, 6}},
		{ID: "work", StartTime: "09:00", Days: []int{1, 2, 3, 4, 5}},
		{ID: "early", StartTime: "07:00", Days: []int{0}},
	}
	// 2024-03-10 is a Sunday
	got := RoutineOn(routine, "2024-03-10")
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
	assert.Nil(t, RoutineOn(routine, "not-a-date"))
}

func TestOffTimesOn(t *testing.T) {
	offTimes := []models.OffTime{
		{ID: "weekend", Kind: models.OffTimeWeekend, StartDate: "2024-01-01", EndDate: "2024-01-01"},
		{ID: "single", Kind: models.OffTimeSingle, StartDate: "2024-03-11", EndDate: "2024-03-11"},
		{ID: "range", Kind: models.OffTimeRange, StartDate: "2024-03-08", EndDate: "2024-03-11"},
	}
	tests := []struct {
		day  string
		want []string
	}{
		{"2024-03-10", []string{"weekend", "range"}},
		{"2024-03-11", []string{"single", "range"}},
		{"2024-03-12", nil},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			var got []string
			for _, o := range OffTimesOn(offTimes, tt.day) {
				got = append(got, o.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
