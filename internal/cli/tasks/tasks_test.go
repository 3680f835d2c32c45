package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/harmony/internal/cli/clitest"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

func seeded() state.State {
	return state.State{
		Tasks: []models.Task{
			{ID: "aaaa1111-0000", Title: "Write report", DurationMinutes: 60, Category: models.CategoryWork, Date: "2024-01-01", StartTime: "10:00"},
			{ID: "bbbb2222-0000", Title: "Gym", DurationMinutes: 45, Category: models.CategoryPersonal, Date: "2024-01-02", ProjectRef: "p1"},
		},
		Projects: []models.Project{{ID: "p1", Title: "Fitness", StartDate: "2024-01-01", Deadline: "2024-01-31"}},
	}
}

func TestTaskAddDefaults(t *testing.T) {
	env := clitest.New(t)

	cmd := &TaskAddCmd{Duration: 30, Category: "Personal"}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(env.Ctx))

	saved := env.Saved(t)
	require.Len(t, saved.Tasks, 1)
	task := saved.Tasks[0]
	assert.Equal(t, "New Activity", task.Title)
	assert.Equal(t, 30, task.DurationMinutes)
	assert.Equal(t, models.CategoryPersonal, task.Category)
	assert.Equal(t, "2024-01-01", task.Date)
	assert.Contains(t, env.Out.String(), "Added task: New Activity")
}

func TestTaskAddPrependsWithFields(t *testing.T) {
	env := clitest.New(t, seeded())

	cmd := &TaskAddCmd{Title: "Dentist", Date: "tomorrow", Duration: 60, Start: "14:30", Category: "other"}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(env.Ctx))

	saved := env.Saved(t)
	require.Len(t, saved.Tasks, 3)
	assert.Equal(t, "Dentist", saved.Tasks[0].Title)
	assert.Equal(t, "2024-01-02", saved.Tasks[0].Date)
	assert.Equal(t, "14:30", saved.Tasks[0].StartTime)
	assert.Equal(t, models.CategoryOther, saved.Tasks[0].Category)
}

func TestTaskAddValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  TaskAddCmd
	}{
		{"zero duration", TaskAddCmd{Duration: 0, Category: "Work"}},
		{"bad start", TaskAddCmd{Duration: 30, Start: "25:00", Category: "Work"}},
		{"bad category", TaskAddCmd{Duration: 30, Category: "Chores"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cmd.Validate())
		})
	}
}

func TestTaskListFilters(t *testing.T) {
	env := clitest.New(t, seeded())

	require.NoError(t, (&TaskListCmd{Date: "today"}).Run(env.Ctx))
	out := env.Out.String()
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Gym")

	env.Out.Reset()
	require.NoError(t, (&TaskListCmd{Project: "p1"}).Run(env.Ctx))
	out = env.Out.String()
	assert.Contains(t, out, "Gym")
	assert.NotContains(t, out, "Write report")

	env.Out.Reset()
	require.NoError(t, (&TaskListCmd{Date: "2030-01-01"}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "No tasks found.")
}

func TestTaskEdit(t *testing.T) {
	env := clitest.New(t, seeded())

	title := "Final report"
	duration := 100
	cmd := &TaskEditCmd{ID: "aaaa", Title: &title, Duration: &duration, ClearStart: true}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(env.Ctx))

	task, ok := env.Saved(t).Task("aaaa1111-0000")
	require.True(t, ok)
	assert.Equal(t, "Final report", task.Title)
	assert.Equal(t, 105, task.DurationMinutes)
	assert.False(t, task.HasStartTime())
}

func TestTaskEditRequiresAField(t *testing.T) {
	env := clitest.New(t, seeded())
	assert.Error(t, (&TaskEditCmd{ID: "aaaa"}).Run(env.Ctx))
}

func TestTaskDoneToggles(t *testing.T) {
	env := clitest.New(t, seeded())

	require.NoError(t, (&TaskDoneCmd{ID: "bbbb"}).Run(env.Ctx))
	task, _ := env.Saved(t).Task("bbbb2222-0000")
	assert.True(t, task.Completed)

	require.NoError(t, (&TaskDoneCmd{ID: "bbbb"}).Run(env.Ctx))
	task, _ = env.Saved(t).Task("bbbb2222-0000")
	assert.False(t, task.Completed)
	assert.Contains(t, env.Out.String(), "Reopened: Gym")
}

func TestTaskDelete(t *testing.T) {
	env := clitest.New(t, seeded())

	require.NoError(t, (&TaskDeleteCmd{ID: "aaaa"}).Run(env.Ctx))
	saved := env.Saved(t)
	require.Len(t, saved.Tasks, 1)
	assert.Equal(t, "Gym", saved.Tasks[0].Title)

	err := (&TaskDeleteCmd{ID: "zzzz"}).Run(env.Ctx)
	assert.ErrorIs(t, err, state.ErrNotFound)
}
