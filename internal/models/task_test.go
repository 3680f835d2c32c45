package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(TaskDraft{}, "2024-03-01")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "New Activity", task.Title)
	assert.Equal(t, 30, task.DurationMinutes)
	assert.Equal(t, CategoryPersonal, task.Category)
	assert.Equal(t, "2024-03-01", task.Date)
	assert.False(t, task.Completed)
	assert.Empty(t, task.StartTime)
	require.NoError(t, Validate(task))
}

func TestNewTaskFromDraft(t *testing.T) {
	task := NewTask(TaskDraft{
		Title:           "  Gym ",
		Date:            "2024-03-02",
		DurationMinutes: 45,
		StartTime:       "18:00",
		Category:        "work",
	}, "2024-03-01")

	assert.Equal(t, "Gym", task.Title)
	assert.Equal(t, "2024-03-02", task.Date)
	assert.Equal(t, 45, task.DurationMinutes)
	assert.Equal(t, "18:00", task.StartTime)
	assert.Equal(t, CategoryWork, task.Category)
}

func TestNewTaskUnknownCategoryFallsBack(t *testing.T) {
	task := NewTask(TaskDraft{Category: "Chores"}, "2024-03-01")
	assert.Equal(t, CategoryPersonal, task.Category)
}

func TestSortStartTime(t *testing.T) {
	assert.Equal(t, "99:99", Task{}.SortStartTime())
	assert.Equal(t, "07:15", Task{StartTime: "07:15"}.SortStartTime())
}

func TestTaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"valid", Task{ID: "1", Title: "a", DurationMinutes: 10, Category: CategoryOther, Date: "2024-01-01"}, false},
		{"bad date", Task{ID: "1", Title: "a", DurationMinutes: 10, Category: CategoryOther, Date: "01/01/2024"}, true},
		{"bad clock", Task{ID: "1", Title: "a", DurationMinutes: 10, Category: CategoryOther, Date: "2024-01-01", StartTime: "6pm"}, true},
		{"single digit hour", Task{ID: "1", Title: "a", DurationMinutes: 10, Category: CategoryOther, Date: "2024-01-01", StartTime: "6:00"}, true},
		{"zero duration", Task{ID: "1", Title: "a", Category: CategoryOther, Date: "2024-01-01"}, true},
		{"unknown category", Task{ID: "1", Title: "a", DurationMinutes: 10, Category: "Chores", Date: "2024-01-01"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.task)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
