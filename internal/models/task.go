package models

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/harmony/internal/constants"
)

type Category string

const (
	CategoryWork     Category = "Work"
	CategorySchool   Category = "School"
	CategoryPersonal Category = "Personal"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategorySchool, CategoryPersonal, CategoryOther}

// ParseCategory matches s case-insensitively. ok is false for unknown values.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

type Task struct {
	ID              string   `json:"id" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Completed       bool     `json:"completed"`
	DurationMinutes int      `json:"durationMinutes" validate:"gt=0"`
	Category        Category `json:"category" validate:"oneof=Work School Personal Other"`
	Date            string   `json:"date" validate:"datetime=2006-01-02"`           // YYYY-MM-DD format
	StartTime       string   `json:"startTime,omitempty" validate:"omitempty,clock"` // HH:MM format
	ProjectRef      string   `json:"projectRef,omitempty"`
	IsAIGenerated   bool     `json:"isAIGenerated,omitempty"`
}

// HasStartTime reports whether the task is pinned to a clock time.
func (t Task) HasStartTime() bool {
	return t.StartTime != ""
}

// SortStartTime returns the start time used for ordering; unscheduled tasks
// sort after everything else.
func (t Task) SortStartTime() string {
	if t.StartTime == "" {
		return constants.MissingStartTime
	}
	return t.StartTime
}

// TaskDraft carries the optional fields of a quick-add. Zero values fall back
// to the quick-add defaults.
type TaskDraft struct {
	Title           string
	Date            string
	DurationMinutes int
	StartTime       string
	Category        Category
}

// NewTask builds a task from a draft: title "New Activity", 30 minutes,
// Personal and today's date unless the draft says otherwise.
func NewTask(d TaskDraft, today string) Task {
	t := Task{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(d.Title),
		DurationMinutes: d.DurationMinutes,
		Category:        d.Category,
		Date:            d.Date,
		StartTime:       d.StartTime,
	}
	if t.Title == "" {
		t.Title = constants.DefaultTaskTitle
	}
	if t.DurationMinutes <= 0 {
		t.DurationMinutes = constants.DefaultTaskDuration
	}
	if c, ok := ParseCategory(string(t.Category)); ok {
		t.Category = c
	} else {
		t.Category = CategoryPersonal
	}
	if t.Date == "" {
		t.Date = today
	}
	return t
}
