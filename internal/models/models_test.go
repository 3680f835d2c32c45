package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p, err := NewProject("Thesis", "2024-01-01", "2024-01-10", "write it")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.IsBrokenDown)

	_, err = NewProject("", "2024-01-01", "2024-01-10", "")
	assert.Error(t, err)

	_, err = NewProject("Thesis", "2024-01-01", "", "")
	assert.Error(t, err)

	_, err = NewProject("Thesis", "2024-01-10", "2024-01-01", "")
	assert.Error(t, err)
}

func TestNormalizeDays(t *testing.T) {
	assert.Equal(t, []int{0, 3, 5}, NormalizeDays([]int{5, 3, 0, 3}))
	assert.Empty(t, NormalizeDays(nil))
}

func TestRoutineDayLetters(t *testing.T) {
	r := RoutineItem{Days: []int{1, 3, 5}}
	assert.Equal(t, ". M . W . F .", r.DayLetters())
	assert.True(t, r.OnWeekday(time.Wednesday))
	assert.False(t, r.OnWeekday(time.Sunday))
}

func TestRoutineValidation(t *testing.T) {
	ok := RoutineItem{ID: "r", Label: "Work", StartTime: "09:00", EndTime: "17:00", Days: []int{1, 2}}
	require.NoError(t, Validate(ok))

	bad := ok
	bad.Days = []int{7}
	assert.Error(t, Validate(bad))

	bad = ok
	bad.EndTime = "25:00"
	assert.Error(t, Validate(bad))
}

func TestNewOffTimeLabels(t *testing.T) {
	tests := []struct {
		kind  OffTimeKind
		label string
	}{
		{OffTimeWeekend, "Weekend Off"},
		{OffTimeSingle, "Day Off"},
		{OffTimeRange, "Vacation"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			o := NewOffTime(tt.kind, "2024-05-01")
			assert.Equal(t, tt.label, o.Label)
			assert.Equal(t, "2024-05-01", o.StartDate)
			assert.Equal(t, "2024-05-01", o.EndDate)
			assert.NoError(t, Validate(o))
		})
	}
}

func TestOffTimeRangeOrder(t *testing.T) {
	tests := []struct {
		name    string
		off     OffTime
		wantErr bool
	}{
		{"range forward", OffTime{ID: "o", Kind: OffTimeRange, StartDate: "2024-03-01", EndDate: "2024-03-08"}, false},
		{"range one day", OffTime{ID: "o", Kind: OffTimeRange, StartDate: "2024-03-01", EndDate: "2024-03-01"}, false},
		{"range backwards", OffTime{ID: "o", Kind: OffTimeRange, StartDate: "2024-03-08", EndDate: "2024-03-01"}, true},
		{"weekend ignores end", OffTime{ID: "o", Kind: OffTimeWeekend, StartDate: "2024-03-08", EndDate: "2024-03-01"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.off)
			if tt.wantErr {
				assert.ErrorContains(t, err, "EndDate")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseOffTimeKind(t *testing.T) {
	k, err := ParseOffTimeKind("range")
	require.NoError(t, err)
	assert.Equal(t, OffTimeRange, k)

	_, err = ParseOffTimeKind("holiday")
	assert.Error(t, err)
}

func TestClampDuration(t *testing.T) {
	assert.Equal(t, 15, ClampDuration(0))
	assert.Equal(t, 480, ClampDuration(600))
	assert.Equal(t, 45, ClampDuration(44))
	assert.Equal(t, 30, ClampDuration(30))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1h 30m", FormatDuration(90))
	assert.Equal(t, "0h 15m", FormatDuration(15))
}

func TestDayPlanTaskCount(t *testing.T) {
	d := DayPlan{Workloads: []Workload{{Tasks: make([]Task, 2)}, {Tasks: make([]Task, 3)}}}
	assert.Equal(t, 5, d.TaskCount())
}
