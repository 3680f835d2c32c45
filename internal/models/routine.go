package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoutineItem is a recurring weekly busy block.
type RoutineItem struct {
	ID        string `json:"id" validate:"required"`
	Label     string `json:"label" validate:"required"`
	StartTime string `json:"startTime" validate:"clock"` // 24h format "08:30"
	EndTime   string `json:"endTime" validate:"clock"`
	Days      []int  `json:"days" validate:"dive,min=0,max=6"` // 0 for Sunday, 1 for Monday, etc.
}

// NewRoutineItem assigns an id and normalizes days.
func NewRoutineItem(label, startTime, endTime string, days []int) RoutineItem {
	return RoutineItem{
		ID:        uuid.New().String(),
		Label:     strings.TrimSpace(label),
		StartTime: startTime,
		EndTime:   endTime,
		Days:      NormalizeDays(days),
	}
}

// NormalizeDays returns days sorted ascending without duplicates.
func NormalizeDays(days []int) []int {
	out := slices.Clone(days)
	slices.Sort(out)
	return slices.Compact(out)
}

// OnWeekday reports whether the routine recurs on wd.
func (r RoutineItem) OnWeekday(wd time.Weekday) bool {
	return slices.Contains(r.Days, int(wd))
}

// DayLetters renders the weekday set as S M T W T F S with inactive days dotted.
func (r RoutineItem) DayLetters() string {
	letters := []byte("SMTWTFS")
	out := make([]byte, 0, 13)
	for i, l := range letters {
		if i > 0 {
			out = append(out, ' ')
		}
		if r.OnWeekday(time.Weekday(i)) {
			out = append(out, l)
		} else {
			out = append(out, '.')
		}
	}
	return string(out)
}
