package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

const shortIDLen = 8

// ShortID trims a uuid for display. Any unique prefix is accepted back.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// MatchID finds the one item whose id equals query or starts with it.
func MatchID[T any](items []T, id func(T) string, query string) (T, error) {
	var zero T
	query = strings.TrimSpace(query)
	if query == "" {
		return zero, fmt.Errorf("an ID is required")
	}
	var matches []T
	for _, it := range items {
		if id(it) == query {
			return it, nil
		}
		if strings.HasPrefix(id(it), query) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("no item with ID %s: %w", query, state.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("ID prefix %s matches %d items", query, len(matches))
	}
}

func TaskByID(st state.State, query string) (models.Task, error) {
	return MatchID(st.Tasks, func(t models.Task) string { return t.ID }, query)
}

func ProjectByID(st state.State, query string) (models.Project, error) {
	return MatchID(st.Projects, func(p models.Project) string { return p.ID }, query)
}

func RoutineByID(st state.State, query string) (models.RoutineItem, error) {
	return MatchID(st.Routine, func(r models.RoutineItem) string { return r.ID }, query)
}

func OffTimeByID(st state.State, query string) (models.OffTime, error) {
	return MatchID(st.OffTimes, func(o models.OffTime) string { return o.ID }, query)
}

var dayMap = map[string]int{
	"sun":       0,
	"sunday":    0,
	"mon":       1,
	"monday":    1,
	"tue":       2,
	"tuesday":   2,
	"wed":       3,
	"wednesday": 3,
	"thu":       4,
	"thursday":  4,
	"fri":       5,
	"friday":    5,
	"sat":       6,
	"saturday":  6,
}

// ParseWeekdays parses a comma-separated list of weekdays into weekday
// numbers (0=Sunday). "weekdays", "weekends" and "daily" expand to their sets.
func ParseWeekdays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		switch part {
		case "":
			continue
		case "daily":
			days = append(days, 0, 1, 2, 3, 4, 5, 6)
			continue
		case "weekdays":
			days = append(days, 1, 2, 3, 4, 5)
			continue
		case "weekends":
			days = append(days, 0, 6)
			continue
		}
		if wd, ok := dayMap[part]; ok {
			days = append(days, wd)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return models.NormalizeDays(days), nil
}

// ParseWeekday parses a single weekday name or number.
func ParseWeekday(s string) (int, error) {
	days, err := ParseWeekdays(s)
	if err != nil {
		return 0, err
	}
	if len(days) != 1 {
		return 0, fmt.Errorf("expected a single weekday, got %q", s)
	}
	return days[0], nil
}

// ResolveDate accepts YYYY-MM-DD plus "today", "tomorrow" and "yesterday".
func ResolveDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now.Format(constants.DateFormat), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(constants.DateFormat), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	if !models.IsDate(s) {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return s, nil
}

// ValidateClock checks an optional HH:MM flag value.
func ValidateClock(name, s string) error {
	if s != "" && !models.IsClock(s) {
		return fmt.Errorf("invalid %s time format (expected HH:MM): %s", name, s)
	}
	return nil
}

// FormatTask renders one task line for listings.
func FormatTask(t models.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	start := "--:--"
	if t.HasStartTime() {
		start = t.StartTime
	}
	line := fmt.Sprintf("%s %s  %s %s  %-8s %s  (%s)", check, ShortID(t.ID), t.Date, start, t.Category, t.Title, models.FormatDuration(t.DurationMinutes))
	if t.IsAIGenerated {
		line += " *"
	}
	return line
}
