package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
)

type taskForm struct {
	Title    string
	Date     string
	Duration int
	Start    string
	Category models.Category
}

type projectForm struct {
	Title       string
	Start       string
	Deadline    string
	Description string
}

type routineForm struct {
	Description string
}

type routineItemForm struct {
	Label string
	Start string
	End   string
	Days  []int
}

type offTimeForm struct {
	Kind  models.OffTimeKind
	Label string
	Start string
	End   string
}

func validateDate(s string) error {
	if !models.IsDate(strings.TrimSpace(s)) {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	if !models.IsClock(strings.TrimSpace(s)) {
		return errors.New("use HH:MM (24h)")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateClock(s)
}

func durationOptions() []huh.Option[int] {
	var opts []huh.Option[int]
	for d := constants.MinDurationMin; d <= constants.MaxDurationMin; d += constants.DurationStepMin {
		opts = append(opts, huh.NewOption(models.FormatDuration(d), d))
	}
	return opts
}

func categoryOptions() []huh.Option[models.Category] {
	opts := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		opts[i] = huh.NewOption(string(c), c)
	}
	return opts
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func weekdayOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], len(weekdayNames))
	for i, name := range weekdayNames {
		opts[i] = huh.NewOption(name, i)
	}
	return opts
}

func newTaskForm(f *taskForm, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(constants.DefaultTaskTitle).
				Value(&f.Title),
			huh.NewInput().
				Title("Date").
				Value(&f.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Start time").
				Description("Optional, HH:MM").
				Value(&f.Start).
				Validate(validateOptionalClock),
			huh.NewSelect[int]().
				Title("Duration").
				Options(durationOptions()...).
				Value(&f.Duration),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&f.Category),
		),
	).WithShowHelp(true)
}

func newProjectForm(f *projectForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project").
				Value(&f.Title).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Start date").
				Value(&f.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("Deadline").
				Value(&f.Deadline).
				Validate(func(s string) error {
					if err := validateDate(s); err != nil {
						return err
					}
					if strings.TrimSpace(s) < strings.TrimSpace(f.Start) {
						return errors.New("deadline is before the start date")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&f.Description),
		),
	).WithShowHelp(true)
}

func newRoutineForm(f *routineForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Describe your week").
				Description("Work hours, classes, workouts... The routine is replaced.").
				Value(&f.Description).
				Validate(huh.ValidateNotEmpty()),
		),
	).WithShowHelp(true)
}

func newRoutineItemForm(f *routineItemForm, withDays bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Label").
			Value(&f.Label).
			Validate(huh.ValidateNotEmpty()),
		huh.NewInput().
			Title("Start").
			Value(&f.Start).
			Validate(validateClock),
		huh.NewInput().
			Title("End").
			Value(&f.End).
			Validate(validateClock),
	}
	if withDays {
		fields = append(fields, huh.NewMultiSelect[int]().
			Title("Days").
			Options(weekdayOptions()...).
			Value(&f.Days))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

func newOffTimeForm(f *offTimeForm, withKind bool) *huh.Form {
	var groups []*huh.Group
	if withKind {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[models.OffTimeKind]().
				Title("Kind").
				Options(
					huh.NewOption("Single day", models.OffTimeSingle),
					huh.NewOption("Date range", models.OffTimeRange),
					huh.NewOption("Every weekend", models.OffTimeWeekend),
				).
				Value(&f.Kind),
		))
	}
	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Description("Leave empty for the default").
				Value(&f.Label),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Value(&f.Start).
				Validate(validateDate),
		).WithHideFunc(func() bool { return f.Kind == models.OffTimeWeekend }),
		huh.NewGroup(
			huh.NewInput().
				Title("End date").
				Value(&f.End).
				Validate(func(s string) error {
					if err := validateDate(s); err != nil {
						return err
					}
					if strings.TrimSpace(s) < strings.TrimSpace(f.Start) {
						return errors.New("end date is before the start date")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return f.Kind != models.OffTimeRange }),
	)
	return huh.NewForm(groups...).WithShowHelp(true)
}
