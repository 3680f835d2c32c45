package routines

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

// RoutineGenerateCmd replaces the routine with one the model derives from a
// description of the user's week.
type RoutineGenerateCmd struct {
	Description []string `arg:"" help:"Free-text description, e.g. \"I work 9 to 5 on weekdays and go to the gym Tuesday evenings\"."`
}

func (c *RoutineGenerateCmd) Run(ctx *cli.Context) error {
	description := strings.TrimSpace(strings.Join(c.Description, " "))
	if description == "" {
		return fmt.Errorf("describe your week to generate a routine")
	}
	p, err := ctx.Planner()
	if err != nil {
		return err
	}
	ctx.Println("Generating routine...")
	if err := p.GenerateRoutine(ctx.Ctx(), description); err != nil {
		return err
	}
	return printRoutine(ctx, ctx.State.Snapshot().Routine)
}

type RoutineListCmd struct {
	Day string `short:"d" help:"Only items on this weekday (name or 0-6)."`
}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	items := ctx.State.Snapshot().Routine
	if c.Day != "" {
		wd, err := cli.ParseWeekday(c.Day)
		if err != nil {
			return err
		}
		items = slices.DeleteFunc(items, func(r models.RoutineItem) bool { return !r.OnWeekday(time.Weekday(wd)) })
	}
	return printRoutine(ctx, items)
}

func printRoutine(ctx *cli.Context, items []models.RoutineItem) error {
	if len(items) == 0 {
		ctx.Println("No routine items.")
		return nil
	}
	items = slices.Clone(items)
	slices.SortStableFunc(items, func(a, b models.RoutineItem) int { return strings.Compare(a.StartTime, b.StartTime) })
	for _, r := range items {
		ctx.Printf("%s  %s-%s  %s  %s\n", cli.ShortID(r.ID), r.StartTime, r.EndTime, r.DayLetters(), r.Label)
	}
	return nil
}

type RoutineAddCmd struct {
	Label string `arg:"" help:"What the block is, e.g. \"Work\"."`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
	Days  string `short:"d" help:"Comma-separated weekdays, or weekdays|weekends|daily." default:"weekdays"`
}

func (c *RoutineAddCmd) Validate() error {
	if err := cli.ValidateClock("start", c.Start); err != nil {
		return err
	}
	return cli.ValidateClock("end", c.End)
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	item := models.NewRoutineItem(c.Label, c.Start, c.End, days)
	if err := ctx.State.Dispatch(state.AddRoutineItem{Item: item}); err != nil {
		return fmt.Errorf("invalid routine item: %w", err)
	}
	ctx.Printf("Added routine item: %s %s (ID: %s)\n", item.Label, item.DayLetters(), cli.ShortID(item.ID))
	return nil
}

type RoutineEditCmd struct {
	ID    string  `arg:"" help:"Routine item ID (or unique prefix)."`
	Label *string `help:"New label."`
	Start *string `short:"s" help:"New start time (HH:MM)."`
	End   *string `short:"e" help:"New end time (HH:MM)."`
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	item, err := cli.RoutineByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}
	patch := state.RoutinePatch{Label: c.Label, StartTime: c.Start, EndTime: c.End}
	if patch == (state.RoutinePatch{}) {
		return fmt.Errorf("nothing to change: pass --label, --start or --end")
	}
	if err := ctx.State.Dispatch(state.UpdateRoutineItem{ID: item.ID, Patch: patch}); err != nil {
		return fmt.Errorf("failed to update routine item: %w", err)
	}
	ctx.Printf("Updated routine item: %s\n", cli.ShortID(item.ID))
	return nil
}

// RoutineToggleCmd adds or removes one weekday from an item.
type RoutineToggleCmd struct {
	ID  string `arg:"" help:"Routine item ID (or unique prefix)."`
	Day string `arg:"" help:"Weekday name or number (0=Sunday)."`
}

func (c *RoutineToggleCmd) Run(ctx *cli.Context) error {
	item, err := cli.RoutineByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}
	day, err := cli.ParseWeekday(c.Day)
	if err != nil {
		return err
	}
	if err := ctx.State.Dispatch(state.ToggleRoutineDay{ID: item.ID, Day: day}); err != nil {
		return fmt.Errorf("failed to toggle day: %w", err)
	}
	updated, err := cli.RoutineByID(ctx.State.Snapshot(), item.ID)
	if err != nil {
		return err
	}
	ctx.Printf("%s: %s\n", updated.Label, updated.DayLetters())
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine item ID (or unique prefix) to delete."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	item, err := cli.RoutineByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}
	if err := ctx.State.Dispatch(state.DeleteRoutineItem{ID: item.ID}); err != nil {
		return fmt.Errorf("failed to delete routine item: %w", err)
	}
	ctx.Printf("Deleted routine item: %s\n", item.Label)
	return nil
}
