package tasks

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

type TaskEditCmd struct {
	ID         string  `arg:"" help:"Task ID (or unique prefix) to edit."`
	Title      *string `help:"New title."`
	Date       *string `short:"D" help:"New date (YYYY-MM-DD, today, tomorrow)."`
	Duration   *int    `short:"d" help:"New duration in minutes, snapped to 15..480."`
	Start      *string `short:"s" help:"New start time (HH:MM)."`
	ClearStart bool    `help:"Remove the start time."`
	Category   *string `short:"c" help:"New category (Work|School|Personal|Other)."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Start != nil {
		if err := cli.ValidateClock("start", *c.Start); err != nil {
			return err
		}
	}
	if c.Start != nil && c.ClearStart {
		return fmt.Errorf("--start and --clear-start cannot be used together")
	}
	if c.Category != nil {
		if _, ok := models.ParseCategory(*c.Category); !ok {
			return fmt.Errorf("invalid category: %s", *c.Category)
		}
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := cli.TaskByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}

	patch := state.TaskPatch{Title: c.Title, StartTime: c.Start}
	if c.Date != nil {
		date, err := cli.ResolveDate(*c.Date, ctx.Clock())
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if c.Duration != nil {
		patch.DurationMinutes = state.Ptr(models.ClampDuration(*c.Duration))
	}
	if c.ClearStart {
		patch.StartTime = state.Ptr("")
	}
	if c.Category != nil {
		category, _ := models.ParseCategory(*c.Category)
		patch.Category = &category
	}
	if patch == (state.TaskPatch{}) {
		return fmt.Errorf("nothing to change: pass at least one field flag")
	}

	if err := ctx.State.Dispatch(state.UpdateTask{ID: task.ID, Patch: patch}); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	updated, _ := ctx.State.Snapshot().Task(task.ID)
	ctx.Println("Updated task:", cli.FormatTask(updated))
	return nil
}
