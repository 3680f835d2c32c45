package tasks

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

type TaskAddCmd struct {
	Title    string `arg:"" optional:"" help:"Task title. Defaults to \"New Activity\"."`
	Date     string `short:"D" help:"Date (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Duration int    `short:"d" help:"Duration in minutes." default:"30"`
	Start    string `short:"s" help:"Start time (HH:MM)."`
	Category string `short:"c" help:"Category (Work|School|Personal|Other)." default:"Personal"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if err := cli.ValidateClock("start", c.Start); err != nil {
		return err
	}
	if _, ok := models.ParseCategory(c.Category); !ok {
		return fmt.Errorf("invalid category: %s", c.Category)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date, ctx.Clock())
	if err != nil {
		return err
	}
	category, _ := models.ParseCategory(c.Category)

	task := models.NewTask(models.TaskDraft{
		Title:           c.Title,
		Date:            date,
		DurationMinutes: c.Duration,
		StartTime:       c.Start,
		Category:        category,
	}, ctx.Today())

	if err := ctx.State.Dispatch(state.AddTask{Task: task}); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	ctx.Printf("Added task: %s (ID: %s)\n", task.Title, cli.ShortID(task.ID))
	return nil
}
