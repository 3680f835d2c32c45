package tasks

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/state"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID (or unique prefix) to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	// Check if task exists first
	task, err := cli.TaskByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if err := ctx.State.Dispatch(state.DeleteTask{ID: task.ID}); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	ctx.Printf("Deleted task: %s (ID: %s)\n", task.Title, cli.ShortID(task.ID))
	return nil
}
