package tasks

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/state"
)

// TaskDoneCmd flips a task's completion flag.
type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID (or unique prefix) to toggle."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	task, err := cli.TaskByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}
	completed := !task.Completed
	if err := ctx.State.Dispatch(state.UpdateTask{ID: task.ID, Patch: state.TaskPatch{Completed: &completed}}); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if completed {
		ctx.Printf("Completed: %s\n", task.Title)
	} else {
		ctx.Printf("Reopened: %s\n", task.Title)
	}
	return nil
}
