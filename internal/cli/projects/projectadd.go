package projects

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

type ProjectAddCmd struct {
	Title       string `arg:"" help:"Project title."`
	Start       string `short:"s" help:"Start date (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Deadline    string `short:"e" help:"Deadline (YYYY-MM-DD)." required:""`
	Description string `short:"m" help:"What the project involves; given to the model on breakdown."`
	Breakdown   bool   `short:"b" help:"Break the project down into subtasks right away."`
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	start, err := cli.ResolveDate(c.Start, ctx.Clock())
	if err != nil {
		return err
	}
	deadline, err := cli.ResolveDate(c.Deadline, ctx.Clock())
	if err != nil {
		return err
	}

	project, err := models.NewProject(c.Title, start, deadline, c.Description)
	if err != nil {
		return err
	}
	if err := ctx.State.Dispatch(state.AddProject{Project: project}); err != nil {
		return fmt.Errorf("failed to add project: %w", err)
	}
	ctx.Printf("Added project: %s (ID: %s)\n", project.Title, cli.ShortID(project.ID))

	if c.Breakdown {
		return breakdown(ctx, project)
	}
	return nil
}
