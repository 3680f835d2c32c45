package projects

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
)

// ProjectBreakdownCmd asks the model to split one project into dated
// subtasks that avoid the routine and off-times.
type ProjectBreakdownCmd struct {
	ID string `arg:"" help:"Project ID (or unique prefix) to break down."`
}

func (c *ProjectBreakdownCmd) Run(ctx *cli.Context) error {
	project, err := cli.ProjectByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}
	return breakdown(ctx, project)
}

func breakdown(ctx *cli.Context, project models.Project) error {
	p, err := ctx.Planner()
	if err != nil {
		return err
	}
	ctx.Printf("Breaking down %s...\n", project.Title)
	n, err := p.BreakdownProject(ctx.Ctx(), project.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Added %d subtask(s) to %s\n", n, project.Title)
	for _, t := range ctx.State.Snapshot().ProjectTasks(project.ID) {
		ctx.Println("    " + cli.FormatTask(t))
	}
	return nil
}

// ProjectBreakdownAllCmd breaks down every pending project, one at a time.
type ProjectBreakdownAllCmd struct{}

func (c *ProjectBreakdownAllCmd) Run(ctx *cli.Context) error {
	pending := ctx.State.Snapshot().PendingBreakdown()
	if len(pending) == 0 {
		ctx.Println("No projects are waiting for breakdown.")
		return nil
	}

	p, err := ctx.Planner()
	if err != nil {
		return err
	}
	ctx.Printf("Breaking down %d project(s)...\n", len(pending))
	before := len(ctx.State.Snapshot().Tasks)
	n, err := p.BreakdownAll(ctx.Ctx())
	added := len(ctx.State.Snapshot().Tasks) - before
	ctx.Printf("Broke down %d project(s), added %d subtask(s)\n", n, added)
	if err != nil {
		return fmt.Errorf("some projects failed to break down: %w", err)
	}
	return nil
}
