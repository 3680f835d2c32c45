package projects

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/state"
)

// ProjectDeleteCmd removes a project along with every task it owns.
type ProjectDeleteCmd struct {
	ID string `arg:"" help:"Project ID (or unique prefix) to delete."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	st := ctx.State.Snapshot()
	project, err := cli.ProjectByID(st, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find project with ID %s: %w", c.ID, err)
	}
	owned := len(st.ProjectTasks(project.ID))

	if err := ctx.State.Dispatch(state.DeleteProject{ID: project.ID}); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	ctx.Printf("Deleted project: %s and %d task(s)\n", project.Title, owned)
	return nil
}
