package projects

import (
	"github.com/julianstephens/harmony/internal/cli"
)

type ProjectListCmd struct {
	Tasks bool `short:"t" help:"Also list each project's tasks."`
}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	st := ctx.State.Snapshot()
	if len(st.Projects) == 0 {
		ctx.Println("No projects found.")
		return nil
	}

	for _, p := range st.Projects {
		status := "pending breakdown"
		if p.IsBrokenDown {
			status = "broken down"
		}
		tasks := st.ProjectTasks(p.ID)
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}
		ctx.Printf("%s  %s  %s → %s  %d/%d done  [%s]\n", cli.ShortID(p.ID), p.Title, p.StartDate, p.Deadline, done, len(tasks), status)
		if p.Description != "" {
			ctx.Printf("    %s\n", p.Description)
		}
		if c.Tasks {
			for _, t := range tasks {
				ctx.Println("    " + cli.FormatTask(t))
			}
		}
	}
	return nil
}
