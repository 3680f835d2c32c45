package tasks

import (
	"slices"
	"strings"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/views"
)

type TaskListCmd struct {
	Date    string `short:"D" help:"Only tasks on this date (YYYY-MM-DD, today, tomorrow)."`
	Project string `short:"p" help:"Only tasks belonging to this project ID."`
	Pending bool   `help:"Hide completed tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	st := ctx.State.Snapshot()
	tasks := st.Tasks

	if c.Project != "" {
		project, err := cli.ProjectByID(st, c.Project)
		if err != nil {
			return err
		}
		tasks = st.ProjectTasks(project.ID)
	}
	if c.Date != "" {
		day, err := cli.ResolveDate(c.Date, ctx.Clock())
		if err != nil {
			return err
		}
		tasks = views.FocusedDayTasks(tasks, day)
	} else {
		tasks = slices.Clone(tasks)
		slices.SortStableFunc(tasks, func(a, b models.Task) int {
			if d := strings.Compare(a.Date, b.Date); d != 0 {
				return d
			}
			return strings.Compare(a.SortStartTime(), b.SortStartTime())
		})
	}
	if c.Pending {
		tasks = slices.DeleteFunc(tasks, func(t models.Task) bool { return t.Completed })
	}

	if len(tasks) == 0 {
		ctx.Println("No tasks found.")
		return nil
	}
	for _, t := range tasks {
		ctx.Println(cli.FormatTask(t))
	}
	return nil
}
