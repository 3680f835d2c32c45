package plans

import (
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/views"
)

// DayCmd prints one day grouped by project, with the routine blocks and
// off-times that apply to it.
type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, tomorrow). Defaults to today."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDate(c.Date, ctx.Clock())
	if err != nil {
		return err
	}
	st := ctx.State.Snapshot()
	plan := views.Workloads(st.Tasks, st.Projects, day)

	ctx.Printf("%s (%s)\n", plan.Label, plan.Date)
	for _, o := range views.OffTimesOn(st.OffTimes, day) {
		ctx.Printf("  Off: %s\n", o.Label)
	}
	for _, r := range views.RoutineOn(st.Routine, day) {
		ctx.Printf("  Busy %s-%s: %s\n", r.StartTime, r.EndTime, r.Label)
	}

	if plan.TaskCount() == 0 {
		ctx.Println("  No tasks.")
		return nil
	}
	for _, w := range plan.Workloads {
		ctx.Printf("\n  %s\n", w.ProjectTitle)
		for _, t := range w.Tasks {
			ctx.Println("    " + cli.FormatTask(t))
		}
	}
	return nil
}
