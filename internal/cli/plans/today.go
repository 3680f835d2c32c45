package plans

import (
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/views"
)

// TodayCmd prints the dashboard: the next task, today's volume and the
// tasks for today and tomorrow.
type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	st := ctx.State.Snapshot()
	now := ctx.Clock()

	if next := views.NextPriority(st.Tasks, now); next != nil {
		ctx.Printf("Next up: %s at %s (%s)\n", next.Title, next.StartTime, models.FormatDuration(next.DurationMinutes))
	} else {
		ctx.Println("Next up: nothing else scheduled today")
	}
	ctx.Printf("Today's volume: %d task(s)\n\n", views.TodayVolume(st.Tasks, now))

	tasks := views.DashboardTasks(st.Tasks, now)
	if len(tasks) == 0 {
		ctx.Println("No tasks today or tomorrow.")
		return nil
	}
	tomorrow := now.AddDate(0, 0, 1).Format(constants.DateFormat)
	heading := ""
	for _, t := range tasks {
		h := "Today"
		if t.Date == tomorrow {
			h = "Tomorrow"
		}
		if h != heading {
			heading = h
			ctx.Println(heading)
		}
		ctx.Println("  " + cli.FormatTask(t))
	}
	return nil
}
