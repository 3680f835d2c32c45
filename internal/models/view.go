package models

type View string

const (
	ViewDashboard View = "dashboard"
	ViewFocus     View = "focus"
	ViewProjects  View = "projects"
	ViewRoutine   View = "routine"
)

// Views lists the dashboard tabs in display order.
var Views = []View{ViewDashboard, ViewFocus, ViewProjects, ViewRoutine}

// Workload groups one day's tasks under a project label.
type Workload struct {
	ProjectTitle string `json:"projectTitle"`
	Tasks        []Task `json:"tasks"`
}

// DayPlan is the per-day grouping rendered by the schedule views.
type DayPlan struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	Label     string     `json:"label"`
	Workloads []Workload `json:"workloads"`
}

// TaskCount sums the tasks across all workloads.
func (d DayPlan) TaskCount() int {
	n := 0
	for _, w := range d.Workloads {
		n += len(w.Tasks)
	}
	return n
}
