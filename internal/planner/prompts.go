package planner

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
)

const routineInstruction = `You are a Routine Specialist.
Based on the user description, create a weekly routine.
Use 24h time format (HH:MM).
Days: 0=Sun, 1=Mon, 2=Tue, 3=Wed, 4=Thu, 5=Fri, 6=Sat.
Return ONLY a JSON array.`

var categoryEnum = func() []string {
	out := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = string(c)
	}
	return out
}()

var routineSchema = ai.ArrayOf(&ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"label":     {Type: ai.TypeString},
		"startTime": {Type: ai.TypeString},
		"endTime":   {Type: ai.TypeString},
		"days":      ai.ArrayOf(&ai.Schema{Type: ai.TypeInteger}),
	},
	Required: []string{"label", "startTime", "endTime", "days"},
})

var breakdownSchema = ai.ArrayOf(&ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"title":           {Type: ai.TypeString},
		"durationMinutes": {Type: ai.TypeNumber},
		"date":            {Type: ai.TypeString},
		"category":        {Type: ai.TypeString, Enum: categoryEnum},
		"startTime":       {Type: ai.TypeString},
	},
	Required: []string{"title", "durationMinutes", "date", "category"},
})

var addTaskTool = ai.Tool{
	Name:        constants.AddTaskToolName,
	Description: "Add a new task to the user schedule.",
	Parameters: &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"title":           ai.String("The title of the task."),
			"date":            ai.String("The date in YYYY-MM-DD format."),
			"durationMinutes": {Type: ai.TypeNumber, Description: "Duration in minutes."},
			"startTime":       ai.String("Optional start time in HH:MM format."),
			"category":        {Type: ai.TypeString, Enum: categoryEnum},
		},
		Required: []string{"title", "date", "durationMinutes"},
	},
}

func breakdownInstruction(p models.Project, routine []models.RoutineItem, offTimes []models.OffTime) string {
	return fmt.Sprintf(`You are a Task Breakdown Expert.
Break down %q between %s and %s.
Routine busy times: %s.
User Off-Times (DO NOT schedule tasks during these): %s.
Rules:
- Return ONLY a JSON array of subtasks.
- Every date must be between %s and %s.
- If weekends are off, avoid Saturday/Sunday.
- Use simple English.`,
		p.Title, p.StartDate, p.Deadline,
		mustJSON(routine), mustJSON(offTimes),
		p.StartDate, p.Deadline)
}

func breakdownPrompt(p models.Project) string {
	prompt := fmt.Sprintf("Breakdown project: %s. Duration: %s to %s.", p.Title, p.StartDate, p.Deadline)
	if p.Description != "" {
		prompt += "\nDetails: " + p.Description
	}
	return prompt
}

func chatInstruction(routine []models.RoutineItem, tasks []models.Task, projects []models.Project, today string) string {
	return fmt.Sprintf(`You are Harmony Assistant.
Use SIMPLE ENGLISH only. No fancy words.
Use dashes (-) for lists.
DO NOT use markdown stars (*) or bold.
You can add tasks using the addTask tool.

Context:
Routine: %s
Tasks: %s
Projects: %s
Date: %s`, mustJSON(routine), mustJSON(tasks), mustJSON(projects), today)
}

// mustJSON renders context for a prompt. The inputs are plain model structs,
// so encoding cannot fail.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
