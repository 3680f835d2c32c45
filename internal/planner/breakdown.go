package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

type subtaskResponse struct {
	Title           string  `json:"title"`
	DurationMinutes float64 `json:"durationMinutes"`
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	StartTime       string  `json:"startTime,omitempty"`
}

// BreakdownProject asks the model for dated subtasks of a project, appends
// them as AI-generated tasks and marks the project broken down. Overlapping
// calls for the same project are allowed.
func (p *Planner) BreakdownProject(ctx context.Context, projectID string) (int, error) {
	snap := p.store.Snapshot()
	project, ok := snap.Project(projectID)
	if !ok {
		return 0, fmt.Errorf("project %s: %w", projectID, state.ErrNotFound)
	}

	p.markBreakdown(projectID, 1)
	defer p.markBreakdown(projectID, -1)

	tasks, err := p.breakdown(ctx, project, snap.Routine, snap.OffTimes)
	if err == nil {
		err = p.store.Dispatch(state.ApplyBreakdown{ProjectID: project.ID, Tasks: tasks})
	}
	if err != nil {
		logger.Error("Project breakdown failed", "project", project.Title, "error", err)
		return 0, fmt.Errorf("breakdown of %q failed: %w", project.Title, err)
	}
	logger.Info("Project broken down", "project", project.Title, "tasks", len(tasks))
	return len(tasks), nil
}

func (p *Planner) breakdown(ctx context.Context, project models.Project, routine []models.RoutineItem, offTimes []models.OffTime) ([]models.Task, error) {
	raw, err := p.svc.GenerateStructured(ctx, ai.StructuredRequest{
		Model:             p.cfg.BreakdownModel,
		SystemInstruction: breakdownInstruction(project, routine, offTimes),
		Prompt:            breakdownPrompt(project),
		Schema:            breakdownSchema,
	})
	if err != nil {
		return nil, err
	}
	resp, err := ai.DecodeArray[subtaskResponse](raw)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(resp))
	for _, s := range resp {
		t := subtaskToTask(s, project.ID)
		if err := models.Validate(t); err != nil {
			logger.Warn("Dropping invalid subtask", "project", project.Title, "title", s.Title, "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func subtaskToTask(s subtaskResponse, projectID string) models.Task {
	category, ok := models.ParseCategory(s.Category)
	if !ok {
		category = models.CategoryOther
	}
	minutes := int(math.Round(s.DurationMinutes))
	if minutes <= 0 {
		minutes = constants.DefaultTaskDuration
	}
	return models.Task{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(s.Title),
		Completed:       false,
		DurationMinutes: minutes,
		Category:        category,
		Date:            s.Date,
		StartTime:       s.StartTime,
		ProjectRef:      projectID,
		IsAIGenerated:   true,
	}
}

// BreakdownAll breaks down every project not yet broken down, one at a time,
// then switches to the focus view. A failed project does not stop the rest;
// the failures are joined into the returned error. With nothing pending it
// does nothing.
func (p *Planner) BreakdownAll(ctx context.Context) (int, error) {
	pending := p.store.Snapshot().PendingBreakdown()
	if len(pending) == 0 {
		return 0, nil
	}

	var errs []error
	done := 0
	for _, project := range pending {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := p.BreakdownProject(ctx, project.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		done++
	}

	if err := p.store.Dispatch(state.SetView{View: models.ViewFocus}); err != nil {
		errs = append(errs, err)
	}
	return done, errors.Join(errs...)
}
