package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

type routineItemResponse struct {
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Days      []int  `json:"days"`
}

// GenerateRoutine replaces the routine with one generated from a free-text
// lifestyle description. Blank input does nothing. On failure the routine is
// left exactly as it was and the error is returned for display.
func (p *Planner) GenerateRoutine(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	p.setFlag(&p.routineLoading, true)
	defer p.setFlag(&p.routineLoading, false)

	items, err := p.generateRoutine(ctx, description)
	if err == nil {
		err = p.store.Dispatch(state.ReplaceRoutine{Items: items})
	}
	if err != nil {
		logger.Error("Routine generation failed", "error", err)
		return fmt.Errorf("routine generation failed: %w", err)
	}
	logger.Info("Routine generated", "items", len(items))
	return nil
}

func (p *Planner) generateRoutine(ctx context.Context, description string) ([]models.RoutineItem, error) {
	raw, err := p.svc.GenerateStructured(ctx, ai.StructuredRequest{
		Model:             p.cfg.RoutineModel,
		SystemInstruction: routineInstruction,
		Prompt:            description,
		Schema:            routineSchema,
	})
	if err != nil {
		return nil, err
	}
	resp, err := ai.DecodeArray[routineItemResponse](raw)
	if err != nil {
		return nil, err
	}

	items := make([]models.RoutineItem, 0, len(resp))
	for _, r := range resp {
		items = append(items, models.NewRoutineItem(r.Label, r.StartTime, r.EndTime, r.Days))
	}
	return items, nil
}
