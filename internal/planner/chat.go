package planner

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/logger"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

// Chat sends message to the assistant. The user message is recorded first;
// then either one confirmation per valid addTask call or the text reply is
// appended. Invalid calls are logged and skipped. A provider failure appends
// the fixed error message and is returned.
func (p *Planner) Chat(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	before := p.store.Snapshot()
	if err := p.store.Dispatch(state.AppendChat{Messages: []models.ChatMessage{
		models.NewChatMessage(models.RoleUser, message, p.cfg.Now()),
	}}); err != nil {
		return err
	}

	p.setFlag(&p.chatTyping, true)
	defer p.setFlag(&p.chatTyping, false)

	if err := p.converse(ctx, message, before); err != nil {
		logger.Error("Chat failed", "error", err)
		p.appendModel(constants.ChatErrorText)
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}

func (p *Planner) converse(ctx context.Context, message string, before state.State) error {
	history := make([]ai.Turn, 0, len(before.Chat))
	for _, m := range before.Chat {
		history = append(history, ai.Turn{FromModel: m.Role == models.RoleModel, Text: m.Text})
	}

	reply, err := p.svc.Converse(ctx, ai.ConverseRequest{
		Model:             p.cfg.ChatModel,
		SystemInstruction: chatInstruction(before.Routine, before.Tasks, before.Projects, p.today()),
		Message:           message,
		History:           history,
		Tools:             []ai.Tool{addTaskTool},
	})
	if err != nil {
		return err
	}

	if len(reply.ToolCalls) > 0 {
		for _, call := range reply.ToolCalls {
			if call.Name != constants.AddTaskToolName {
				logger.Warn("Ignoring unknown tool call", "tool", call.Name)
				continue
			}
			task := models.NewTask(draftFromArgs(call.Args), p.today())
			if err := p.store.Dispatch(state.AddTask{Task: task}); err != nil {
				logger.Warn("Dropping invalid addTask call", "title", task.Title, "error", err)
				continue
			}
			logger.Info("Assistant added task", "title", task.Title, "date", task.Date)
			p.appendModel(constants.ChatAddedTaskPrefix + task.Title)
		}
		return nil
	}

	if text := strings.TrimSpace(reply.Text); text != "" {
		p.appendModel(text)
	}
	return nil
}

func (p *Planner) appendModel(text string) {
	msg := models.NewChatMessage(models.RoleModel, text, p.cfg.Now())
	if err := p.store.Dispatch(state.AppendChat{Messages: []models.ChatMessage{msg}}); err != nil {
		logger.Error("Failed to record chat reply", "error", err)
	}
}

func draftFromArgs(args map[string]any) models.TaskDraft {
	return models.TaskDraft{
		Title:           argString(args, "title"),
		Date:            argString(args, "date"),
		DurationMinutes: argInt(args, "durationMinutes"),
		StartTime:       argString(args, "startTime"),
		Category:        models.Category(argString(args, "category")),
	}
}

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(math.Round(v))
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}
