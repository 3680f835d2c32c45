package chats

import (
	"strings"
	"time"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
)

// ChatCmd sends one message to the assistant and prints what it appended to
// the transcript. Without a message it prints the transcript.
type ChatCmd struct {
	Message []string `arg:"" optional:"" help:"Message for the assistant, e.g. \"add gym tomorrow at 7am\"."`
	Last    int      `short:"n" help:"Transcript messages to show when no message is given." default:"20"`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	message := strings.TrimSpace(strings.Join(c.Message, " "))
	if message == "" {
		return c.history(ctx)
	}

	p, err := ctx.Planner()
	if err != nil {
		return err
	}
	before := len(ctx.State.Snapshot().Chat)
	chatErr := p.Chat(ctx.Ctx(), message)

	// the user's own message is the first new entry
	transcript := ctx.State.Snapshot().Chat
	if before+1 < len(transcript) {
		for _, m := range transcript[before+1:] {
			printMessage(ctx, m)
		}
	}
	return chatErr
}

func (c *ChatCmd) history(ctx *cli.Context) error {
	transcript := ctx.State.Snapshot().Chat
	if len(transcript) == 0 {
		ctx.Println("No messages yet.")
		return nil
	}
	if c.Last > 0 && len(transcript) > c.Last {
		transcript = transcript[len(transcript)-c.Last:]
	}
	for _, m := range transcript {
		printMessage(ctx, m)
	}
	return nil
}

func printMessage(ctx *cli.Context, m models.ChatMessage) {
	who := "you"
	if m.Role == models.RoleModel {
		who = "assistant"
	}
	at := time.UnixMilli(m.Timestamp).In(ctx.Clock().Location()).Format("Jan 2 15:04")
	ctx.Printf("[%s] %s: %s\n", at, who, m.Text)
}
