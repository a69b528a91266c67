package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"lumos-hq/relay/pkg/chunk"
	"lumos-hq/relay/pkg/router"
)

// ChunkCounter counts outbound chunks; the metrics collector satisfies
// it. Nil disables counting.
type ChunkCounter interface {
	AddChunks(n int)
}

// Binding dispatches Telegram updates to the router and sends replies
// back, chunked to the transport's message limit.
type Binding struct {
	router  *router.Router
	sender  Sender
	limit   int
	chunks  ChunkCounter
	logger  *slog.Logger
	helpMsg string
}

// BindingConfig contains configuration for the binding.
type BindingConfig struct {
	// MessageLimit caps outbound message length. Default: 4096.
	MessageLimit int

	// Chunks counts outbound chunks, may be nil.
	Chunks ChunkCounter
}

// NewBinding creates a binding from the router to the sender.
func NewBinding(r *router.Router, sender Sender, config BindingConfig) *Binding {
	if config.MessageLimit <= 0 {
		config.MessageLimit = chunk.DefaultLimit
	}
	return &Binding{
		router: r,
		sender: sender,
		limit:  config.MessageLimit,
		chunks: config.Chunks,
		logger: slog.Default().With("component", "telegram.binding"),
		helpMsg: "Send me a message and I'll answer. Commands:\n" +
			"/model - show the current model\n" +
			"/model <name> - switch models\n" +
			"/reset - clear the conversation\n" +
			"/start - start over",
	}
}

// HandleUpdate processes one update. Non-message updates and messages
// without text are ignored.
func (b *Binding) HandleUpdate(ctx context.Context, update Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	sessionID := strconv.FormatInt(chatID, 10)
	text := strings.TrimSpace(update.Message.Text)

	var reply string
	if strings.HasPrefix(text, "/") {
		reply = b.handleCommand(sessionID, text)
	} else {
		// Turn errors are already logged and folded into the reply.
		reply, _ = b.router.HandleTurn(ctx, sessionID, text)
	}

	if reply == "" {
		return
	}
	b.send(ctx, chatID, reply)
}

// handleCommand dispatches a slash command and returns the reply text.
func (b *Binding) handleCommand(sessionID, text string) string {
	fields := strings.Fields(text)
	command := strings.ToLower(fields[0])
	// Commands may carry the bot's username, e.g. /model@relaybot.
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	args := fields[1:]

	switch command {
	case "/start":
		return b.router.Start(sessionID)

	case "/help":
		return b.helpMsg

	case "/model":
		if len(args) == 0 {
			return fmt.Sprintf("You're currently using: %s", b.router.CurrentProvider(sessionID))
		}
		reply, _ := b.router.SwitchProvider(sessionID, strings.ToLower(args[0]))
		return reply

	case "/reset":
		return b.router.ResetSession(sessionID)

	default:
		return fmt.Sprintf("Unknown command %s. Try /help.", command)
	}
}

// send delivers text to the chat in order, one chunk at a time. A failed
// chunk aborts the rest so the user never sees a gap in the middle.
func (b *Binding) send(ctx context.Context, chatID int64, text string) {
	pieces := chunk.Split(text, b.limit)
	for i, piece := range pieces {
		if err := b.sender.SendMessage(ctx, chatID, piece); err != nil {
			b.logger.Error("failed to send message chunk",
				"chat_id", chatID,
				"chunk", i,
				"total_chunks", len(pieces),
				"error", err,
			)
			return
		}
	}
	if b.chunks != nil {
		b.chunks.AddChunks(len(pieces))
	}
}
