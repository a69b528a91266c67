package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"lumos-hq/relay/internal/providertest"
	"lumos-hq/relay/pkg/prompt"
	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/registry"
	"lumos-hq/relay/pkg/router"
	"lumos-hq/relay/pkg/session"
)

// fakeSender captures outbound messages.
type fakeSender struct {
	mu       sync.Mutex
	messages []string
	chatIDs  []int64
	err      error
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	f.chatIDs = append(f.chatIDs, chatID)
	return nil
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func testBinding(t *testing.T, provs ...providers.Provider) (*Binding, *fakeSender, *session.Store) {
	t.Helper()
	if len(provs) == 0 {
		provs = []providers.Provider{
			providertest.NewStubProvider("gemini", "gemini reply"),
			providertest.NewStubProvider("grok", "grok reply"),
		}
	}
	reg, err := registry.New("gemini", provs...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	store := session.NewStore("gemini", reg.Has)
	r := router.New(reg, store, prompt.Static("test prompt"))
	sender := &fakeSender{}
	return NewBinding(r, sender, BindingConfig{}), sender, store
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition never became true")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func textUpdate(chatID int64, text string) Update {
	return Update{
		UpdateID: 1,
		Message: &Message{
			Chat: Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestBinding_TextMessage(t *testing.T) {
	b, sender, store := testBinding(t)

	b.HandleUpdate(context.Background(), textUpdate(42, "hello"))

	sent := sender.sent()
	if len(sent) != 1 || sent[0] != "gemini reply" {
		t.Fatalf("sent = %v", sent)
	}
	if store.Get("42") == nil || store.Get("42").Len() != 2 {
		t.Error("turn not recorded under the chat's session")
	}
}

func TestBinding_StartCommand(t *testing.T) {
	b, sender, store := testBinding(t)
	store.GetOrCreate("42").AppendExchange("old", "history")

	b.HandleUpdate(context.Background(), textUpdate(42, "/start"))

	sent := sender.sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "gemini") {
		t.Fatalf("greeting = %v", sent)
	}
	if store.Get("42").Len() != 0 {
		t.Error("/start must clear history")
	}
}

func TestBinding_HelpCommand(t *testing.T) {
	b, sender, _ := testBinding(t)

	b.HandleUpdate(context.Background(), textUpdate(42, "/help"))

	sent := sender.sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "/model") {
		t.Fatalf("help = %v", sent)
	}
}

func TestBinding_ModelCommand(t *testing.T) {
	b, sender, _ := testBinding(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, textUpdate(42, "/model"))
	b.HandleUpdate(ctx, textUpdate(42, "/model grok"))
	b.HandleUpdate(ctx, textUpdate(42, "/model"))
	b.HandleUpdate(ctx, textUpdate(42, "/model claude"))
	b.HandleUpdate(ctx, textUpdate(42, "hi"))

	sent := sender.sent()
	if len(sent) != 5 {
		t.Fatalf("expected 5 replies, got %v", sent)
	}
	if sent[0] != "You're currently using: gemini" {
		t.Errorf("initial model reply = %q", sent[0])
	}
	if sent[1] != "Model switched to grok." {
		t.Errorf("switch reply = %q", sent[1])
	}
	if sent[2] != "You're currently using: grok" {
		t.Errorf("post-switch model reply = %q", sent[2])
	}
	if !strings.Contains(sent[3], `Unknown model "claude"`) || !strings.Contains(sent[3], "gemini, grok") {
		t.Errorf("unknown model reply = %q", sent[3])
	}
	// The failed switch left grok selected.
	if sent[4] != "grok reply" {
		t.Errorf("turn after failed switch answered by %q", sent[4])
	}
}

func TestBinding_ModelCommand_CaseAndSuffix(t *testing.T) {
	b, sender, _ := testBinding(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, textUpdate(42, "/model@relaybot GROK"))

	sent := sender.sent()
	if len(sent) != 1 || sent[0] != "Model switched to grok." {
		t.Fatalf("sent = %v", sent)
	}
}

func TestBinding_ResetCommand(t *testing.T) {
	b, sender, store := testBinding(t)
	store.GetOrCreate("42").AppendExchange("q", "a")

	b.HandleUpdate(context.Background(), textUpdate(42, "/reset"))

	if store.Get("42").Len() != 0 {
		t.Error("/reset must clear history")
	}
	if len(sender.sent()) != 1 {
		t.Error("expected a confirmation reply")
	}
}

func TestBinding_UnknownCommand(t *testing.T) {
	b, sender, _ := testBinding(t)

	b.HandleUpdate(context.Background(), textUpdate(42, "/dance"))

	sent := sender.sent()
	if len(sent) != 1 || !strings.Contains(sent[0], "Unknown command") {
		t.Fatalf("sent = %v", sent)
	}
}

func TestBinding_ChunksLongReply(t *testing.T) {
	long := strings.Repeat("a", 9000)
	stub := providertest.NewStubProvider("gemini", long)
	b, sender, _ := testBinding(t, stub)

	b.HandleUpdate(context.Background(), textUpdate(42, "hi"))

	sent := sender.sent()
	if len(sent) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(sent))
	}
	if len(sent[0]) != 4096 || len(sent[1]) != 4096 || len(sent[2]) != 808 {
		t.Errorf("chunk sizes = %d, %d, %d", len(sent[0]), len(sent[1]), len(sent[2]))
	}
	if strings.Join(sent, "") != long {
		t.Error("chunks out of order or corrupted")
	}
}

func TestBinding_ProviderFailureReply(t *testing.T) {
	failing := providertest.NewFailingProvider("gemini",
		&providers.TransportError{Provider: "gemini", StatusCode: 502, Message: "down"})
	b, sender, store := testBinding(t, failing)

	b.HandleUpdate(context.Background(), textUpdate(42, "hi"))

	sent := sender.sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %v", sent)
	}
	if sent[0] != "Sorry, gemini is unavailable right now, try again in a moment." {
		t.Errorf("failure reply = %q", sent[0])
	}
	if strings.Contains(sent[0], "502") {
		t.Error("failure reply leaks transport internals")
	}
	if store.Get("42").Len() != 0 {
		t.Error("failed turn recorded in history")
	}
}

func TestBinding_IgnoresNonText(t *testing.T) {
	b, sender, _ := testBinding(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, Update{UpdateID: 1})
	b.HandleUpdate(ctx, Update{UpdateID: 2, Message: &Message{Chat: Chat{ID: 42}}})

	if len(sender.sent()) != 0 {
		t.Errorf("non-text updates produced replies: %v", sender.sent())
	}
}

func TestBinding_DistinctChatsDistinctSessions(t *testing.T) {
	b, _, store := testBinding(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, textUpdate(1, "hello from one"))
	b.HandleUpdate(ctx, textUpdate(2, "hello from two"))

	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", store.Len())
	}
	if store.Get("1").History()[0].Content != "hello from one" {
		t.Error("chat 1 history wrong")
	}
	if store.Get("2").History()[0].Content != "hello from two" {
		t.Error("chat 2 history wrong")
	}
}
