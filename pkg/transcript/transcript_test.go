package transcript

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/router"
)

func testRecord(sessionID string, createdAt time.Time) *Record {
	return &Record{
		ID:           "rec-" + sessionID,
		SessionID:    sessionID,
		Provider:     "gemini",
		Outcome:      OutcomeOK,
		LatencyMS:    120,
		ReplyPreview: "hello",
		CreatedAt:    createdAt,
	}
}

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	now := time.Now()
	if err := store.Store(ctx, testRecord("a", now.Add(-48*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.Store(ctx, testRecord("b", now)); err != nil {
		t.Fatal(err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	deleted, err := store.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("Prune deleted %d, want 1", deleted)
	}

	records := store.Records()
	if len(records) != 1 || records[0].SessionID != "b" {
		t.Errorf("wrong records survived pruning: %+v", records)
	}
}

func TestSQLiteStorage(t *testing.T) {
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "transcripts.db")

	store, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Now()

	if err := store.Store(ctx, testRecord("a", now.Add(-48*time.Hour))); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Store(ctx, testRecord("b", now)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	deleted, err := store.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune deleted %d, want 1", deleted)
	}

	count, err = store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Count after prune = %d, want 1", count)
	}
}

func TestRecorder_SuccessAndFailure(t *testing.T) {
	store := NewMemoryStorage()
	rec := NewRecorder(store, nil)

	rec.ObserveTurn(router.TurnEvent{
		SessionID: "chat-1",
		Provider:  "gemini",
		Latency:   80 * time.Millisecond,
		Reply:     "hello there",
	})
	rec.ObserveTurn(router.TurnEvent{
		SessionID: "chat-1",
		Provider:  "grok",
		Latency:   40 * time.Millisecond,
		Err:       &providers.TransportError{Provider: "grok", StatusCode: 502},
	})

	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	records := store.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	success := records[0]
	if success.Outcome != OutcomeOK || success.ReplyPreview != "hello there" || success.ErrorKind != "" {
		t.Errorf("success record = %+v", success)
	}
	if success.ID == "" {
		t.Error("record ID not generated")
	}

	failure := records[1]
	if failure.Outcome != OutcomeError {
		t.Errorf("failure outcome = %q", failure.Outcome)
	}
	if failure.ErrorKind != string(providers.KindTransport) {
		t.Errorf("failure kind = %q", failure.ErrorKind)
	}
	if failure.ReplyPreview != "" {
		t.Error("failure record must not carry a reply preview")
	}
}

func TestRecorder_TruncatesPreview(t *testing.T) {
	store := NewMemoryStorage()
	cfg := DefaultConfig()
	cfg.MaxPreviewLength = 10
	rec := NewRecorder(store, cfg)

	rec.ObserveTurn(router.TurnEvent{
		SessionID: "chat-1",
		Provider:  "gemini",
		Reply:     "this reply is longer than ten bytes",
	})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	records := store.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0].ReplyPreview; got != "this reply" {
		t.Errorf("preview = %q", got)
	}
}

func TestRecorder_Disabled(t *testing.T) {
	store := NewMemoryStorage()
	cfg := DefaultConfig()
	cfg.Enabled = false
	rec := NewRecorder(store, cfg)

	rec.ObserveTurn(router.TurnEvent{SessionID: "chat-1", Provider: "gemini", Reply: "hi"})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	if count, _ := store.Count(context.Background()); count != 0 {
		t.Errorf("disabled recorder stored %d records", count)
	}
}

func TestPruner(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()

	_ = store.Store(ctx, testRecord("old", now.AddDate(0, 0, -60)))
	_ = store.Store(ctx, testRecord("new", now))

	pruner := NewPruner(store, &RetentionConfig{RetentionDays: 30})
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d, want 1", deleted)
	}
}

func TestPruner_DisabledRetention(t *testing.T) {
	store := NewMemoryStorage()
	_ = store.Store(context.Background(), testRecord("old", time.Now().AddDate(-1, 0, 0)))

	pruner := NewPruner(store, &RetentionConfig{RetentionDays: 0})
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("retention disabled but deleted %d", deleted)
	}
}

func TestPruner_InvalidSchedule(t *testing.T) {
	pruner := NewPruner(NewMemoryStorage(), &RetentionConfig{
		RetentionDays: 30,
		PruneSchedule: "not a cron expression",
	})

	if err := pruner.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron schedule")
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Backend: "sqlite", Op: "insert", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}
