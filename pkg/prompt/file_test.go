package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStatic(t *testing.T) {
	s := Static("You are a helpful assistant.")
	if s.System() != "You are a helpful assistant." {
		t.Errorf("System() = %q", s.System())
	}
}

func TestFileSource_InitialRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.txt")
	if err := os.WriteFile(path, []byte("Be terse.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}

	if fs.System() != "Be terse." {
		t.Errorf("System() = %q, want trimmed file content", fs.System())
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing prompt file")
	}
}

func TestFileSource_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.txt")
	if err := os.WriteFile(path, []byte("old prompt"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- fs.Watch(ctx)
	}()

	// Give the watcher a moment to register.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("new prompt"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for fs.System() != "new prompt" {
		select {
		case <-deadline:
			t.Fatalf("prompt never reloaded, still %q", fs.System())
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-watchDone; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}
