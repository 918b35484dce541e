package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"portfolio-terminal/internal/repository/memory"
	"portfolio-terminal/pkg/store"
)

func newTestManager() *Manager {
	return NewManager(memory.NewSessionRepository(time.Minute))
}

func TestLoadOrCreateBlankID(t *testing.T) {
	m := newTestManager()

	sess, err := m.LoadOrCreate(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadOrCreate(\"\") error = %v", err)
	}
	if sess.ID == "" {
		t.Error("LoadOrCreate(\"\") did not allocate an id")
	}
	if sess.Mode != store.ModeCommand {
		t.Errorf("Mode = %s, want %s", sess.Mode, store.ModeCommand)
	}
	if len(sess.History) != 0 {
		t.Errorf("History has %d messages, want 0", len(sess.History))
	}

	other, err := m.LoadOrCreate(context.Background(), "   ")
	if err != nil {
		t.Fatalf("LoadOrCreate(whitespace) error = %v", err)
	}
	if other.ID == sess.ID {
		t.Error("two blank-id calls shared an id")
	}
}

func TestLoadOrCreateUnknownID(t *testing.T) {
	m := newTestManager()

	sess, err := m.LoadOrCreate(context.Background(), "ghost-17")
	if err != nil {
		t.Fatalf("LoadOrCreate(ghost-17) error = %v", err)
	}
	if sess.ID != "ghost-17" {
		t.Errorf("ID = %q, want %q", sess.ID, "ghost-17")
	}
	if sess.Mode != store.ModeCommand {
		t.Errorf("Mode = %s, want %s", sess.Mode, store.ModeCommand)
	}
}

func TestLoadOrCreateRoundTrip(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess := store.NewSession("visitor-1")
	sess.Mode = store.ModeChat
	sess.AppendExchange("hi", "hello")
	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.LoadOrCreate(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("LoadOrCreate(visitor-1) error = %v", err)
	}
	if got.Mode != store.ModeChat {
		t.Errorf("Mode = %s, want %s", got.Mode, store.ModeChat)
	}
	if len(got.History) != 2 {
		t.Fatalf("History has %d messages, want 2", len(got.History))
	}
	if got.History[0].Content != "hi" {
		t.Errorf("History[0].Content = %q, want %q", got.History[0].Content, "hi")
	}
}

func TestDeleteAndCount(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := m.Save(ctx, store.NewSession(id)); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	count, err := m.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	if err := m.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete(b) error = %v", err)
	}
	count, _ = m.Count(ctx)
	if count != 2 {
		t.Errorf("Count() after delete = %d, want 2", count)
	}
}

// Lock must serialize mutations on the same session id. Run with -race to
// make violations visible.
func TestLockSerializes(t *testing.T) {
	m := newTestManager()

	const workers = 64
	var wg sync.WaitGroup
	counter := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := m.Lock("shared-session")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestLockUnlockAllowsReentry(t *testing.T) {
	m := newTestManager()

	unlock := m.Lock("sess")
	unlock()

	done := make(chan struct{})
	go func() {
		unlock := m.Lock("sess")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Lock() on a released id blocked")
	}
}
