package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

type fakeFetcher struct {
	mu    sync.Mutex
	msgs  []models.ChatMessage
	err   error
	calls int
}

func (f *fakeFetcher) ChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.ChatMessage, len(f.msgs))
	copy(out, f.msgs)
	return out, nil
}

func (f *fakeFetcher) set(msgs []models.ChatMessage, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs, f.err = msgs, err
}

func TestRefreshSortsByDate(t *testing.T) {
	fetcher := &fakeFetcher{msgs: []models.ChatMessage{
		{ID: 3, Text: "terceira", Date: "2026-03-02 09:00:00"},
		{ID: 1, Text: "primeira", Date: "2026-03-01 08:00:00"},
		{ID: 2, Text: "segunda", Created: "2026-03-01 12:30:00"},
	}}
	p := NewPoller(fetcher, time.Minute, nil)

	p.Refresh(context.Background())

	got := p.Messages()
	if len(got) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(got))
	}
	for i, want := range []int{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("position %d: expected message %d, got %d", i, want, got[i].ID)
		}
	}
}

func TestFailedPollKeepsPreviousList(t *testing.T) {
	fetcher := &fakeFetcher{msgs: []models.ChatMessage{
		{ID: 1, Text: "oi", Date: "2026-03-01 08:00:00"},
	}}
	p := NewPoller(fetcher, time.Minute, nil)

	p.Refresh(context.Background())
	if len(p.Messages()) != 1 {
		t.Fatal("warm-up fetch did not populate the cache")
	}

	fetcher.set(nil, errors.New("backend down"))
	p.Refresh(context.Background())

	got := p.Messages()
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("a failed poll must keep the previous list, got %v", got)
	}
}

func TestRunPollsUntilCancelled(t *testing.T) {
	fetcher := &fakeFetcher{msgs: []models.ChatMessage{
		{ID: 1, Text: "oi", Date: "2026-03-01 08:00:00"},
	}}
	p := NewPoller(fetcher, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// wait for the immediate poll plus at least one tick
	deadline := time.After(time.Second)
	for {
		fetcher.mu.Lock()
		calls := fetcher.calls
		fetcher.mu.Unlock()
		if calls >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("poller never reached a second fetch")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if len(p.Messages()) != 1 {
		t.Errorf("Expected the cache populated by Run, got %v", p.Messages())
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	fetcher := &fakeFetcher{msgs: []models.ChatMessage{
		{ID: 1, Text: "oi", Date: "2026-03-01 08:00:00"},
		{ID: 2, Text: "tudo bem", Date: "2026-03-01 09:00:00"},
	}}
	p := NewPoller(fetcher, time.Minute, nil)
	p.Refresh(context.Background())

	first := p.Messages()
	first[0].Text = "mangled"

	if p.Messages()[0].Text != "oi" {
		t.Error("callers must not be able to mutate the cached list")
	}
}
