// Package chat keeps a near-real-time copy of the group chat by
// re-fetching it on a fixed interval, the way the original client
// polls. There is no push channel; the backend only offers reads.
package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// Fetcher is the slice of the kitchen client the poller reads through
type Fetcher interface {
	ChatMessages(ctx context.Context) ([]models.ChatMessage, error)
}

// Poller re-fetches the chat on a fixed interval and caches the latest
// message list. Its lifetime is tied to the context passed to Run:
// cancel the context and the poller stops.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	log      *zap.Logger

	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewPoller creates a poller reading through fetcher every interval
func NewPoller(fetcher Fetcher, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{fetcher: fetcher, interval: interval, log: log}
}

// Run polls until ctx is cancelled. It fetches once immediately so the
// cache is warm before the first tick. A failed poll keeps the previous
// list; transient backend errors must not blank the chat.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	msgs, err := p.fetcher.ChatMessages(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("chat poll failed", zap.Error(err))
		}
		return
	}

	sortByDate(msgs)

	p.mu.Lock()
	p.messages = msgs
	p.mu.Unlock()
}

// Refresh forces an immediate fetch outside the ticker, used right
// after the caller sends a message
func (p *Poller) Refresh(ctx context.Context) {
	p.poll(ctx)
}

// Messages returns the cached list, oldest first
func (p *Poller) Messages() []models.ChatMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// sortByDate orders messages oldest-first by the backend's "data"
// field, falling back to created_at like the original client does
func sortByDate(msgs []models.ChatMessage) {
	key := func(m models.ChatMessage) string {
		if m.Date != "" {
			return m.Date
		}
		return m.Created
	}
	// both formats are lexicographically ordered (YYYY-MM-DD HH:MM:SS)
	sort.SliceStable(msgs, func(i, j int) bool {
		return key(msgs[i]) < key(msgs[j])
	})
}
