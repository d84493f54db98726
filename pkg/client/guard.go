package client

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned for a response superseded by a newer request on
// the same control.
var ErrStale = errors.New("response superseded by a newer request")

// Guard discards responses that arrive after a newer request was issued for
// the same key. Starting a request also cancels the one it supersedes.
type Guard struct {
	mu      sync.Mutex
	latest  map[string]uint64
	cancels map[string]context.CancelFunc
}

// NewGuard creates an empty Guard.
func NewGuard() *Guard {
	return &Guard{
		latest:  make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Ticket identifies one request generation.
type Ticket struct {
	g   *Guard
	key string
	gen uint64
}

// Begin starts a new generation for key and returns a context that is
// cancelled once a newer generation begins.
func (g *Guard) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.cancels[key]; ok {
		prev()
	}
	g.latest[key]++
	g.cancels[key] = cancel

	return ctx, Ticket{g: g, key: key, gen: g.latest[key]}
}

// Current reports whether t is still the latest generation of its key.
func (t Ticket) Current() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.g.latest[t.key] == t.gen
}

// Done releases the ticket's context when it is still the latest.
func (t Ticket) Done() {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if t.g.latest[t.key] != t.gen {
		return
	}
	if cancel, ok := t.g.cancels[t.key]; ok {
		cancel()
		delete(t.g.cancels, t.key)
	}
}

// Guarded runs fn as the newest request for key. Its result is returned
// only if no newer request for key started meanwhile; otherwise ErrStale.
func Guarded[T any](ctx context.Context, g *Guard, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, ticket := g.Begin(ctx, key)
	defer ticket.Done()

	result, err := fn(ctx)
	if !ticket.Current() {
		var zero T
		return zero, ErrStale
	}
	return result, err
}
