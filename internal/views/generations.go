package views

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Generations tracks the in-flight refresh per key. Starting a new refresh
// for a key cancels the previous one, so a slow superseded load can never
// overwrite a newer result.
type Generations struct {
	mu       sync.Mutex
	inflight map[string]generation
}

type generation struct {
	id     string
	cancel context.CancelFunc
}

// NewGenerations creates an empty refresh tracker.
func NewGenerations() *Generations {
	return &Generations{inflight: make(map[string]generation)}
}

// Begin starts a refresh for key. The returned function must be called when
// the refresh is finished.
func (g *Generations) Begin(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	gen := generation{id: uuid.NewString(), cancel: cancel}

	g.mu.Lock()
	if prev, ok := g.inflight[key]; ok {
		prev.cancel()
	}
	g.inflight[key] = gen
	g.mu.Unlock()

	return ctx, func() {
		g.mu.Lock()
		if cur, ok := g.inflight[key]; ok && cur.id == gen.id {
			delete(g.inflight, key)
		}
		g.mu.Unlock()
		cancel()
	}
}

// InFlight reports how many keys currently have a running refresh.
func (g *Generations) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inflight)
}

func (g *Generations) begin(ctx context.Context, key string) (context.Context, func()) {
	if g == nil {
		return ctx, func() {}
	}
	return g.Begin(ctx, key)
}
