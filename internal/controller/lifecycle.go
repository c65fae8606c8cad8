// Package controller holds the page controllers. A controller mounts, loads
// full collections through the store, derives its view by pure in-memory
// transforms, and reloads everything after each mutation.
package controller

import (
	"context"
	"sync"
)

// State is the load state of a page.
type State int

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// lifecycle tracks the mount context and the current load generation.
// Controller state is guarded by mu.
type lifecycle struct {
	mu     sync.Mutex
	life   context.Context
	cancel context.CancelFunc
	gen    uint64
	state  State
}

func (l *lifecycle) mount(parent context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.life, l.cancel = context.WithCancel(parent)
	l.state = Loading
}

// Dismiss cancels in-flight work; late results are dropped.
func (l *lifecycle) Dismiss() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

// scope links ctx to the mount lifetime.
func (l *lifecycle) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	l.mu.Lock()
	life := l.life
	l.mu.Unlock()
	sctx, cancel := context.WithCancel(ctx)
	if life == nil {
		return sctx, cancel
	}
	stop := context.AfterFunc(life, cancel)
	return sctx, func() { stop(); cancel() }
}

// begin starts a new load generation; older ones can no longer commit.
func (l *lifecycle) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()
	sctx, cancel := l.scope(ctx)
	return sctx, cancel, gen
}

// commit applies a load result if it is still current. apply runs under mu.
func (l *lifecycle) commit(gen uint64, apply func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen || (l.life != nil && l.life.Err() != nil) {
		return false
	}
	apply()
	l.state = Ready
	return true
}

// dismissed reports whether the mount context is gone.
func (l *lifecycle) dismissed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.life != nil && l.life.Err() != nil
}
