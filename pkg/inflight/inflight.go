// Package inflight guards mutations against double submission.
package inflight

import (
	"errors"
	"sync"
)

var ErrInProgress = errors.New("operation already in progress")

// Keyed allows at most one in-flight operation per key.
type Keyed struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func NewKeyed() *Keyed {
	return &Keyed{running: make(map[string]struct{})}
}

// Acquire marks key busy. It returns ErrInProgress if it already is;
// otherwise the returned func releases the key and must be called exactly once.
func (k *Keyed) Acquire(key string) (func(), error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, busy := k.running[key]; busy {
		return nil, ErrInProgress
	}
	k.running[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			delete(k.running, key)
			k.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key has an operation in flight.
func (k *Keyed) Busy(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, busy := k.running[key]
	return busy
}

// Run executes fn under key.
func (k *Keyed) Run(key string, fn func() error) error {
	release, err := k.Acquire(key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// Gate is a single-key guard for page-level actions such as "save".
type Gate struct {
	mu   sync.Mutex
	busy bool
}

func (g *Gate) Run(fn func() error) error {
	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return ErrInProgress
	}
	g.busy = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
	}()
	return fn()
}

func (g *Gate) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
