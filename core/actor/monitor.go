package actor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Monitor tracks the handles of named children so a parent can wait for
// them by name. It is owned by whoever creates it; nothing is global.
type Monitor struct {
	mu       sync.Mutex
	children map[string]*Handle
}

func NewMonitor() *Monitor {
	return &Monitor{children: make(map[string]*Handle)}
}

// Child registers h under name and returns it. A later registration with the
// same name replaces the earlier one.
func (m *Monitor) Child(name string, h *Handle) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.children[name] = h
	return h
}

// Spawn spawns a and registers it under name.
func (m *Monitor) Spawn(name string, a Actor, opts ...Option) *Handle {
	return m.Child(name, Spawn(a, append([]Option{WithID(name)}, opts...)...))
}

// Names returns the registered names in sorted order.
func (m *Monitor) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.children))
	for n := range m.children {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Wait blocks until the named child stopped and returns its error.
func (m *Monitor) Wait(ctx context.Context, name string) error {
	m.mu.Lock()
	h, ok := m.children[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChild, name)
	}
	return h.Stopped(ctx)
}

// WaitAll waits for every registered child and joins their errors.
func (m *Monitor) WaitAll(ctx context.Context) error {
	var errs []error
	for _, name := range m.Names() {
		if err := m.Wait(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
