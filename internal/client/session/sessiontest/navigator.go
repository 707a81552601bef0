package sessiontest

import (
	"context"
	"sync"
)

// Navigator records navigations.
type Navigator struct {
	mu      sync.Mutex
	current string
	History []string
}

func NewNavigator(start string) *Navigator {
	return &Navigator{current: start}
}

func (n *Navigator) Navigate(_ context.Context, route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = route
	n.History = append(n.History, route)
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigations returns a copy of the recorded routes.
func (n *Navigator) Navigations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.History...)
}
