// Package push tracks live websocket channels and delivers frames to them.
package push

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_conn.go -package=mocks zentra/internal/push Conn

// Conn is one live push channel owned by a single user.
type Conn interface {
	ID() string
	UserID() string
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Registry maps a user to the one channel that receives their pushes.
// A newer registration replaces the older one; the older channel stays open
// but no longer receives deliveries.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]Conn
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]Conn),
		logger: logger,
	}
}

func (r *Registry) Register(userID string, c Conn) {
	r.mu.Lock()
	prev, replaced := r.conns[userID]
	r.conns[userID] = c
	r.mu.Unlock()

	if replaced && prev != c {
		r.logger.Debug("channel superseded",
			zap.String("user_id", userID),
			zap.String("previous_conn_id", prev.ID()),
			zap.String("conn_id", c.ID()))
	}
}

func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[userID]
	return c, ok
}

func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, userID)
}

// UnregisterIf removes the mapping only while c is still the current channel
// for userID. It reports whether the mapping was removed.
func (r *Registry) UnregisterIf(userID string, c Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.conns[userID]; ok && current == c {
		delete(r.conns, userID)
		return true
	}
	return false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll empties the registry and closes every registered channel.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]Conn)
	r.mu.Unlock()

	var result error
	for _, c := range conns {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}
