package push_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"zentra/internal/push"
	"zentra/internal/push/mocks"
)

func newConn(ctrl *gomock.Controller, id, userID string) *mocks.MockConn {
	c := mocks.NewMockConn(ctrl)
	c.EXPECT().ID().Return(id).AnyTimes()
	c.EXPECT().UserID().Return(userID).AnyTimes()
	return c
}

func TestRegistry_LastConnectWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := push.NewRegistry(zaptest.NewLogger(t))

	handleA := newConn(ctrl, "a", "bob")
	handleB := newConn(ctrl, "b", "bob")

	registry.Register("bob", handleA)
	registry.Register("bob", handleB)

	got, ok := registry.Lookup("bob")
	assert.True(t, ok)
	assert.Equal(t, push.Conn(handleB), got)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_StaleUnregisterKeepsNewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := push.NewRegistry(zaptest.NewLogger(t))

	handleA := newConn(ctrl, "a", "bob")
	handleB := newConn(ctrl, "b", "bob")
	registry.Register("bob", handleA)
	registry.Register("bob", handleB)

	assert.False(t, registry.UnregisterIf("bob", handleA))
	got, ok := registry.Lookup("bob")
	assert.True(t, ok)
	assert.Equal(t, "b", got.ID())

	assert.True(t, registry.UnregisterIf("bob", handleB))
	_, ok = registry.Lookup("bob")
	assert.False(t, ok)
}

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := push.NewRegistry(zaptest.NewLogger(t))
	handle := newConn(ctrl, "a", "bob")

	registry.Register("bob", handle)
	registry.Register("bob", handle)

	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_UnregisterAbsentIsNoop(t *testing.T) {
	registry := push.NewRegistry(zaptest.NewLogger(t))
	registry.Unregister("nobody")
	assert.Equal(t, 0, registry.Len())

	_, ok := registry.Lookup("nobody")
	assert.False(t, ok)
}

func TestRegistry_CloseAllAggregatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := push.NewRegistry(zaptest.NewLogger(t))

	ok := newConn(ctrl, "a", "alice")
	ok.EXPECT().Close().Return(nil)
	broken := newConn(ctrl, "b", "bob")
	broken.EXPECT().Close().Return(errors.New("broken pipe"))

	registry.Register("alice", ok)
	registry.Register("bob", broken)

	err := registry.CloseAll()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := push.NewRegistry(zaptest.NewLogger(t))

	conns := make([]*mocks.MockConn, 50)
	for i := range conns {
		conns[i] = newConn(ctrl, fmt.Sprintf("c%d", i), fmt.Sprintf("user-%d", i%10))
	}

	var wg sync.WaitGroup
	for i, c := range conns {
		wg.Add(1)
		go func(i int, c *mocks.MockConn) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%10)
			registry.Register(userID, c)
			registry.Lookup(userID)
			registry.UnregisterIf(userID, c)
		}(i, c)
	}
	wg.Wait()

	assert.LessOrEqual(t, registry.Len(), 10)
}
