package push

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"zentra/internal/common"
)

func TestChannel_TimedOutFrameIsNeverWritten(t *testing.T) {
	// no writer running, so the frame stays queued past the deadline
	ch := newChannel("bob", nil, 4, 0, zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := ch.Send(ctx, Message{Type: TypeNotify})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDelivery))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	item := <-ch.out
	assert.False(t, item.claim(), "writer must skip a frame its sender gave up on")
}

func TestOutbound_ClaimAndAbandonAreExclusive(t *testing.T) {
	taken := outbound{state: new(atomic.Int32)}
	require.True(t, taken.claim())
	assert.False(t, taken.abandon())

	dropped := outbound{state: new(atomic.Int32)}
	require.True(t, dropped.abandon())
	assert.False(t, dropped.claim())
}
