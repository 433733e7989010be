package push

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"zentra/internal/common"
)

var ErrChannelClosed = errors.New("push channel closed")

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

const (
	frameQueued int32 = iota
	frameWriting
	frameAbandoned
)

type outbound struct {
	data   []byte
	result chan error
	state  *atomic.Int32
}

// claim moves a queued frame to writing. It fails once the sender gave up.
func (o outbound) claim() bool {
	return o.state.CompareAndSwap(frameQueued, frameWriting)
}

// abandon withdraws a queued frame. It fails once the writer took it.
func (o outbound) abandon() bool {
	return o.state.CompareAndSwap(frameQueued, frameAbandoned)
}

// Channel is a websocket connection. All writes go through one writer
// goroutine, so frames leave in the order Send was called.
type Channel struct {
	id     string
	userID string
	ws     *websocket.Conn
	out    chan outbound
	done   chan struct{}

	pingInterval time.Duration
	closeOnce    sync.Once
	logger       *zap.Logger
}

func newChannel(userID string, ws *websocket.Conn, queue int, pingInterval time.Duration, logger *zap.Logger) *Channel {
	id := uuid.NewString()
	return &Channel{
		id:           id,
		userID:       userID,
		ws:           ws,
		out:          make(chan outbound, queue),
		done:         make(chan struct{}),
		pingInterval: pingInterval,
		logger:       logger.With(zap.String("user_id", userID), zap.String("conn_id", id)),
	}
}

func (c *Channel) ID() string     { return c.id }
func (c *Channel) UserID() string { return c.userID }

// Send queues msg and waits until it is written, the channel closes or ctx ends.
func (c *Channel) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return common.Delivery(err)
	}

	item := outbound{data: data, result: make(chan error, 1), state: new(atomic.Int32)}
	select {
	case c.out <- item:
	case <-c.done:
		return common.Delivery(ErrChannelClosed)
	case <-ctx.Done():
		return common.Delivery(ctx.Err())
	}

	select {
	case err := <-item.result:
		return deliveryResult(err)
	case <-c.done:
		return common.Delivery(ErrChannelClosed)
	case <-ctx.Done():
		if item.abandon() {
			return common.Delivery(ctx.Err())
		}
		// already on the wire; report what the write did
		select {
		case err := <-item.result:
			return deliveryResult(err)
		case <-c.done:
			return common.Delivery(ErrChannelClosed)
		}
	}
}

func deliveryResult(err error) error {
	if err != nil {
		return common.Delivery(err)
	}
	return nil
}

func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.ws.Close()
	})
	return err
}

func (c *Channel) writePump() {
	var tick <-chan time.Time
	if c.pingInterval > 0 {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case item := <-c.out:
			if !item.claim() {
				continue
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.ws.WriteMessage(websocket.TextMessage, item.data)
			item.result <- err
			if err != nil {
				c.logger.Warn("write failed, closing channel", zap.Error(err))
				_ = c.Close()
				return
			}
		case <-tick:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ping failed, closing channel", zap.Error(err))
				_ = c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
