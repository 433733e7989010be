package push

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"zentra/internal/common"
	"zentra/internal/config"
)

type Server struct {
	registry     *Registry
	resolver     common.IdentityResolver
	upgrader     websocket.Upgrader
	queue        int
	pingInterval time.Duration
	sendTimeout  time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewServer(registry *Registry, resolver common.IdentityResolver, cfg config.NotificationConfig, logger *zap.Logger) *Server {
	return &Server{
		registry: registry,
		resolver: resolver,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		queue:        cfg.OutboundQueue,
		pingInterval: cfg.PingInterval,
		sendTimeout:  cfg.SendTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// ServeHTTP refuses the handshake with 401 when no identity is presented,
// then registers the channel for the rest of its life.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := s.resolver.Resolve(r)
	if err != nil {
		s.logger.Debug("channel refused", zap.Error(err))
		common.WriteError(w, err)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	ch := newChannel(userID, ws, s.queue, s.pingInterval, s.logger)
	s.registry.Register(userID, ch)
	ch.logger.Info("channel opened")

	go ch.writePump()
	s.readPump(ch)

	_ = ch.Close()
	if s.registry.UnregisterIf(userID, ch) {
		ch.logger.Info("channel closed")
	} else {
		ch.logger.Info("stale channel closed")
	}
}

func (s *Server) readPump(ch *Channel) {
	ch.ws.SetReadLimit(maxMessageSize)
	if s.pingInterval > 0 {
		pongWait := 2 * s.pingInterval
		_ = ch.ws.SetReadDeadline(time.Now().Add(pongWait))
		ch.ws.SetPongHandler(func(string) error {
			return ch.ws.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		_, data, err := ch.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ch.logger.Debug("channel read failed", zap.Error(err))
			}
			return
		}

		reply := s.handleInbound(data)
		ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
		err = ch.Send(ctx, reply)
		cancel()
		if err != nil {
			ch.logger.Debug("reply failed", zap.String("type", reply.Type), zap.Error(err))
		}
	}
}

func (s *Server) handleInbound(data []byte) Message {
	var in inboundMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return Message{Type: TypeError, Message: "invalid message"}
	}

	switch in.Type {
	case TypeLivenessCheck:
		return Message{
			Type:       TypeLivenessAck,
			ServerTime: s.now().UnixMilli(),
			Received:   in.Payload,
		}
	default:
		return Message{Type: TypeError, Message: "unsupported message type: " + in.Type}
	}
}
