package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/logger"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
)

// Options tune the Hub.
type Options struct {
	// QueueSize is the per-connection send queue length.
	QueueSize int
	// WriteTimeout bounds a socket write and the wait for queue space of an ordered response.
	WriteTimeout time.Duration
	// ReadLimit is the largest accepted inbound frame in bytes.
	ReadLimit int64
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.ReadLimit <= 0 {
		o.ReadLimit = 64 * 1024
	}
	return o
}

// Dispatcher handles decoded frames. *dispatch.Router implements it.
type Dispatcher interface {
	DispatchRaw(ctx context.Context, client network.GUID, raw []byte) (network.Responses, error)
	Dispatch(ctx context.Context, req dispatch.Request) (network.Responses, error)
}

// Hub accepts websocket clients and delivers responses to them.
type Hub struct {
	logger     *zap.Logger
	dispatcher Dispatcher
	opts       Options
	upgrader   websocket.Upgrader

	mu    sync.RWMutex
	conns map[network.GUID]*conn
	// departed holds clients that disconnected explicitly.
	departed map[network.GUID]struct{}
}

// NewHub creates a Hub routing frames to d.
func NewHub(logger *zap.Logger, d Dispatcher, opts Options) *Hub {
	return &Hub{
		logger:     logger,
		dispatcher: d,
		opts:       opts.withDefaults(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns:    make(map[network.GUID]*conn),
		departed: make(map[network.GUID]struct{}),
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	guid := network.NewGUID()
	c := newConn(guid, ws, h.opts.QueueSize, logger.WithClient(h.logger, guid.String()))

	h.mu.Lock()
	h.conns[guid] = c
	h.mu.Unlock()

	c.logger.Info("Client connected", zap.String("remote", r.RemoteAddr))

	go c.writePump(h.opts.WriteTimeout)
	h.readPump(r.Context(), c)
}

func (h *Hub) readPump(ctx context.Context, c *conn) {
	defer h.drop(ctx, c)

	c.ws.SetReadLimit(h.opts.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("Read failed", zap.Error(err))
			}
			return
		}

		resps, err := h.dispatcher.DispatchRaw(ctx, c.guid, raw)
		if err != nil {
			c.logger.Warn("Request failed", zap.Error(err))
		} else {
			h.Send(resps)
		}

		// A client that asked to leave is closed even when its disconnect failed.
		if isDisconnect(raw) {
			h.mu.Lock()
			h.departed[c.guid] = struct{}{}
			h.mu.Unlock()
			return
		}
	}
}

// drop forgets c and dispatches a lost disconnect unless the client left on its own.
func (h *Hub) drop(ctx context.Context, c *conn) {
	h.mu.Lock()
	delete(h.conns, c.guid)
	_, departed := h.departed[c.guid]
	delete(h.departed, c.guid)
	h.mu.Unlock()

	c.close()
	c.logger.Info("Client disconnected", zap.Bool("explicit", departed))
	if departed {
		return
	}

	payload, _ := json.Marshal(protocol.Disconnect{Reason: protocol.ReasonLost})
	resps, err := h.dispatcher.Dispatch(context.WithoutCancel(ctx), dispatch.Request{
		Client:   c.guid,
		Envelope: protocol.Envelope{Type: protocol.TypeDisconnect, Payload: payload},
	})
	if err != nil {
		if !errors.Is(err, network.ErrUnknownClient) {
			c.logger.Warn("Disconnect failed", zap.Error(err))
		}
		return
	}
	h.Send(resps)
}

func isDisconnect(raw []byte) bool {
	var head struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(raw, &head) == nil && head.Type == protocol.TypeDisconnect
}

// Send encodes every response once and queues it for each recipient.
// Recipients without a live connection are skipped.
func (h *Hub) Send(resps network.Responses) {
	for _, resp := range resps {
		frame, err := protocol.Encode(resp.Message)
		if err != nil {
			h.logger.Error("Failed to encode response", zap.Error(err))
			continue
		}
		for _, guid := range resp.Recipients {
			h.mu.RLock()
			c, ok := h.conns[guid]
			h.mu.RUnlock()
			if !ok {
				continue
			}
			if c.enqueue(frame, resp.Reliability, h.opts.WriteTimeout) {
				continue
			}
			if resp.Reliability.Sequenced() {
				c.logger.Debug("Dropped sequenced update", zap.String("type", resp.Message.MessageType()))
				continue
			}
			c.logger.Warn("Send queue stalled, closing connection", zap.String("type", resp.Message.MessageType()))
			c.close()
		}
	}
}

// Len returns the number of open connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close closes every open connection.
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.close()
	}
}
