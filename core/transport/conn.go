package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/network"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type conn struct {
	guid   network.GUID
	ws     *websocket.Conn
	logger *zap.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConn(guid network.GUID, ws *websocket.Conn, queue int, logger *zap.Logger) *conn {
	return &conn{
		guid:   guid,
		ws:     ws,
		logger: logger,
		send:   make(chan []byte, queue),
		done:   make(chan struct{}),
	}
}

// enqueue reports whether the frame was queued.
func (c *conn) enqueue(frame []byte, rel network.Reliability, timeout time.Duration) bool {
	if rel.Sequenced() || rel == network.Unreliable {
		select {
		case c.send <- frame:
			return true
		case <-c.done:
			return false
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	case <-timer.C:
		return false
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.ws.Close(); err != nil {
			c.logger.Debug("Failed to close websocket", zap.Error(err))
		}
	})
}

func (c *conn) writePump(writeTimeout time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case frame := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				c.logger.Warn("Failed to set write deadline", zap.Error(err))
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("Write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				c.logger.Warn("Failed to set ping write deadline", zap.Error(err))
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("Ping failed", zap.Error(err))
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		}
	}
}
