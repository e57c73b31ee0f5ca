package transport

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
)

type recordingRouter struct {
	*dispatch.Router

	mu          sync.Mutex
	disconnects []protocol.Disconnect
	gone        chan struct{}
}

func newRecordingRouter() *recordingRouter {
	rr := &recordingRouter{Router: dispatch.NewRouter(zap.NewNop()), gone: make(chan struct{}, 4)}
	rr.Handle(protocol.TypeChat, dispatch.WithPayload(func(_ context.Context, req dispatch.Request, p protocol.Chat) (network.Responses, error) {
		return network.Responses{network.Ordered(protocol.GameChat{Message: "echo: " + p.Message}, network.To(req.Client))}, nil
	}))
	rr.Handle(protocol.TypeDisconnect, dispatch.WithPayload(func(_ context.Context, _ dispatch.Request, p protocol.Disconnect) (network.Responses, error) {
		rr.mu.Lock()
		rr.disconnects = append(rr.disconnects, p)
		rr.mu.Unlock()
		rr.gone <- struct{}{}
		return nil, nil
	}))
	return rr
}

func (rr *recordingRouter) reasons() []protocol.Reason {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	out := make([]protocol.Reason, len(rr.disconnects))
	for i, d := range rr.disconnects {
		out[i] = d.Reason
	}
	return out
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	return ws
}

func TestHubRoundTrip(t *testing.T) {
	router := newRecordingRouter()
	hub := NewHub(zap.NewNop(), router, Options{})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv.URL)
	defer ws.Close()

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat","payload":{"message":"hi"}}`)))
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"game_chat","payload":{"message":"echo: hi"}}`, string(frame))
	assert.Equal(t, 1, hub.Len())
}

func TestHubInvalidFrameKeepsConnection(t *testing.T) {
	router := newRecordingRouter()
	hub := NewHub(zap.NewNop(), router, Options{})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv.URL)
	defer ws.Close()

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat","payload":{"message":"still here"}}`)))
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(frame), "still here")
}

func TestHubDispatchesLostDisconnectOnClose(t *testing.T) {
	router := newRecordingRouter()
	hub := NewHub(zap.NewNop(), router, Options{})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv.URL)
	require.NoError(t, ws.Close())

	select {
	case <-router.gone:
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect was not dispatched")
	}
	assert.Equal(t, []protocol.Reason{protocol.ReasonLost}, router.reasons())
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubExplicitDisconnectIsNotRepeated(t *testing.T) {
	router := newRecordingRouter()
	hub := NewHub(zap.NewNop(), router, Options{})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv.URL)
	defer ws.Close()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"disconnect","payload":{"reason":1}}`)))

	select {
	case <-router.gone:
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect was not dispatched")
	}
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []protocol.Reason{protocol.ReasonQuit}, router.reasons())
}

func TestHubFailedDisconnectStillCloses(t *testing.T) {
	var calls atomic.Int32
	router := dispatch.NewRouter(zap.NewNop())
	router.Handle(protocol.TypeDisconnect, dispatch.WithPayload(func(context.Context, dispatch.Request, protocol.Disconnect) (network.Responses, error) {
		calls.Add(1)
		return nil, network.ErrUnknownClient
	}))
	hub := NewHub(zap.NewNop(), router, Options{})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv.URL)
	defer ws.Close()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"disconnect","payload":{"reason":1}}`)))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err, "the server closes the connection")
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a failed explicit disconnect is not retried as lost")
}

func TestEnqueueHonoursReliability(t *testing.T) {
	c := &conn{
		logger: zap.NewNop(),
		send:   make(chan []byte, 1),
		done:   make(chan struct{}),
	}

	assert.True(t, c.enqueue([]byte("a"), network.ReliableOrdered, time.Millisecond))
	assert.False(t, c.enqueue([]byte("b"), network.ReliableSequenced, time.Second), "sequenced drops when full")
	assert.False(t, c.enqueue([]byte("c"), network.ReliableOrdered, 10*time.Millisecond), "ordered times out when full")

	close(c.done)
	start := time.Now()
	assert.False(t, c.enqueue([]byte("d"), network.ReliableOrdered, time.Minute))
	assert.Less(t, time.Since(start), time.Second, "closed connections fail fast")
}

func TestSendSkipsUnknownRecipients(t *testing.T) {
	hub := NewHub(zap.NewNop(), newRecordingRouter(), Options{})
	assert.NotPanics(t, func() {
		hub.Send(network.Responses{network.Ordered(protocol.GameChat{Message: "x"}, network.To(network.NewGUID()))})
	})
}
