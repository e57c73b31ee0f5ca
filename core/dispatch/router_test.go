package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
)

type chatFeature struct {
	got []string
}

func (f *chatFeature) Register(r *Router) {
	r.Handle(protocol.TypeChat, WithPayload(f.chat))
}

func (f *chatFeature) chat(_ context.Context, req Request, p protocol.Chat) (network.Responses, error) {
	f.got = append(f.got, p.Message)
	return network.Responses{network.Ordered(protocol.GameChat{Message: p.Message}, network.To(req.Client))}, nil
}

func TestDispatchRawRoutesTypedPayload(t *testing.T) {
	feature := &chatFeature{}
	router := NewRouter(zap.NewNop())
	router.Mount(feature)

	client := network.NewGUID()
	resps, err := router.DispatchRaw(context.Background(), client, []byte(`{"type":"chat","payload":{"message":"hi"}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"hi"}, feature.got)
	require.Len(t, resps, 1)
	assert.Equal(t, []network.GUID{client}, resps[0].Recipients)
	assert.Equal(t, []string{protocol.TypeChat}, router.Kinds())
}

func TestDispatchUnknownKind(t *testing.T) {
	router := NewRouter(zap.NewNop())
	_, err := router.Dispatch(context.Background(), Request{Envelope: protocol.Envelope{Type: protocol.TypeSetPos}})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDispatchRawRejectsBadEnvelope(t *testing.T) {
	router := NewRouter(zap.NewNop())
	_, err := router.DispatchRaw(context.Background(), network.NewGUID(), []byte(`{"type":"fly"}`))
	assert.ErrorIs(t, err, protocol.ErrInvalidEnvelope)
}

func TestWithPayloadValidatesBeforeHandler(t *testing.T) {
	called := false
	h := WithPayload(func(context.Context, Request, protocol.SetPos) (network.Responses, error) {
		called = true
		return nil, nil
	})

	_, err := h(context.Background(), Request{Envelope: protocol.Envelope{
		Type:    protocol.TypeSetPos,
		Payload: json.RawMessage(`{"id":0,"pos":{"x":1,"y":2,"z":3}}`),
	}})
	assert.ErrorIs(t, err, protocol.ErrInvalidPayload)
	assert.False(t, called)
}

func TestHandlerErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	router := NewRouter(zap.NewNop())
	router.Handle(protocol.TypeLoadGame, func(context.Context, Request) (network.Responses, error) {
		return nil, boom
	})

	_, err := router.Dispatch(context.Background(), Request{Envelope: protocol.Envelope{Type: protocol.TypeLoadGame}})
	assert.ErrorIs(t, err, boom)
}
