package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
)

// ErrUnknownKind is returned for envelopes no handler is registered for.
var ErrUnknownKind = errors.New("dispatch: unknown message kind")

// Request is one inbound envelope from a client.
type Request struct {
	Client   network.GUID
	Envelope protocol.Envelope
}

// HandlerFunc handles one request and returns the responses to send.
type HandlerFunc func(ctx context.Context, req Request) (network.Responses, error)

// TypedHandlerFunc handles a request whose payload is already decoded.
type TypedHandlerFunc[T any] func(ctx context.Context, req Request, payload T) (network.Responses, error)

// WithPayload decodes and validates the payload before calling h.
func WithPayload[T any, P interface {
	*T
	protocol.Payload
}](h TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx context.Context, req Request) (network.Responses, error) {
		payload, err := protocol.DecodePayload[T, P](req.Envelope)
		if err != nil {
			return nil, err
		}
		return h(ctx, req, payload)
	}
}

// Registrar is implemented by features that own inbound kinds.
type Registrar interface {
	Register(r *Router)
}

// Router maps inbound kinds to handlers.
type Router struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRouter creates an empty Router.
func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers h for kind, replacing any previous handler.
func (r *Router) Handle(kind string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[kind]; ok {
		r.logger.Warn("Replacing handler", zap.String("kind", kind))
	}
	r.handlers[kind] = h
}

// Mount lets each registrar add its handlers.
func (r *Router) Mount(registrars ...Registrar) {
	for _, reg := range registrars {
		reg.Register(r)
	}
}

// Kinds returns the registered kinds, sorted.
func (r *Router) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Dispatch runs the handler registered for req's kind.
func (r *Router) Dispatch(ctx context.Context, req Request) (network.Responses, error) {
	r.mu.RLock()
	h, ok := r.handlers[req.Envelope.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Envelope.Type)
	}
	return h(ctx, req)
}

// DispatchRaw decodes a raw frame and dispatches it.
func (r *Router) DispatchRaw(ctx context.Context, client network.GUID, raw []byte) (network.Responses, error) {
	env, err := protocol.Decode(raw)
	if err != nil {
		return nil, err
	}
	return r.Dispatch(ctx, Request{Client: client, Envelope: env})
}
