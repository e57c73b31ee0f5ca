package script

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Bus delivers every event to every attached sink, in attach order.
// Emit returns once all sinks handled the event.
type Bus struct {
	logger *zap.Logger

	mu    sync.RWMutex
	sinks []Sink
}

var _ Notifier = (*Bus)(nil)

// NewBus creates a Bus with the given sinks.
func NewBus(logger *zap.Logger, sinks ...Sink) *Bus {
	return &Bus{logger: logger, sinks: sinks}
}

// Attach adds a sink.
func (b *Bus) Attach(s Sink) {
	b.mu.Lock()
	b.sinks = append(b.sinks, s)
	b.mu.Unlock()
}

// Emit stamps e and fans it out. A panicking sink is logged and skipped.
func (b *Bus) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.RLock()
	sinks := slices.Clone(b.sinks)
	b.mu.RUnlock()

	for _, s := range sinks {
		b.deliver(s, e)
	}
}

func (b *Bus) deliver(s Sink, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event sink panicked",
				zap.Stringer("kind", e.Kind),
				zap.Any("panic", r))
		}
	}()
	s.Handle(e)
}

// LogSink writes every event to a zap logger at debug level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Handle(e Event) {
	s.logger.Debug("Event",
		zap.Stringer("kind", e.Kind),
		zap.Uint64("entity", uint64(e.Entity)),
		zap.Uint32("base", e.Base),
		zap.Int("count", e.Count),
		zap.Float64("value", e.Value),
		zap.Bool("flag", e.Flag))
}

// Ring keeps the most recent events.
type Ring struct {
	mu     sync.Mutex
	size   int
	events []Event
}

// NewRing creates a Ring holding at most size events.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = 1
	}
	return &Ring{size: size}
}

func (r *Ring) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.size {
		r.events = slices.Delete(r.events, 0, 1)
	}
	r.events = append(r.events, e)
}

// Events returns the retained events, oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Kinds returns the kinds of the retained events, oldest first.
func (r *Ring) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// Reset drops every retained event.
func (r *Ring) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
