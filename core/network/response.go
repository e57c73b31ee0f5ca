package network

import (
	"fmt"

	"github.com/google/uuid"
)

// GUID identifies one client connection.
type GUID uuid.UUID

// NewGUID returns a random GUID.
func NewGUID() GUID {
	return GUID(uuid.New())
}

// ParseGUID parses the canonical text form.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return GUID(u), nil
}

func (g GUID) String() string {
	return uuid.UUID(g).String()
}

func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GUID) UnmarshalText(b []byte) error {
	parsed, err := ParseGUID(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Priority orders outbound messages within one connection.
type Priority uint8

const (
	PriorityImmediate Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// Reliability selects delivery guarantees.
type Reliability uint8

const (
	Unreliable Reliability = iota
	UnreliableSequenced
	Reliable
	ReliableOrdered
	ReliableSequenced
)

// Sequenced reports whether only the latest message of a stream matters.
func (r Reliability) Sequenced() bool {
	return r == UnreliableSequenced || r == ReliableSequenced
}

func (r Reliability) String() string {
	switch r {
	case Unreliable:
		return "unreliable"
	case UnreliableSequenced:
		return "unreliable_sequenced"
	case Reliable:
		return "reliable"
	case ReliableOrdered:
		return "reliable_ordered"
	case ReliableSequenced:
		return "reliable_sequenced"
	default:
		return fmt.Sprintf("reliability(%d)", uint8(r))
	}
}

// Channel separates independently ordered streams.
type Channel uint8

const (
	ChannelGame Channel = iota
	ChannelChat
)

// Message is an outbound payload.
type Message interface {
	MessageType() string
}

// Response is one message addressed to a set of clients.
type Response struct {
	Message     Message
	Priority    Priority
	Reliability Reliability
	Channel     Channel
	Recipients  []GUID
}

// Responses is the ordered output of one handler.
type Responses []Response

// Ordered addresses msg at high priority, reliable ordered, on the game channel.
func Ordered(msg Message, to []GUID) Response {
	return Response{
		Message:     msg,
		Priority:    PriorityHigh,
		Reliability: ReliableOrdered,
		Channel:     ChannelGame,
		Recipients:  to,
	}
}

// Sequenced addresses msg at high priority, reliable sequenced, on the game channel.
func Sequenced(msg Message, to []GUID) Response {
	return Response{
		Message:     msg,
		Priority:    PriorityHigh,
		Reliability: ReliableSequenced,
		Channel:     ChannelGame,
		Recipients:  to,
	}
}

// To returns a single-recipient list.
func To(guid GUID) []GUID {
	return []GUID{guid}
}

// Types returns the message types in order, for logs and tests.
func (r Responses) Types() []string {
	out := make([]string, len(r))
	for i, resp := range r {
		out[i] = resp.Message.MessageType()
	}
	return out
}
