package protocol

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beInDev/vaultmp/core/network"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Version is sent in game_start.
const Version = "1.0"

var (
	// ErrInvalidEnvelope is returned for frames that do not match the envelope schema.
	ErrInvalidEnvelope = errors.New("protocol: invalid envelope")
	// ErrInvalidPayload is returned when a payload fails its own validation.
	ErrInvalidPayload = errors.New("protocol: invalid payload")
)

//go:embed envelope.schema.json
var envelopeSchemaJSON string

var envelopeSchema = jsonschema.MustCompileString("envelope.schema.json", envelopeSchemaJSON)

// Envelope is an inbound frame with its payload still encoded.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode validates raw against the envelope schema and splits it.
func Decode(raw []byte) (Envelope, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := envelopeSchema.Validate(doc); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return env, nil
}

// Payload is an inbound payload that checks its own field ranges.
type Payload interface {
	Validate() error
}

// DecodePayload decodes env's payload into T and validates it.
func DecodePayload[T any, P interface {
	*T
	Payload
}](env Envelope) (T, error) {
	var v T
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return v, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, env.Type, err)
		}
	}
	if err := P(&v).Validate(); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, env.Type, err)
	}
	return v, nil
}

type outbound struct {
	Type    string          `json:"type"`
	Payload network.Message `json:"payload"`
}

// Encode wraps an outbound message into its envelope.
func Encode(msg network.Message) ([]byte, error) {
	b, err := json.Marshal(outbound{Type: msg.MessageType(), Payload: msg})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", msg.MessageType(), err)
	}
	return b, nil
}
