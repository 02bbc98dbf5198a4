package actor

import (
	"errors"
	"fmt"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/mailbox"
)

// Kind discriminates the message variants exchanged with a worker.
type Kind int

const (
	// KindRequest asks a worker to classify a character and carries the
	// return address for the answer.
	KindRequest Kind = iota
	// KindReply is a normal answer carrying a boolean.
	KindReply
	// KindErrorReply signals a protocol mismatch. It carries only a
	// failure reason; it has no payload and no return address.
	KindErrorReply
	// KindTerminate is the poison pill that ends a worker's receive loop.
	KindTerminate
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindReply:
		return "reply"
	case KindErrorReply:
		return "error_reply"
	case KindTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is the single envelope type flowing through mailboxes. The kind
// tag decides which fields are meaningful; accessors refuse to hand out
// fields the kind does not carry. In particular, reading the payload,
// value or return address of an error reply fails with the carried reason,
// so a failure can never be mistaken for an answer.
type Message struct {
	kind    Kind
	payload any
	value   bool
	reason  string
	replyTo *mailbox.Mailbox[Message]
}

// NewRequest builds a classification request. The payload is expected to be
// a byte; anything else is answered by the worker with an error reply.
func NewRequest(payload any, replyTo *mailbox.Mailbox[Message]) Message {
	return Message{kind: KindRequest, payload: payload, replyTo: replyTo}
}

// NewReply builds a normal boolean answer.
func NewReply(value bool) Message {
	return Message{kind: KindReply, value: value}
}

// NewErrorReply builds a protocol-mismatch answer carrying only reason.
func NewErrorReply(reason string) Message {
	return Message{kind: KindErrorReply, reason: reason}
}

// NewTerminate builds the poison pill that stops a worker.
func NewTerminate() Message {
	return Message{kind: KindTerminate}
}

// Kind returns the message's discriminator tag.
func (m Message) Kind() Kind { return m.kind }

// Payload returns the request payload. It fails on an error reply with the
// carried reason and on any other kind that has no payload.
func (m Message) Payload() (any, error) {
	switch m.kind {
	case KindRequest:
		return m.payload, nil
	case KindErrorReply:
		return nil, errors.New(m.reason)
	default:
		return nil, fmt.Errorf("%s message carries no payload", m.kind)
	}
}

// Value returns the boolean answer of a normal reply. It fails on an error
// reply with the carried reason and on any other kind.
func (m Message) Value() (bool, error) {
	switch m.kind {
	case KindReply:
		return m.value, nil
	case KindErrorReply:
		return false, errors.New(m.reason)
	default:
		return false, fmt.Errorf("%s message carries no value", m.kind)
	}
}

// ReplyTo returns the return address of a request. It fails on an error
// reply with the carried reason and on any other kind.
func (m Message) ReplyTo() (*mailbox.Mailbox[Message], error) {
	switch m.kind {
	case KindRequest:
		return m.replyTo, nil
	case KindErrorReply:
		return nil, errors.New(m.reason)
	default:
		return nil, fmt.Errorf("%s message carries no return address", m.kind)
	}
}

// Reason returns the failure reason of an error reply, or "" for any other
// kind. Reading the reason is the one permitted access to an error reply.
func (m Message) Reason() string {
	if m.kind == KindErrorReply {
		return m.reason
	}
	return ""
}
