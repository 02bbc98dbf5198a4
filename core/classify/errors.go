package classify

import "errors"

var (
	// ErrOutOfRange is returned by Lookup for characters outside [0,255].
	// It is detected before any worker is involved.
	ErrOutOfRange = errors.New("character out of range")

	// ErrProtocol is returned when a worker answers with an error reply,
	// i.e. the message exchange itself was malformed.
	ErrProtocol = errors.New("protocol error")

	// ErrInternal is returned when a reply is neither a normal reply nor
	// an error reply. It indicates a broken invariant, not caller misuse.
	ErrInternal = errors.New("internal consistency error")

	// ErrTerminated is returned by Lookup after Terminate has been called.
	ErrTerminated = errors.New("classifier terminated")
)
