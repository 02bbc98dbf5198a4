package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	natsgo "github.com/nats-io/nats.go"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	Connect       Connector // nil means ConnectDefault()
	SubjectPrefix string    // must match the server's prefix
}

// Client asks a remote classification server over NATS request/reply.
type Client struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	subject string
}

// NewClient connects to NATS.
func NewClient(cfg ClientConfig) (*Client, error) {
	connFn := cfg.Connect
	if connFn == nil {
		connFn = ConnectDefault()
	}
	nc, closeNc, err := connFn()
	if err != nil {
		return nil, err
	}
	return &Client{
		nc:      nc,
		closeNc: closeNc,
		subject: classifySubject(cfg.SubjectPrefix),
	}, nil
}

// Classify reports whether c is alphanumeric according to the remote
// service. Remote failures come back as plain errors; the sentinel error
// identity does not survive the wire, only the message does.
func (c *Client) Classify(ctx context.Context, char int) (bool, error) {
	payload, err := json.Marshal(classifyRequest{Char: char})
	if err != nil {
		return false, err
	}

	msg, err := c.nc.RequestWithContext(ctx, c.subject, payload)
	if err != nil {
		return false, fmt.Errorf("nats: request: %w", err)
	}

	var frame responseFrame
	if err := json.Unmarshal(msg.Data, &frame); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	if frame.Err != "" {
		return false, errors.New(frame.Err)
	}

	var res classifyResponse
	if err := json.Unmarshal(frame.Data, &res); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return res.AlNum, nil
}

// Close drops the connection.
func (c *Client) Close() {
	c.closeNc()
}
