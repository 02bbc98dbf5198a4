package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	natsgo "github.com/nats-io/nats.go"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/classify"
)

const defaultSubjectPrefix = "alnum"

type (
	// classifyRequest is the wire form of a lookup.
	classifyRequest struct {
		Char int `json:"char"`
	}

	// classifyResponse is the wire form of a successful answer.
	classifyResponse struct {
		Char  int  `json:"char"`
		AlNum bool `json:"alnum"`
	}

	// responseFrame is the minimal reply encoding. Err is set instead of
	// Data when the lookup failed.
	responseFrame struct {
		Data []byte `json:"data,omitempty"`
		Err  string `json:"err,omitempty"`
	}
)

func classifySubject(prefix string) string {
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return prefix + ".classify"
}

// ServerConfig configures a Server.
type ServerConfig struct {
	Connect       Connector         // nil means ConnectDefault()
	Log           *slog.Logger      // optional
	SubjectPrefix string            // e.g. "alnum" -> alnum.classify
	Service       *classify.Service // required
}

// Server answers classification requests published to <prefix>.classify by
// delegating to a classify.Service.
type Server struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	sub     *natsgo.Subscription
	log     *slog.Logger
	closed  atomic.Bool
}

// NewServer connects and subscribes. The server answers until Close.
func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("nats: ServerConfig.Service is required")
	}

	connFn := cfg.Connect
	if connFn == nil {
		connFn = ConnectDefault()
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	nc, closeNc, err := connFn()
	if err != nil {
		return nil, err
	}

	s := &Server{
		nc:      nc,
		closeNc: closeNc,
		log:     log.With(slog.String("adapter", "nats")),
	}

	subj := classifySubject(cfg.SubjectPrefix)
	s.sub, err = nc.Subscribe(subj, func(msg *natsgo.Msg) {
		s.serve(ctx, cfg.Service, msg)
	})
	if err != nil {
		closeNc()
		return nil, fmt.Errorf("nats: subscribe %s: %w", subj, err)
	}

	s.log.Info("serving classification requests", slog.String("subject", subj))
	return s, nil
}

func (s *Server) serve(ctx context.Context, svc *classify.Service, msg *natsgo.Msg) {
	var frame responseFrame

	var req classifyRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		frame.Err = fmt.Sprintf("decode request: %v", err)
	} else if alnum, err := svc.Lookup(ctx, req.Char); err != nil {
		frame.Err = err.Error()
	} else {
		frame.Data, _ = json.Marshal(classifyResponse{Char: req.Char, AlNum: alnum})
	}

	b, _ := json.Marshal(frame)
	if err := msg.Respond(b); err != nil {
		s.log.Error("failed to publish reply", slog.Any("error", err))
	}
}

// Close unsubscribes and drops the connection. Idempotent.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.sub != nil {
		_ = s.sub.Unsubscribe()
	}
	if s.nc != nil {
		_ = s.nc.Drain()
		s.closeNc()
	}
	return nil
}
