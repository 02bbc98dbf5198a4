package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/actor"
	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/mailbox"
	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/sf"
)

// isAlNum reports whether c is an ASCII letter or digit. Workers evaluate
// it exactly once, at spawn; the service itself never classifies anything.
func isAlNum(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

// Options configures a Service. Zero values get sensible defaults.
type Options struct {
	Context       context.Context
	Logger        *slog.Logger
	Metrics       ServiceMetrics
	WorkerMetrics actor.WorkerMetrics
}

// Service is the public lookup service. It holds a registry of up to 256
// workers, one per character, spawned on first use, and dispatches one
// request/reply exchange per lookup.
type Service struct {
	id            string
	ctx           context.Context
	log           *slog.Logger
	metrics       ServiceMetrics
	workerMetrics actor.WorkerMetrics

	mu         sync.Mutex
	registry   [256]*actor.Worker
	spawned    int
	terminated bool

	spawnGroup sf.Group[actor.Worker]
}

// New creates a Service with an empty registry. No workers are spawned
// until their character is first looked up.
func New(opts Options) *Service {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopServiceMetrics()
	}
	if opts.WorkerMetrics == nil {
		opts.WorkerMetrics = actor.NopWorkerMetrics()
	}

	id := fmt.Sprintf("classify-%s", gonanoid.Must(6))

	return &Service{
		id:            id,
		ctx:           opts.Context,
		log:           opts.Logger.With(slog.String("service", id)),
		metrics:       opts.Metrics,
		workerMetrics: opts.WorkerMetrics,
	}
}

// Lookup reports whether c is alphanumeric by round-tripping a request
// through the worker bound to c.
//
// It fails with ErrOutOfRange for c outside [0,255] (checked before any
// worker is touched), ErrProtocol if the worker answers with an error
// reply, ErrInternal on a reply of unexpected kind, and ErrTerminated after
// Terminate. Each call uses its own private reply mailbox, so concurrent
// lookups can never receive each other's answers.
func (s *Service) Lookup(ctx context.Context, c int) (bool, error) {
	if c < 0 || c > 255 {
		return false, fmt.Errorf("%w: character %d is outside the range 0-255", ErrOutOfRange, c)
	}

	w, err := s.worker(byte(c))
	if err != nil {
		return false, err
	}

	defer s.metrics.LookupDuration().ObserveDuration()

	reply := mailbox.New[actor.Message]()
	if err := w.Send(ctx, actor.NewRequest(byte(c), reply)); err != nil {
		s.metrics.LookupCompleted(false)
		return false, fmt.Errorf("send to worker %s: %w", w.ID(), err)
	}

	msg, ok := reply.Dequeue(ctx)
	if !ok {
		s.metrics.LookupCompleted(false)
		return false, fmt.Errorf("lookup cancelled: %w", ctx.Err())
	}

	switch msg.Kind() {
	case actor.KindReply:
		v, err := msg.Value()
		if err != nil {
			s.metrics.LookupCompleted(false)
			return false, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		s.metrics.LookupCompleted(true)
		return v, nil
	case actor.KindErrorReply:
		s.metrics.LookupCompleted(false)
		return false, fmt.Errorf("%w: %s", ErrProtocol, msg.Reason())
	default:
		s.metrics.LookupCompleted(false)
		return false, fmt.Errorf("%w: unexpected %s reply from worker %s", ErrInternal, msg.Kind(), w.ID())
	}
}

// Workers returns the number of workers spawned so far.
func (s *Service) Workers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawned
}

// worker returns the worker bound to c, spawning it on first use. The
// registry check-and-create is atomic: the double check under the mutex
// inside a singleflight group guarantees at most one spawn per character,
// no matter how many lookups race on first access.
func (s *Service) worker(c byte) (*actor.Worker, error) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return nil, ErrTerminated
	}
	if w := s.registry[c]; w != nil {
		s.mu.Unlock()
		return w, nil
	}
	s.mu.Unlock()

	return s.spawnGroup.Do(strconv.Itoa(int(c)), func() (*actor.Worker, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.terminated {
			return nil, ErrTerminated
		}
		if w := s.registry[c]; w != nil {
			return w, nil
		}

		w := actor.SpawnWorker(c, isAlNum, actor.WorkerOptions{
			Context: s.ctx,
			Logger:  s.log,
			Metrics: s.workerMetrics,
		})
		s.registry[c] = w
		s.spawned++
		s.metrics.WorkerSpawned()
		s.metrics.WorkersActive(s.spawned)
		return w, nil
	})
}

// Terminate poison-pills every worker that was actually spawned and waits
// for their loops to exit; registry slots never populated are skipped.
// Lookups issued after Terminate fail with ErrTerminated. Idempotent.
func (s *Service) Terminate() {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	workers := make([]*actor.Worker, 0, s.spawned)
	for _, w := range s.registry {
		if w != nil {
			workers = append(workers, w)
		}
	}
	s.mu.Unlock()

	for _, w := range workers {
		w.Terminate()
		<-w.Done()
	}
	s.metrics.WorkersActive(0)
	s.log.Info("classifier terminated", slog.Int("workers", len(workers)))
}
