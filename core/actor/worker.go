package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/mailbox"
)

// ErrWorkerStopped is returned by Send once a worker's receive loop has
// exited, either via the poison pill or context cancellation.
var ErrWorkerStopped = errors.New("worker stopped")

// Predicate computes the classification a worker caches at spawn time.
type Predicate func(c byte) bool

// WorkerOptions configures a Worker. Zero values get sensible defaults.
type WorkerOptions struct {
	Context context.Context
	Logger  *slog.Logger
	Metrics WorkerMetrics
}

// Worker is an actor permanently bound to one character. It computes the
// classification for that character exactly once at spawn and then serves
// requests from its private mailbox until it receives the poison pill.
//
// The bound key and the cached result never change for the worker's
// lifetime; a worker is never rebound to a different character.
type Worker struct {
	id     string
	key    byte
	result bool

	mbox    *mailbox.Mailbox[Message]
	done    chan struct{}
	log     *slog.Logger
	metrics WorkerMetrics
}

// SpawnWorker creates a worker bound to key, computes classify(key) once,
// and starts its receive loop.
func SpawnWorker(key byte, classify Predicate, opts WorkerOptions) *Worker {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopWorkerMetrics()
	}

	id := fmt.Sprintf("worker-%s", gonanoid.Must(6))

	w := &Worker{
		id:      id,
		key:     key,
		result:  classify(key),
		done:    make(chan struct{}),
		log:     opts.Logger.With(slog.String("worker", id)),
		metrics: opts.Metrics,
	}
	w.mbox = mailbox.New[Message](mailbox.WithDepthFunc(func(depth int) {
		opts.Metrics.MailboxDepth(id, depth)
	}))

	go w.loop(opts.Context)

	w.log.Debug("worker spawned", slog.Int("key", int(key)), slog.Bool("result", w.result))
	return w
}

// ID returns the worker's instance ID, used in logs and metrics labels.
func (w *Worker) ID() string { return w.id }

// Key returns the character the worker is bound to.
func (w *Worker) Key() byte { return w.key }

// Done is closed when the receive loop exits.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Send enqueues a message for the worker. It fails once the worker has
// stopped or when ctx is already cancelled; it never blocks otherwise.
func (w *Worker) Send(ctx context.Context, msg Message) error {
	select {
	case <-w.done:
		return ErrWorkerStopped
	default:
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	w.mbox.Enqueue(msg)
	return nil
}

// Terminate sends the poison pill. Messages already queued ahead of it are
// still answered; messages arriving after the loop exits are dropped and
// subsequent Sends fail with ErrWorkerStopped. Safe to call more than once.
func (w *Worker) Terminate() {
	select {
	case <-w.done:
		return
	default:
	}
	w.mbox.Enqueue(NewTerminate())
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)

	for {
		msg, ok := w.mbox.Dequeue(ctx)
		if !ok {
			w.log.Debug("worker cancelled")
			return
		}

		switch msg.Kind() {
		case KindTerminate:
			w.log.Debug("worker terminated")
			return
		case KindRequest:
			w.handleRequest(msg)
		default:
			// Replies have no return address to answer on.
			w.log.Warn("discarding non-request message", slog.String("kind", msg.Kind().String()))
		}
	}
}

// handleRequest produces exactly one reply per request: the cached result
// for the bound key, or an error reply describing the protocol mismatch.
func (w *Worker) handleRequest(msg Message) {
	defer w.metrics.RequestDuration().ObserveDuration()

	reply, outcome := w.answer(msg)
	w.metrics.RequestCompleted(outcome)

	replyTo, err := msg.ReplyTo()
	if err != nil || replyTo == nil {
		w.log.Error("request has no usable return address", slog.Any("error", err))
		return
	}
	replyTo.Enqueue(reply)
}

func (w *Worker) answer(msg Message) (Message, string) {
	payload, err := msg.Payload()
	if err != nil {
		return NewErrorReply(err.Error()), OutcomeWrongKind
	}

	c, ok := payload.(byte)
	if !ok {
		return NewErrorReply(fmt.Sprintf("expected a character payload but received %T", payload)), OutcomeWrongKind
	}
	if c != w.key {
		return NewErrorReply(fmt.Sprintf("expected character %d but received %d", w.key, c)), OutcomeWrongKey
	}
	return NewReply(w.result), OutcomeOK
}
