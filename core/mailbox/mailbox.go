package mailbox

import (
	"context"
	"sync"
)

// DepthFunc receives the queue depth after every enqueue and dequeue.
type DepthFunc func(depth int)

// Option configures a Mailbox.
type Option func(*config)

type config struct {
	onDepth DepthFunc
}

// WithDepthFunc installs a hook that observes the queue depth. Used to
// feed mailbox depth gauges.
func WithDepthFunc(f DepthFunc) Option {
	return func(c *config) {
		c.onDepth = f
	}
}

// Mailbox is an unbounded, thread-safe FIFO message queue.
//
// Enqueue never blocks. Dequeue blocks until a message is available or the
// context is cancelled. Any number of goroutines may enqueue concurrently;
// each message is delivered to exactly one dequeuer.
type Mailbox[T any] struct {
	mu      sync.Mutex
	queue   []T
	wake    chan struct{}
	onDepth DepthFunc
}

// New returns an empty mailbox ready for use.
func New[T any](opts ...Option) *Mailbox[T] {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Mailbox[T]{
		wake:    make(chan struct{}, 1),
		onDepth: cfg.onDepth,
	}
}

// Enqueue appends msg to the queue and wakes one waiting dequeuer.
// It never blocks.
func (m *Mailbox[T]) Enqueue(msg T) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	depth := len(m.queue)
	m.mu.Unlock()

	if m.onDepth != nil {
		m.onDepth(depth)
	}
	m.signal()
}

// Dequeue removes and returns the oldest message, blocking until one is
// available. If ctx is cancelled before a message arrives it returns the
// zero value and false.
func (m *Mailbox[T]) Dequeue(ctx context.Context) (T, bool) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			msg := m.queue[0]
			m.queue = m.queue[1:]
			depth := len(m.queue)
			m.mu.Unlock()

			if m.onDepth != nil {
				m.onDepth(depth)
			}
			// Pass the wakeup on if messages remain, so a second waiter
			// is not left sleeping after a burst of enqueues.
			if depth > 0 {
				m.signal()
			}
			return msg, true
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			var zero T
			return zero, false
		case <-m.wake:
		}
	}
}

// Len returns the current queue depth.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *Mailbox[T]) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}
