package mailbox

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMailbox_fifo(t *testing.T) {
	m := New[int]()
	for i := 0; i < 10; i++ {
		m.Enqueue(i)
	}
	for i := 0; i < 10; i++ {
		v, ok := m.Dequeue(t.Context())
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, m.Len())
}

func TestMailbox_dequeueBlocksUntilEnqueue(t *testing.T) {
	m := New[string]()

	got := make(chan string, 1)
	go func() {
		v, ok := m.Dequeue(t.Context())
		if ok {
			got <- v
		}
	}()

	// Give the dequeuer a moment to block on an empty queue.
	time.Sleep(20 * time.Millisecond)
	m.Enqueue("hello")

	select {
	case v := <-got:
		require.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not wake up")
	}
}

func TestMailbox_dequeueCancelled(t *testing.T) {
	m := New[int]()

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	v, ok := m.Dequeue(ctx)
	require.False(t, ok)
	require.Zero(t, v)
}

func TestMailbox_concurrentEnqueuers(t *testing.T) {
	const (
		producers   = 8
		perProducer = 200
	)

	m := New[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				m.Enqueue(p*perProducer + i)
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < producers*perProducer; i++ {
		v, ok := m.Dequeue(t.Context())
		require.True(t, ok)
		require.False(t, seen[v], "message %d delivered twice", v)
		seen[v] = true
	}
	require.Len(t, seen, producers*perProducer)
	require.Equal(t, 0, m.Len())
}

func TestMailbox_eachMessageObservedOnce(t *testing.T) {
	const (
		consumers = 4
		messages  = 400
	)

	m := New[int]()
	got := make(chan int, messages)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var wg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := m.Dequeue(ctx)
				if !ok {
					return
				}
				got <- v
			}
		}()
	}

	for i := 0; i < messages; i++ {
		m.Enqueue(i)
	}

	seen := make(map[int]bool)
	for i := 0; i < messages; i++ {
		select {
		case v := <-got:
			require.False(t, seen[v], "message %d delivered twice", v)
			seen[v] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d messages", i)
		}
	}

	cancel()
	wg.Wait()
	require.Len(t, seen, messages)
}

func TestMailbox_depthHook(t *testing.T) {
	var (
		mu   sync.Mutex
		last int
	)
	m := New[int](WithDepthFunc(func(depth int) {
		mu.Lock()
		last = depth
		mu.Unlock()
	}))

	m.Enqueue(1)
	m.Enqueue(2)
	mu.Lock()
	require.Equal(t, 2, last)
	mu.Unlock()

	_, ok := m.Dequeue(t.Context())
	require.True(t, ok)
	mu.Lock()
	require.Equal(t, 1, last)
	mu.Unlock()
}
