package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/mailbox"
)

func isAlNum(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func newTestWorker(t *testing.T, key byte) *Worker {
	t.Helper()
	w := SpawnWorker(key, isAlNum, WorkerOptions{Context: t.Context()})
	t.Cleanup(w.Terminate)
	return w
}

func ask(t *testing.T, w *Worker, payload any) Message {
	t.Helper()
	reply := mailbox.New[Message]()
	require.NoError(t, w.Send(t.Context(), NewRequest(payload, reply)))
	msg, ok := reply.Dequeue(t.Context())
	require.True(t, ok)
	return msg
}

func TestWorker_matchingKey(t *testing.T) {
	w := newTestWorker(t, 'z')

	msg := ask(t, w, byte('z'))
	require.Equal(t, KindReply, msg.Kind())
	v, err := msg.Value()
	require.NoError(t, err)
	require.True(t, v)
}

func TestWorker_cachedResultIsStable(t *testing.T) {
	w := newTestWorker(t, ' ')

	for i := 0; i < 5; i++ {
		msg := ask(t, w, byte(' '))
		v, err := msg.Value()
		require.NoError(t, err)
		require.False(t, v)
	}
}

func TestWorker_wrongKey(t *testing.T) {
	w := newTestWorker(t, 123)

	msg := ask(t, w, byte(0))
	require.Equal(t, KindErrorReply, msg.Kind())
	require.Equal(t, "expected character 123 but received 0", msg.Reason())

	// The mismatch is about the key, not the payload kind.
	require.NotContains(t, msg.Reason(), "payload")
}

func TestWorker_wrongPayloadKind(t *testing.T) {
	w := newTestWorker(t, 123)

	msg := ask(t, w, "foo")
	require.Equal(t, KindErrorReply, msg.Kind())
	require.Equal(t, "expected a character payload but received string", msg.Reason())
}

func TestWorker_everyRequestAnswered(t *testing.T) {
	const n = 100

	w := newTestWorker(t, 'Q')
	reply := mailbox.New[Message]()

	for i := 0; i < n; i++ {
		require.NoError(t, w.Send(t.Context(), NewRequest(byte('Q'), reply)))
	}
	for i := 0; i < n; i++ {
		msg, ok := reply.Dequeue(t.Context())
		require.True(t, ok)
		v, err := msg.Value()
		require.NoError(t, err)
		require.True(t, v)
	}
}

func TestWorker_terminate(t *testing.T) {
	w := SpawnWorker('a', isAlNum, WorkerOptions{Context: t.Context()})

	w.Terminate()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	reply := mailbox.New[Message]()
	err := w.Send(t.Context(), NewRequest(byte('a'), reply))
	require.ErrorIs(t, err, ErrWorkerStopped)

	// Terminating again is a no-op.
	w.Terminate()
}

func TestWorker_requestsBeforePillAreAnswered(t *testing.T) {
	w := SpawnWorker('7', isAlNum, WorkerOptions{Context: t.Context()})
	reply := mailbox.New[Message]()

	require.NoError(t, w.Send(t.Context(), NewRequest(byte('7'), reply)))
	w.Terminate()

	msg, ok := reply.Dequeue(t.Context())
	require.True(t, ok)
	v, err := msg.Value()
	require.NoError(t, err)
	require.True(t, v)

	<-w.Done()
}

// A reply mailbox shared by concurrent callers delivers answers in FIFO
// order, not to the caller that asked. This forces the interleaving where
// the second caller dequeues the first caller's answer, which is why every
// lookup must use its own private reply mailbox.
func TestWorker_sharedReplyMailboxCrossDelivery(t *testing.T) {
	wAlpha := newTestWorker(t, 'A') // answers true
	wBang := newTestWorker(t, '!')  // answers false

	shared := mailbox.New[Message]()

	// Caller 1 asks the 'A' worker and is slow to collect its answer.
	require.NoError(t, wAlpha.Send(t.Context(), NewRequest(byte('A'), shared)))
	require.Eventually(t, func() bool { return shared.Len() == 1 },
		time.Second, time.Millisecond)

	// Caller 2 asks the '!' worker and dequeues first.
	require.NoError(t, wBang.Send(t.Context(), NewRequest(byte('!'), shared)))

	msg, ok := shared.Dequeue(t.Context())
	require.True(t, ok)
	v, err := msg.Value()
	require.NoError(t, err)

	// Caller 2 got caller 1's answer.
	require.True(t, v, "second caller received the first caller's reply")
}
