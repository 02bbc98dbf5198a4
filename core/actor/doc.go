// Package actor implements the worker actors and the message protocol they
// speak.
//
// Each [Worker] is an independent goroutine bound to exactly one character
// in [0,255]. It computes its classification once at spawn, then loops over
// its private mailbox: a matching request is answered with the cached
// boolean, a mismatched request with an error reply naming the mismatch,
// and the poison pill ([NewTerminate]) ends the loop.
//
// Messages are a discriminated union tagged by [Kind]. An error reply
// carries only a failure reason; its payload, value and return-address
// accessors fail with that reason, so callers must branch on the tag before
// touching contents.
//
// A request/reply exchange looks like:
//
//	reply := mailbox.New[actor.Message]()
//	w := actor.SpawnWorker('A', isAlNum, actor.WorkerOptions{})
//	_ = w.Send(ctx, actor.NewRequest(byte('A'), reply))
//	msg, _ := reply.Dequeue(ctx)
//	v, err := msg.Value()
//
// Each concurrent requester must use its own reply mailbox: a mailbox is
// FIFO and cannot route replies to a particular waiter, so a reply mailbox
// shared by concurrent callers can hand an answer to the wrong one.
package actor
