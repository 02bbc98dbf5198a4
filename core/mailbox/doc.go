// Package mailbox provides the blocking FIFO message queue that actors
// receive on and requesters await replies on.
//
// A mailbox differs from a plain channel in two ways: it is unbounded, so
// enqueueing never blocks a producer, and a blocked Dequeue is released by
// context cancellation rather than by closing the queue.
package mailbox
