// Package squeue implements a queue of text values backed by a
// singly-linked list. Values can be inserted at either end and are
// removed from the front, so the same Queue serves as both a FIFO and
// a LIFO.
//
// All memory a Queue uses for its nodes and values is obtained from an
// [Allocator] and handed back to it exactly once, which makes it
// possible to account for every block with an allocator such as
// [deedles.dev/squeue/harness.Tracker].
package squeue

// noCopy may be embedded into structs which must not be copied after
// the first use. It is detected by go vet's copylocks checker.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
