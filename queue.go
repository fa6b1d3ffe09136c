package squeue

import (
	"bytes"
	"strings"
	"unsafe"

	"deedles.dev/squeue/internal/list"
)

// A Queue holds text values in a singly-linked chain of nodes. Values
// can be inserted at the head or the tail and are removed from the
// head. A zero value Queue is an empty queue that allocates from
// [Heap].
//
// Every method may be called on a nil *Queue, in which case it fails
// or does nothing as documented. A Queue must not be copied after
// first use, must not be used after Free, and is not safe for
// concurrent use. Callers that share a Queue between goroutines must
// synchronize access to it themselves.
type Queue struct {
	_ noCopy

	alloc Allocator
	mem   []byte
	chain list.Single[entry]
}

// entry is the payload of a node. It owns the node's own block and
// the block holding the value's text followed by a NUL byte.
type entry struct {
	mem []byte
	val []byte
}

func (e entry) text() []byte {
	return e.val[:len(e.val)-1]
}

type node = list.SingleNode[entry]

var (
	queueSize = int(unsafe.Sizeof(Queue{}))
	nodeSize  = int(unsafe.Sizeof(node{}))
)

// New returns a new, empty Queue that allocates from [Heap].
func New() *Queue {
	return NewAlloc(Heap)
}

// NewAlloc returns a new, empty Queue that allocates from a. It
// returns nil if a can't provide the memory for the Queue itself.
func NewAlloc(a Allocator) *Queue {
	mem := a.Alloc(queueSize)
	if mem == nil {
		return nil
	}
	return &Queue{alloc: a, mem: mem}
}

func (q *Queue) allocator() Allocator {
	if q.alloc == nil {
		return Heap
	}
	return q.alloc
}

// Free releases every value and node in the queue, from head to tail,
// followed by the queue itself. It does nothing if q is nil.
func (q *Queue) Free() {
	if q == nil {
		return
	}

	a := q.allocator()
	for n := q.chain.PopHead(); n != nil; n = q.chain.PopHead() {
		release(a, n)
	}
	if q.mem != nil {
		a.Free(q.mem)
	}
	q.mem = nil
	q.alloc = nil
}

// InsertHead inserts a copy of the text in s at the head of the
// queue. It returns false without modifying the queue if q or s is
// nil or if memory for the new node can't be allocated.
//
// As with a C string, the text in s ends at its first NUL byte, if
// there is one.
func (q *Queue) InsertHead(s []byte) bool {
	if q == nil || s == nil {
		return false
	}

	n := q.newNode(s)
	if n == nil {
		return false
	}
	q.chain.PushHead(n)
	return true
}

// InsertTail inserts a copy of the text in s at the tail of the
// queue. It fails under the same conditions as InsertHead.
func (q *Queue) InsertTail(s []byte) bool {
	if q == nil || s == nil {
		return false
	}

	n := q.newNode(s)
	if n == nil {
		return false
	}
	q.chain.PushTail(n)
	return true
}

func (q *Queue) newNode(s []byte) *node {
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	a := q.allocator()
	mem := a.Alloc(nodeSize)
	if mem == nil {
		return nil
	}

	val := a.Alloc(len(s) + 1)
	if val == nil {
		a.Free(mem)
		return nil
	}
	copy(val, s)
	val[len(s)] = 0

	return &node{Val: entry{mem: mem, val: val}}
}

// RemoveHead removes the value at the head of the queue. It returns
// false without modifying the queue if q is nil or empty.
//
// If out is not empty, the removed text is copied into it the way
// strncpy does: at most len(out)-1 bytes are copied, the remainder is
// zeroed, and the last byte of out is always NUL.
func (q *Queue) RemoveHead(out []byte) bool {
	if q == nil {
		return false
	}

	n := q.chain.PopHead()
	if n == nil {
		return false
	}

	if len(out) > 0 {
		dst := out[:len(out)-1]
		c := copy(dst, n.Val.text())
		clear(dst[c:])
		out[len(out)-1] = 0
	}

	release(q.allocator(), n)
	return true
}

func release(a Allocator, n *node) {
	a.Free(n.Val.val)
	a.Free(n.Val.mem)
	n.Val = entry{}
}

// Size returns the number of values in the queue, or 0 if q is nil.
func (q *Queue) Size() int {
	if q == nil {
		return 0
	}
	return q.chain.Len()
}

// Reverse reverses the order of the values in the queue by relinking
// its existing nodes. It allocates nothing and does nothing if q is
// nil or has fewer than two values.
func (q *Queue) Reverse() {
	if q == nil {
		return
	}
	q.chain.Reverse()
}

// String returns the values of the queue from head to tail in the
// form "[a b c]", or "NULL" if q is nil.
func (q *Queue) String() string {
	if q == nil {
		return "NULL"
	}

	var buf strings.Builder
	buf.WriteByte('[')
	for n := range q.chain.Nodes() {
		if n != q.chain.Head() {
			buf.WriteByte(' ')
		}
		buf.Write(n.Val.text())
	}
	buf.WriteByte(']')
	return buf.String()
}
