package squeue

// An Allocator provides the blocks of memory that a [Queue] keeps its
// nodes and values in.
//
// Alloc returns a block of exactly size bytes, or nil if it can't.
// Every block returned by Alloc is eventually passed back to Free
// exactly once, unchanged.
type Allocator interface {
	Alloc(size int) []byte
	Free(block []byte)
}

// Heap is an Allocator backed by the Go heap. Its Alloc never fails
// and its Free leaves reclamation to the garbage collector.
var Heap Allocator = heap{}

type heap struct{}

func (heap) Alloc(size int) []byte {
	return make([]byte, size)
}

func (heap) Free([]byte) {}
