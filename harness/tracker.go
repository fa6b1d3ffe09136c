// Package harness provides an allocation-tracking [squeue.Allocator]
// for testing code that is supposed to account for every block of
// memory that it uses.
package harness

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"unsafe"

	"deedles.dev/squeue"
)

// Junk is the byte that newly allocated blocks are filled with.
const Junk = 0x55

var (
	// ErrBadFree is recorded when a block that is not currently
	// allocated is freed, such as on a double free.
	ErrBadFree = errors.New("free of unallocated block")

	// ErrBadSize is recorded when a block is freed with a length
	// other than the one it was allocated with.
	ErrBadSize = errors.New("free with wrong block size")

	// ErrLeak is returned by Check when blocks are still allocated.
	ErrLeak = errors.New("allocated blocks not freed")
)

var _ squeue.Allocator = (*Tracker)(nil)

// A Tracker is a [squeue.Allocator] that keeps track of every block it
// hands out and can be told to fail allocations on purpose. Misuse,
// such as freeing a block twice, is recorded rather than reported
// immediately and can be retrieved with Err.
//
// A zero value Tracker is ready to use and never fails. A Tracker is
// not safe for concurrent use.
type Tracker struct {
	live map[*byte]int

	allocs, frees, failed int
	liveBytes             int

	failAt   int
	failRate float64
	rand     *rand.Rand

	errs []error
}

// FailAt makes the nth allocation from now fail, counting from 1. It
// applies once. A value less than 1 cancels it.
func (t *Tracker) FailAt(n int) {
	t.failAt = max(n, 0)
}

// SetFailRate makes every allocation fail with probability p, using a
// random source seeded with seed. A p of 0 turns random failures off.
func (t *Tracker) SetFailRate(p float64, seed uint64) {
	t.failRate = min(max(p, 0), 1)
	t.rand = rand.New(rand.NewPCG(seed, seed))
}

func (t *Tracker) fail() bool {
	if t.failAt > 0 {
		t.failAt--
		if t.failAt == 0 {
			return true
		}
	}

	return t.failRate > 0 && t.rand.Float64() < t.failRate
}

// Alloc returns a block of size bytes filled with [Junk], or nil if
// the allocation was made to fail.
func (t *Tracker) Alloc(size int) []byte {
	if size < 0 || t.fail() {
		t.failed++
		return nil
	}

	if t.live == nil {
		t.live = make(map[*byte]int)
	}

	// The extra byte guarantees a unique base address even for empty
	// blocks.
	block := make([]byte, size+1)[:size]
	for i := range block {
		block[i] = Junk
	}

	t.live[unsafe.SliceData(block)] = size
	t.allocs++
	t.liveBytes += size
	return block
}

// Free releases a block previously returned by Alloc. Freeing nil does
// nothing.
func (t *Tracker) Free(block []byte) {
	if block == nil {
		return
	}

	p := unsafe.SliceData(block)
	size, ok := t.live[p]
	if !ok {
		t.errs = append(t.errs, fmt.Errorf("%w: %p", ErrBadFree, p))
		return
	}
	if len(block) != size {
		t.errs = append(t.errs, fmt.Errorf("%w: %p allocated with %v bytes, freed with %v", ErrBadSize, p, size, len(block)))
	}

	delete(t.live, p)
	t.frees++
	t.liveBytes -= size
}

// Live returns the number of blocks that are currently allocated.
func (t *Tracker) Live() int {
	return len(t.live)
}

// LiveBytes returns the total size of the blocks that are currently
// allocated.
func (t *Tracker) LiveBytes() int {
	return t.liveBytes
}

// Allocs returns the number of successful allocations.
func (t *Tracker) Allocs() int {
	return t.allocs
}

// Frees returns the number of successful frees.
func (t *Tracker) Frees() int {
	return t.frees
}

// Failed returns the number of allocations that were made to fail.
func (t *Tracker) Failed() int {
	return t.failed
}

// Err returns every misuse recorded so far joined together, or nil if
// there was none.
func (t *Tracker) Err() error {
	return errors.Join(t.errs...)
}

// Check is like Err but also reports an [ErrLeak] if any blocks are
// still allocated.
func (t *Tracker) Check() error {
	err := t.Err()
	if len(t.live) > 0 {
		err = errors.Join(err, fmt.Errorf("%w: %v blocks, %v bytes", ErrLeak, len(t.live), t.liveBytes))
	}
	return err
}
