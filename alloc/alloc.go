// Package alloc defines the block allocator abstraction consumed by the
// segmented deque, along with a few ready-made implementations: the plain Go
// heap allocator, an instrumented counting wrapper, and a free-list pool.
//
// Allocators may be shared among many container instances. The container
// never locks around allocator calls, so an allocator that is shared across
// goroutines must synchronize internally; Counting and Pool do, Runtime has
// no state to protect.
//
// Two allocator values are interchangeable if and only if they compare equal
// with ==. The deque uses that comparison to decide whether blocks may be
// handed from one container to another in O(1) or must be copied element by
// element. Every implementation in this package is comparable; a custom
// implementation must be comparable too.
package alloc

import (
	"errors"
	"sync"
)

// ErrBadLength is returned when asking an allocator for a block with a
// non-positive number of element slots.
var ErrBadLength = errors.New("block length must be positive")

// Allocator hands out and takes back fixed-length blocks of element storage.
//
// NewBlock returns a fully zeroed slice with exactly n element slots, or an
// error if the storage cannot be obtained. An error must be returned before
// any observable side effect. ReleaseBlock returns a block obtained from the
// same allocator; it never fails.
type Allocator[T any] interface {
	NewBlock(n int) ([]T, error)
	ReleaseBlock(block []T)
}

// Runtime is the default allocator: blocks come from the Go heap and
// releasing a block simply drops the reference for the garbage collector.
// Runtime is stateless, so every Runtime value compares equal to every
// other, and block transfer between deques using it is always O(1).
type Runtime[T any] struct{}

// NewBlock allocates a zeroed block of n element slots.
func (Runtime[T]) NewBlock(n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrBadLength
	}
	return make([]T, n), nil
}

// ReleaseBlock drops the block for the garbage collector to reclaim.
func (Runtime[T]) ReleaseBlock([]T) {}

// Stats is a snapshot of a Counting allocator's activity.
type Stats struct {
	// BlockCount and ReleaseCount are the total number of NewBlock and
	// ReleaseBlock calls since construction.
	BlockCount   uint64
	ReleaseCount uint64
	// Live is the number of blocks currently outstanding, Peak the largest
	// value Live has reached.
	Live int
	Peak int
	// LiveSlots is the total number of element slots in outstanding blocks.
	LiveSlots int
}

// Counting wraps another allocator and keeps allocation statistics. It is
// how tests observe allocation behavior (how many blocks an operation
// obtained, whether every block was eventually released), and it doubles as
// a leak check: a container that was fully destroyed should leave Live at
// zero.
type Counting[T any] struct {
	next  Allocator[T]
	mu    sync.Mutex
	stats Stats
}

// NewCounting returns a Counting allocator backed by next.
func NewCounting[T any](next Allocator[T]) *Counting[T] {
	return &Counting[T]{next: next}
}

// NewBlock allocates through the backing allocator and records the result.
// Failed allocations are not counted as live.
func (c *Counting[T]) NewBlock(n int) ([]T, error) {
	b, err := c.next.NewBlock(n)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.stats.BlockCount++
	c.stats.Live++
	c.stats.LiveSlots += len(b)
	if c.stats.Live > c.stats.Peak {
		c.stats.Peak = c.stats.Live
	}
	c.mu.Unlock()
	return b, nil
}

// ReleaseBlock records the release and forwards it.
func (c *Counting[T]) ReleaseBlock(b []T) {
	c.mu.Lock()
	c.stats.ReleaseCount++
	c.stats.Live--
	c.stats.LiveSlots -= len(b)
	c.mu.Unlock()
	c.next.ReleaseBlock(b)
}

// Stats returns a snapshot of the counters.
func (c *Counting[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Live returns the number of blocks currently outstanding.
func (c *Counting[T]) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.Live
}

// Pool keeps released blocks on a free list and reuses them before asking
// its backing allocator for fresh storage. Reused blocks are re-zeroed, so
// callers see the same contract as NewBlock on any other allocator. Use it
// when a workload churns blocks (steady push/pop traffic at the same end)
// and allocation pressure matters.
type Pool[T any] struct {
	next Allocator[T]
	mu   sync.Mutex
	free map[int][][]T
}

// NewPool returns a Pool backed by next.
func NewPool[T any](next Allocator[T]) *Pool[T] {
	return &Pool[T]{next: next, free: make(map[int][][]T)}
}

// NewBlock reuses a free block of the requested length if one is available,
// otherwise allocates through the backing allocator.
func (p *Pool[T]) NewBlock(n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrBadLength
	}
	p.mu.Lock()
	if list := p.free[n]; len(list) > 0 {
		b := list[len(list)-1]
		p.free[n] = list[:len(list)-1]
		p.mu.Unlock()
		clear(b)
		return b, nil
	}
	p.mu.Unlock()
	return p.next.NewBlock(n)
}

// ReleaseBlock parks the block on the free list for reuse.
func (p *Pool[T]) ReleaseBlock(b []T) {
	if len(b) == 0 {
		return
	}
	p.mu.Lock()
	p.free[len(b)] = append(p.free[len(b)], b)
	p.mu.Unlock()
}

// Drain releases every parked block to the backing allocator and empties the
// free list.
func (p *Pool[T]) Drain() {
	p.mu.Lock()
	free := p.free
	p.free = make(map[int][][]T)
	p.mu.Unlock()
	for _, list := range free {
		for _, b := range list {
			p.next.ReleaseBlock(b)
		}
	}
}
