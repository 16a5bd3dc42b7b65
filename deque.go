// Package segdeque implements a segmented double-ended queue: a deque backed
// by fixed-length blocks addressed through an index array, rather than one
// contiguous ring buffer.
//
// Pushing at either end is amortized O(1) and never moves existing elements.
// Storage is obtained from a pluggable block allocator (see the alloc
// subpackage), and every operation that can fail acquires all the storage it
// needs before mutating anything, so a failed call leaves the deque exactly
// as it was.
//
// To create a Deque you must use one of the constructors: New, FromSlice,
// Repeat, or Collect. A zero Deque is an internal staging state and is not
// usable; creating one in the following way is wrong:
//
//	var d segdeque.Deque[int] // wrong
//
// Removal always zeroes the vacated slots, so references held by removed
// elements are released for the garbage collector.
//
// Read-only operations are safe for concurrent callers as long as no
// goroutine is mutating the Deque; mutating operations require exclusive
// access. The allocator may be shared between instances and must tolerate
// concurrent calls from independent ones.
package segdeque

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/lucasgdosr/segdeque/alloc"
)

// Deque is a double-ended queue over fixed-length blocks.
type Deque[T any] struct {
	alloc    alloc.Allocator[T]
	blocks   [][]T
	blockLen int
	// loBlock..hiBlock is the contiguous range of allocated index slots.
	// Live elements start at (startBlock, startOff) and run for size slots;
	// allocated blocks outside the live span are reserved spares.
	loBlock    int
	hiBlock    int
	startBlock int
	startOff   int
	size       int
}

/*****************************************************************************
 * OPTIONS AND CONSTRUCTORS
 *****************************************************************************/

type settings[T any] struct {
	alloc    alloc.Allocator[T]
	blockLen int
	capacity int
}

// Option configures a Deque under construction.
type Option[T any] func(*settings[T]) error

// WithAllocator sets the block allocator. The default is alloc.Runtime,
// which takes blocks from the Go heap.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(s *settings[T]) error {
		if a == nil {
			return ErrNilAllocator
		}
		s.alloc = a
		return nil
	}
}

// WithBlockLength overrides the number of element slots per block. The
// default is BlockLength[T](). Lengths below 2 are rejected.
func WithBlockLength[T any](n int) Option[T] {
	return func(s *settings[T]) error {
		if n < 2 {
			return ErrBlockLength
		}
		s.blockLen = n
		return nil
	}
}

// WithCapacity pre-reserves blocks so that n pushes at either end of the new
// Deque perform no allocation. It is equivalent to calling Reserve(n) right
// after construction. Rejects a negative n.
func WithCapacity[T any](n int) Option[T] {
	return func(s *settings[T]) error {
		if n < 0 {
			return ErrNegativeCount
		}
		s.capacity = n
		return nil
	}
}

// New returns an empty Deque. The initial position is centered inside the
// first block so that pushes at either end are equally far from needing a
// new block.
func New[T any](opts ...Option[T]) (*Deque[T], error) {
	return build(0, nil, opts)
}

// FromSlice copies every element of s into a new Deque. Memory is never
// shared with the slice.
func FromSlice[T any](s []T, opts ...Option[T]) (*Deque[T], error) {
	return build(len(s), func(d *Deque[T]) {
		for i, v := range s {
			*d.ptr(i) = v
		}
	}, opts)
}

// Repeat returns a Deque holding n copies of v. Returns an error for a
// negative n.
func Repeat[T any](v T, n int, opts ...Option[T]) (*Deque[T], error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	return build(n, func(d *Deque[T]) {
		for i := 0; i < n; i++ {
			*d.ptr(i) = v
		}
	}, opts)
}

// Collect drains seq into a new Deque in order.
func Collect[T any](seq iter.Seq[T], opts ...Option[T]) (*Deque[T], error) {
	d, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	for v := range seq {
		if err := d.PushBack(v); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}

// build is the common construction funnel: validate options, acquire every
// block the initial content needs, position the content centered in the
// block space, and only then run the fill step. Any failure releases all
// acquired blocks; a partially built Deque never escapes.
func build[T any](n int, fill func(*Deque[T]), opts []Option[T]) (*Deque[T], error) {
	s := settings[T]{alloc: alloc.Runtime[T]{}, blockLen: BlockLength[T]()}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}
	L := s.blockLen
	nb := (n + L - 1) / L
	if nb == 0 {
		nb = 1
	}
	g := blockGuard[T]{alloc: s.alloc}
	if err := g.acquire(nb, L); err != nil {
		return nil, err
	}
	idxLen := int(ceilPow2(uint(nb * 2)))
	if idxLen < minIndexLen {
		idxLen = minIndexLen
	}
	lo := (idxLen - nb) / 2
	d := &Deque[T]{
		alloc:      s.alloc,
		blocks:     make([][]T, idxLen),
		blockLen:   L,
		loBlock:    lo,
		hiBlock:    lo + nb - 1,
		startBlock: lo,
		// Center the content; the floor leaves the extra free slot at the
		// back, favoring PushBack on an uneven split.
		startOff: (nb*L - n) / 2,
		size:     n,
	}
	for k, b := range g.take() {
		d.blocks[lo+k] = b
	}
	if fill != nil {
		fill(d)
	}
	if s.capacity > 0 {
		if err := d.Reserve(s.capacity); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}

/*****************************************************************************
 * SIZE AND CAPACITY QUERIES
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil. It is O(1).
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

// Empty returns whether the Deque is empty.
func (d *Deque[T]) Empty() bool { return d.size == 0 }

// Cap returns the number of element slots in currently allocated blocks,
// reserved spares included.
func (d *Deque[T]) Cap() int { return (d.hiBlock - d.loBlock + 1) * d.blockLen }

// BlockLen returns the number of element slots per block for this Deque.
func (d *Deque[T]) BlockLen() int { return d.blockLen }

/*****************************************************************************
 * PUSH AND POP
 *****************************************************************************/

// PushBack puts its arguments at the back of the Deque; the last argument
// becomes the new back. All blocks the arguments need are acquired before
// anything is written, so on error the Deque is unchanged.
func (d *Deque[T]) PushBack(vs ...T) error {
	m := len(vs)
	if m == 0 {
		return nil
	}
	if m > math.MaxInt-d.size {
		return ErrTooLong
	}
	if err := d.growBack(m); err != nil {
		return err
	}
	for i, v := range vs {
		*d.ptr(d.size + i) = v
	}
	d.size += m
	return nil
}

// PushFront puts its arguments at the front of the Deque; the last argument
// becomes the new front. All blocks the arguments need are acquired before
// anything is written, so on error the Deque is unchanged.
func (d *Deque[T]) PushFront(vs ...T) error {
	m := len(vs)
	if m == 0 {
		return nil
	}
	if m > math.MaxInt-d.size {
		return ErrTooLong
	}
	if err := d.growFront(m); err != nil {
		return err
	}
	for i, v := range vs {
		*d.ptr(-(i + 1)) = v
	}
	d.startBlock, d.startOff = d.locate(-m)
	d.size += m
	return nil
}

// PeekFront returns the first element. Returns false if the Deque is empty.
func (d *Deque[T]) PeekFront() (t T, ok bool) {
	if d.size == 0 {
		return
	}
	return d.blocks[d.startBlock][d.startOff], true
}

// PeekBack returns the last element. Returns false if the Deque is empty.
func (d *Deque[T]) PeekBack() (t T, ok bool) {
	if d.size == 0 {
		return
	}
	return *d.ptr(d.size - 1), true
}

// PopFront removes and returns the first element, zeroing its slot. Returns
// false if the Deque is empty. A boundary block the front leaves behind is
// released to the allocator unless reserved spares sit in front of it.
func (d *Deque[T]) PopFront() (t T, ok bool) {
	if d.size == 0 {
		return
	}
	p := d.ptr(0)
	t = *p
	var zero T
	*p = zero
	d.size--
	if d.size > 0 {
		d.startOff++
		if d.startOff == d.blockLen {
			old := d.startBlock
			d.startBlock++
			d.startOff = 0
			d.trimFront(old)
		}
	}
	return t, true
}

// PopBack removes and returns the last element, zeroing its slot. Returns
// false if the Deque is empty. A boundary block the back leaves behind is
// released to the allocator unless reserved spares sit behind it.
func (d *Deque[T]) PopBack() (t T, ok bool) {
	if d.size == 0 {
		return
	}
	old := d.lastBlockSlot()
	p := d.ptr(d.size - 1)
	t = *p
	var zero T
	*p = zero
	d.size--
	d.trimBack(old)
	return t, true
}

/*****************************************************************************
 * ELEMENT ACCESS
 *****************************************************************************/

// At indexes into the i-th position in the Deque. Panics if out of bounds.
func (d *Deque[T]) At(i int) T {
	d.checkBounds(i)
	return d.AtUnsafe(i)
}

// AtUnsafe indexes into the i-th position in the Deque. It does not check
// bounds: an invalid index reads some other slot, or panics if it lands on
// an unallocated one.
func (d *Deque[T]) AtUnsafe(i int) T {
	return *d.ptr(i)
}

// Set writes v to the i-th position in the Deque. Panics if out of bounds.
func (d *Deque[T]) Set(i int, v T) {
	d.checkBounds(i)
	d.SetUnsafe(i, v)
}

// SetUnsafe writes v to the i-th position in the Deque. It does not check
// bounds: an invalid index writes some other slot, or panics if it lands on
// an unallocated one.
func (d *Deque[T]) SetUnsafe(i int, v T) {
	*d.ptr(i) = v
}

// Swap swaps the elements at the i-th and j-th indexes. Panics if out of
// bounds.
func (d *Deque[T]) Swap(i, j int) {
	d.checkBounds(i)
	d.checkBounds(j)
	d.SwapUnsafe(i, j)
}

// SwapUnsafe swaps the elements at the i-th and j-th indexes without bounds
// checks.
func (d *Deque[T]) SwapUnsafe(i, j int) {
	pi, pj := d.ptr(i), d.ptr(j)
	*pi, *pj = *pj, *pi
}

/*****************************************************************************
 * WHOLE-CONTAINER OPERATIONS
 *****************************************************************************/

// Clear removes every element, releases every block except one, and
// re-centers that block in the middle of the index array so subsequent
// pushes in either direction are equally cheap. Clear never fails.
func (d *Deque[T]) Clear() {
	keep := d.blocks[d.startBlock]
	clear(keep)
	for b := d.loBlock; b <= d.hiBlock; b++ {
		if blk := d.blocks[b]; blk != nil && b != d.startBlock {
			clear(blk)
			d.alloc.ReleaseBlock(blk)
		}
		d.blocks[b] = nil
	}
	mid := len(d.blocks) / 2
	d.blocks[mid] = keep
	d.loBlock, d.hiBlock = mid, mid
	d.startBlock, d.startOff = mid, d.blockLen/2
	d.size = 0
}

// Release destroys every element and returns every block to the allocator,
// leaving the Deque unusable. It is never required with the default
// allocator (the garbage collector reclaims dropped blocks), but with a
// pooling allocator it hands the storage back deterministically.
func (d *Deque[T]) Release() {
	if d == nil || d.blocks == nil {
		return
	}
	for b := d.loBlock; b <= d.hiBlock; b++ {
		if blk := d.blocks[b]; blk != nil {
			clear(blk)
			d.alloc.ReleaseBlock(blk)
			d.blocks[b] = nil
		}
	}
	d.blocks = nil
	d.size = 0
}

// SwapWith exchanges the contents of two Deques. When both use the same
// allocator (compared with ==) this is an O(1) exchange of the internal
// representation. Otherwise each side's content is rebuilt element by
// element with the other side's allocator, which is O(n+m) and may fail on
// allocation; on failure both Deques are unchanged.
func (d *Deque[T]) SwapWith(o *Deque[T]) error {
	if d == o {
		return nil
	}
	if d.alloc == o.alloc {
		*d, *o = *o, *d
		return nil
	}
	dc, err := o.CloneWith(d.alloc)
	if err != nil {
		return err
	}
	oc, err := d.CloneWith(o.alloc)
	if err != nil {
		dc.Release()
		return err
	}
	d.adopt(dc)
	o.adopt(oc)
	return nil
}

// adopt releases the current blocks and takes over c's representation. The
// caller guarantees c was built with this Deque's allocator.
func (d *Deque[T]) adopt(c *Deque[T]) {
	for b := d.loBlock; b <= d.hiBlock; b++ {
		if blk := d.blocks[b]; blk != nil {
			clear(blk)
			d.alloc.ReleaseBlock(blk)
		}
	}
	*d = *c
}

// Clone returns a value-independent copy using the same allocator. Mutating
// either Deque afterwards does not affect the other.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	return d.CloneWith(d.alloc)
}

// CloneWith returns a value-independent copy built with allocator a. The
// copy is always element-wise; blocks are never shared.
func (d *Deque[T]) CloneWith(a alloc.Allocator[T]) (*Deque[T], error) {
	if a == nil {
		return nil, ErrNilAllocator
	}
	return build(d.size, func(c *Deque[T]) {
		for i := 0; i < d.size; i++ {
			*c.ptr(i) = *d.ptr(i)
		}
	}, []Option[T]{WithAllocator[T](a), WithBlockLength[T](d.blockLen)})
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrNegativeCount is returned for a negative size, count, or capacity
// argument.
var ErrNegativeCount = errors.New("count cannot be negative")

// ErrTooLong is returned when an operation would grow the Deque beyond what
// its block arithmetic can address. It is reported before any state changes.
var ErrTooLong = errors.New("deque too long")

// ErrOutOfRange is returned by Erase for a span that does not lie inside the
// Deque.
var ErrOutOfRange = errors.New("span out of range")

// ErrNilAllocator is returned when given a nil allocator.
var ErrNilAllocator = errors.New("allocator must not be nil")

// ErrBlockLength is returned by WithBlockLength for lengths below 2.
var ErrBlockLength = errors.New("block length must be at least 2")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

func (d *Deque[T]) checkBounds(i int) {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("segdeque: index %d out of bounds with length %d", i, d.Len()))
	}
}

func (d *Deque[T]) checkInsertIndex(i int) {
	if i < 0 || i > d.Len() {
		panic(fmt.Sprintf("segdeque: insert index %d out of bounds with length %d", i, d.Len()))
	}
}
