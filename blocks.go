package segdeque

import (
	"math"
	"math/bits"
	"unsafe"
)

// Blocks are sized so that one block's footprint stays near targetBlockBytes
// for small elements, while large elements still get at least minBlockLength
// slots per block to amortize block allocation over several pushes.
const (
	targetBlockBytes = 256
	minBlockLength   = 16

	// minIndexLen is the smallest index array a Deque carries; the padding
	// on both sides of the live span absorbs a few block insertions at
	// either end before the index itself must grow.
	minIndexLen = 8
)

// BlockLength returns the default number of element slots per block for
// element type T: max(16, 256/sizeof(T)).
func BlockLength[T any]() int {
	size := unsafe.Sizeof(*new(T))
	if size == 0 {
		return targetBlockBytes
	}
	n := int(targetBlockBytes / size)
	if n < minBlockLength {
		n = minBlockLength
	}
	return n
}

/*****************************************************************************
 * POSITION ARITHMETIC
 *****************************************************************************/

// locate maps element position i (which may be negative, or one past the
// live range, for slots adjacent to the content) to an index-array slot and
// an in-block offset.
func (d *Deque[T]) locate(i int) (block, off int) {
	q, r := floorDiv(d.startOff+i, d.blockLen)
	return d.startBlock + q, r
}

// ptr returns the address of the slot for element position i. The slot's
// block must be allocated.
func (d *Deque[T]) ptr(i int) *T {
	b, off := d.locate(i)
	return &d.blocks[b][off]
}

// lastBlockSlot returns the index-array slot of the block holding the last
// element, or the start block when empty.
func (d *Deque[T]) lastBlockSlot() int {
	if d.size == 0 {
		return d.startBlock
	}
	b, _ := d.locate(d.size - 1)
	return b
}

/*****************************************************************************
 * GROWTH
 *****************************************************************************/

// growFront makes sure at least e element slots are ready in front of the
// first element: reuse reserved spare blocks first, then acquire exactly the
// missing blocks in one guarded step. On error nothing has changed.
func (d *Deque[T]) growFront(e int) error {
	free := (d.startBlock-d.loBlock)*d.blockLen + d.startOff
	if free >= e {
		return nil
	}
	need := (e - free + d.blockLen - 1) / d.blockLen
	g := blockGuard[T]{alloc: d.alloc}
	if err := g.acquire(need, d.blockLen); err != nil {
		return err
	}
	d.ensureIndex(need, 0)
	for k, b := range g.take() {
		d.blocks[d.loBlock-1-k] = b
	}
	d.loBlock -= need
	return nil
}

// growBack is the mirror of growFront for the back end.
func (d *Deque[T]) growBack(e int) error {
	free := (d.hiBlock-d.startBlock+1)*d.blockLen - (d.startOff + d.size)
	if free >= e {
		return nil
	}
	need := (e - free + d.blockLen - 1) / d.blockLen
	g := blockGuard[T]{alloc: d.alloc}
	if err := g.acquire(need, d.blockLen); err != nil {
		return err
	}
	d.ensureIndex(0, need)
	for k, b := range g.take() {
		d.blocks[d.hiBlock+1+k] = b
	}
	d.hiBlock += need
	return nil
}

// ensureIndex guarantees front free index slots before loBlock and back free
// slots after hiBlock, reallocating the index array with the allocated range
// re-centered when either side is short. Only block pointers move; elements
// stay where they are.
func (d *Deque[T]) ensureIndex(front, back int) {
	if d.loBlock >= front && d.hiBlock+back < len(d.blocks) {
		return
	}
	count := d.hiBlock - d.loBlock + 1
	idxLen := int(ceilPow2(uint(count + front + back)))
	if idxLen < len(d.blocks) {
		idxLen = len(d.blocks)
	}
	if idxLen < minIndexLen {
		idxLen = minIndexLen
	}
	idx := make([][]T, idxLen)
	newLo := front + (idxLen-count-front-back)/2
	copy(idx[newLo:], d.blocks[d.loBlock:d.hiBlock+1])
	delta := newLo - d.loBlock
	d.blocks = idx
	d.loBlock += delta
	d.hiBlock += delta
	d.startBlock += delta
}

/*****************************************************************************
 * SHRINKING
 *****************************************************************************/

// trimFront releases the blocks in slots [from, startBlock) vacated by a
// front-side shrink, but only when they are the outermost allocated blocks:
// reserved spares in front of them stay put so the allocated range remains
// contiguous.
func (d *Deque[T]) trimFront(from int) {
	if d.loBlock != from {
		return
	}
	for b := from; b < d.startBlock; b++ {
		d.alloc.ReleaseBlock(d.blocks[b])
		d.blocks[b] = nil
	}
	d.loBlock = d.startBlock
}

// trimBack is the mirror of trimFront: releases the blocks a back-side
// shrink vacated below slot upTo, unless spares sit behind them.
func (d *Deque[T]) trimBack(upTo int) {
	if d.hiBlock != upTo {
		return
	}
	last := d.lastBlockSlot()
	for b := last + 1; b <= upTo; b++ {
		d.alloc.ReleaseBlock(d.blocks[b])
		d.blocks[b] = nil
	}
	d.hiBlock = last
}

// Reserve acquires enough blocks that n pushes at either end of the Deque
// perform no block allocation and no index-array growth. The blocks are
// acquired in a single guarded step, so on error the Deque is unchanged.
// Returns ErrNegativeCount for a negative n and ErrTooLong if the required
// capacity cannot be addressed.
func (d *Deque[T]) Reserve(n int) error {
	if n < 0 {
		return ErrNegativeCount
	}
	if n == 0 {
		return nil
	}
	if n > math.MaxInt-d.size || n/d.blockLen > math.MaxInt/2-d.Cap()/d.blockLen {
		return ErrTooLong
	}
	freeF := (d.startBlock-d.loBlock)*d.blockLen + d.startOff
	freeB := (d.hiBlock-d.startBlock+1)*d.blockLen - (d.startOff + d.size)
	needF, needB := 0, 0
	if n > freeF {
		needF = (n - freeF + d.blockLen - 1) / d.blockLen
	}
	if n > freeB {
		needB = (n - freeB + d.blockLen - 1) / d.blockLen
	}
	if needF+needB == 0 {
		return nil
	}
	g := blockGuard[T]{alloc: d.alloc}
	if err := g.acquire(needF+needB, d.blockLen); err != nil {
		return err
	}
	d.ensureIndex(needF, needB)
	bs := g.take()
	for k := 0; k < needF; k++ {
		d.blocks[d.loBlock-1-k] = bs[k]
	}
	d.loBlock -= needF
	for k := 0; k < needB; k++ {
		d.blocks[d.hiBlock+1+k] = bs[needF+k]
	}
	d.hiBlock += needB
	return nil
}

// ShrinkToFit releases every reserved spare block and reduces the index
// array to exactly the span of occupied blocks. Elements never move, and
// calling it twice in a row releases nothing the second time.
func (d *Deque[T]) ShrinkToFit() {
	last := d.lastBlockSlot()
	for b := d.loBlock; b < d.startBlock; b++ {
		d.alloc.ReleaseBlock(d.blocks[b])
		d.blocks[b] = nil
	}
	for b := last + 1; b <= d.hiBlock; b++ {
		d.alloc.ReleaseBlock(d.blocks[b])
		d.blocks[b] = nil
	}
	span := last - d.startBlock + 1
	idx := make([][]T, span)
	copy(idx, d.blocks[d.startBlock:last+1])
	d.blocks = idx
	d.loBlock, d.hiBlock = 0, span-1
	d.startBlock = 0
}

/*****************************************************************************
 * SMALL HELPERS
 *****************************************************************************/

// floorDiv divides rounding toward negative infinity, with 0 <= r < b.
func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

func ceilPow2(x uint) uint {
	// For our purposes, 0 is invalid.
	if x == 0 {
		return 1
	}
	const arch = bits.UintSize
	msb := arch - 1 - bits.LeadingZeros(x)
	var result uint = 1 << msb
	if result < x {
		result <<= 1
	}
	return result
}
