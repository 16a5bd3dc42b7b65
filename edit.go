package segdeque

import (
	"iter"
	"math"
)

/*****************************************************************************
 * INSERT
 *****************************************************************************/

// Insert places vs, in order, so that vs[0] ends up at position i. Panics if
// i is out of [0, Len()]. The shorter side of the Deque is shifted to make
// room, halving the worst-case move cost; i == 0 and i == Len() degenerate
// to pure front/back appends with no element moves. All blocks are acquired
// before any element moves, so on error the Deque is unchanged.
func (d *Deque[T]) Insert(i int, vs ...T) error {
	d.checkInsertIndex(i)
	m := len(vs)
	if m == 0 {
		return nil
	}
	if m > math.MaxInt-d.size {
		return ErrTooLong
	}
	if i <= d.size-i {
		if err := d.growFront(m); err != nil {
			return err
		}
		for j := 0; j < i; j++ {
			*d.ptr(j - m) = *d.ptr(j)
		}
		for j, v := range vs {
			*d.ptr(i - m + j) = v
		}
		d.startBlock, d.startOff = d.locate(-m)
	} else {
		if err := d.growBack(m); err != nil {
			return err
		}
		for j := d.size - 1; j >= i; j-- {
			*d.ptr(j + m) = *d.ptr(j)
		}
		for j, v := range vs {
			*d.ptr(i + j) = v
		}
	}
	d.size += m
	return nil
}

// InsertSeq inserts every element of the single-pass sequence seq at
// position i, preserving order. Panics if i is out of [0, Len()].
//
// Because the sequence length is unknown up front, the elements are first
// staged on a scratch deque sharing this Deque's allocator. The shorter
// side of the receiver is then moved onto the staging deque, the staging
// deque is aligned to the receiver's block offsets, and the two are joined
// by transferring block pointers, with an element copy only for the one
// block both sides share. Interior blocks of the untouched longer side are
// never copied. Every allocation happens before the receiver is mutated, so
// on error it is unchanged.
func (d *Deque[T]) InsertSeq(i int, seq iter.Seq[T]) error {
	d.checkInsertIndex(i)
	stage, err := New[T](WithAllocator[T](d.alloc), WithBlockLength[T](d.blockLen))
	if err != nil {
		return err
	}
	defer stage.Release()
	for v := range seq {
		if err := stage.PushBack(v); err != nil {
			return err
		}
	}
	if stage.size == 0 {
		return nil
	}
	if stage.size > math.MaxInt-d.size {
		return ErrTooLong
	}
	if i <= d.size-i {
		return d.spliceFront(i, stage)
	}
	return d.spliceBack(i, stage)
}

// spliceFront joins stage and the receiver's prefix [0, i) in front of the
// receiver's remaining content. stage must share the receiver's allocator
// and block length.
func (d *Deque[T]) spliceFront(i int, stage *Deque[T]) error {
	m := stage.size
	L := d.blockLen
	t := i + m
	// Align stage so the joined left part will end exactly where the kept
	// content begins, offset-wise.
	_, remOff := d.locate(i)
	target := mod(remOff-t, L)
	if err := stage.shiftBy(mod(mod(target+i, L)-stage.startOff, L)); err != nil {
		return err
	}
	if err := stage.growFront(i); err != nil {
		return err
	}
	// No allocation from here on; the receiver can now be mutated safely.
	if i > 0 {
		for j := 0; j < i; j++ {
			*stage.ptr(j - i) = *d.ptr(j)
		}
		stage.startBlock, stage.startOff = stage.locate(-i)
		stage.size = t
		var zero T
		for j := 0; j < i; j++ {
			*d.ptr(j) = zero
		}
		d.startBlock, d.startOff = d.locate(i)
		d.size -= i
	}
	// Clear the way: every allocated block in front of the kept content
	// goes back to the allocator so stage's blocks can slot in directly.
	for b := d.loBlock; b < d.startBlock; b++ {
		d.alloc.ReleaseBlock(d.blocks[b])
		d.blocks[b] = nil
	}
	d.loBlock = d.startBlock
	// Merge the shared boundary block, then transfer whole blocks by
	// pointer.
	stageLast := stage.lastBlockSlot()
	full := stageLast - stage.startBlock
	if d.startOff > 0 {
		lo := 0
		if stageLast == stage.startBlock {
			lo = stage.startOff
		}
		copy(d.blocks[d.startBlock][lo:d.startOff], stage.blocks[stageLast][lo:d.startOff])
	} else {
		// The left part ends on a block edge; there is no shared block.
		full++
	}
	if full > 0 {
		d.ensureIndex(full, 0)
		for k := 0; k < full; k++ {
			d.blocks[d.startBlock-full+k] = stage.blocks[stage.startBlock+k]
			stage.blocks[stage.startBlock+k] = nil
		}
		d.loBlock = d.startBlock - full
	}
	d.startBlock -= full
	d.startOff = target
	d.size += t
	stage.size = 0
	return nil
}

// spliceBack joins the receiver's suffix [i, Len()) and stage behind the
// receiver's kept content. The back side being the shorter one implies
// i >= 1 here.
func (d *Deque[T]) spliceBack(i int, stage *Deque[T]) error {
	m := stage.size
	L := d.blockLen
	s := d.size - i
	// The joined right part begins where the kept content ends.
	target := mod(d.startOff+i, L)
	if err := stage.shiftBy(mod(target-stage.startOff, L)); err != nil {
		return err
	}
	if err := stage.growBack(s); err != nil {
		return err
	}
	// No allocation from here on.
	for j := 0; j < s; j++ {
		*stage.ptr(m + j) = *d.ptr(i + j)
	}
	stage.size += s
	var zero T
	for j := i; j < d.size; j++ {
		*d.ptr(j) = zero
	}
	d.size = i
	newLast := d.lastBlockSlot()
	for b := newLast + 1; b <= d.hiBlock; b++ {
		d.alloc.ReleaseBlock(d.blocks[b])
		d.blocks[b] = nil
	}
	d.hiBlock = newLast
	stageLast := stage.lastBlockSlot()
	firstWhole := stage.startBlock
	if target > 0 {
		hi := L
		if stageLast == stage.startBlock {
			_, e := stage.locate(stage.size - 1)
			hi = e + 1
		}
		copy(d.blocks[newLast][target:hi], stage.blocks[stage.startBlock][target:hi])
		firstWhole++
	}
	if full := stageLast - firstWhole + 1; full > 0 {
		d.ensureIndex(0, full)
		for k := 0; k < full; k++ {
			d.blocks[d.hiBlock+1+k] = stage.blocks[firstWhole+k]
			stage.blocks[firstWhole+k] = nil
		}
		d.hiBlock += full
	}
	d.size += m + s
	stage.size = 0
	return nil
}

// shiftBy moves the whole content delta slots toward the back, 0 <= delta
// < blockLen, zeroing the vacated leading slots. Used to align a staging
// deque's block offsets before a splice.
func (d *Deque[T]) shiftBy(delta int) error {
	if delta == 0 {
		return nil
	}
	if err := d.growBack(delta); err != nil {
		return err
	}
	for j := d.size - 1; j >= 0; j-- {
		*d.ptr(j + delta) = *d.ptr(j)
	}
	var zero T
	for j := 0; j < min(delta, d.size); j++ {
		*d.ptr(j) = zero
	}
	d.startBlock, d.startOff = d.locate(delta)
	return nil
}

/*****************************************************************************
 * ERASE AND RESIZE
 *****************************************************************************/

// Erase destroys the n elements starting at position i and closes the gap
// by moving the shorter of the two remaining sides inward. Vacated slots
// are zeroed and boundary blocks left empty at the shrinking end are
// released. Returns ErrOutOfRange if the span does not lie inside the
// Deque; a valid span never fails.
func (d *Deque[T]) Erase(i, n int) error {
	if i < 0 || n < 0 || n > d.size-i {
		return ErrOutOfRange
	}
	if n == 0 {
		return nil
	}
	if n == d.size {
		d.Clear()
		return nil
	}
	var zero T
	for j := i; j < i+n; j++ {
		*d.ptr(j) = zero
	}
	if i <= d.size-(i+n) {
		oldStart := d.startBlock
		for j := i - 1; j >= 0; j-- {
			*d.ptr(j + n) = *d.ptr(j)
		}
		for j := 0; j < min(n, i); j++ {
			*d.ptr(j) = zero
		}
		d.startBlock, d.startOff = d.locate(n)
		d.size -= n
		d.trimFront(oldStart)
	} else {
		oldLast := d.lastBlockSlot()
		for j := i + n; j < d.size; j++ {
			*d.ptr(j - n) = *d.ptr(j)
		}
		for j := d.size - n; j < d.size; j++ {
			*d.ptr(j) = zero
		}
		d.size -= n
		d.trimBack(oldLast)
	}
	return nil
}

// Resize changes the length to n, erasing from the back when shrinking and
// appending zero values when growing.
func (d *Deque[T]) Resize(n int) error {
	var zero T
	return d.ResizeWith(n, zero)
}

// ResizeWith changes the length to n, erasing from the back when shrinking
// and appending copies of v when growing. On error the Deque is unchanged.
func (d *Deque[T]) ResizeWith(n int, v T) error {
	if n < 0 {
		return ErrNegativeCount
	}
	if n <= d.size {
		return d.Erase(n, d.size-n)
	}
	m := n - d.size
	if err := d.growBack(m); err != nil {
		return err
	}
	for j := 0; j < m; j++ {
		*d.ptr(d.size + j) = v
	}
	d.size = n
	return nil
}

/*****************************************************************************
 * ASSIGN
 *****************************************************************************/

// Assign replaces the whole content with vs, reusing as many existing slots
// as possible before erasing the surplus or appending the shortfall. If the
// append fails, the Deque is left logically empty, matching the
// erase-then-insert sequence a caller would otherwise write.
func (d *Deque[T]) Assign(vs ...T) error {
	g := wipeGuard[T]{d: d}
	defer g.done()
	n := min(len(vs), d.size)
	for j := 0; j < n; j++ {
		*d.ptr(j) = vs[j]
	}
	switch {
	case len(vs) < d.size:
		if err := d.Erase(len(vs), d.size-len(vs)); err != nil {
			return err
		}
	case len(vs) > d.size:
		if err := d.PushBack(vs[n:]...); err != nil {
			return err
		}
	}
	g.commit()
	return nil
}

// AssignSeq replaces the whole content with the elements of seq, with the
// same slot reuse and failure contract as Assign.
func (d *Deque[T]) AssignSeq(seq iter.Seq[T]) error {
	g := wipeGuard[T]{d: d}
	defer g.done()
	j := 0
	for v := range seq {
		if j < d.size {
			*d.ptr(j) = v
		} else {
			if err := d.PushBack(v); err != nil {
				return err
			}
		}
		j++
	}
	if j < d.size {
		if err := d.Erase(j, d.size-j); err != nil {
			return err
		}
	}
	g.commit()
	return nil
}

// mod wraps a into [0, b).
func mod(a, b int) int {
	_, r := floorDiv(a, b)
	return r
}
