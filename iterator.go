package segdeque

// Iterator addresses one element position as a (block slot, in-block offset)
// pair. It is a value: arithmetic returns new Iterators and never mutates
// the receiver. All arithmetic is O(1) block-count math, not element
// stepping, and remains O(1) for any distance.
//
// An Iterator stays valid as long as its element is not erased, shifted by
// an Insert/Erase on its side of the deque, or invalidated by Clear,
// SwapWith, or Release. A push at either end that forces the block index
// array to grow also invalidates Iterators, since block slots move; Reserve
// first to rule that out. Moving an Iterator outside the deque's allocated
// block range, or dereferencing one that does not address a live element,
// is not checked and reads or writes arbitrary slots.
type Iterator[T any] struct {
	d     *Deque[T]
	block int
	off   int
}

// Begin returns an Iterator addressing the first element (equal to End for
// an empty Deque).
func (d *Deque[T]) Begin() Iterator[T] {
	return Iterator[T]{d: d, block: d.startBlock, off: d.startOff}
}

// End returns the Iterator one past the last element.
func (d *Deque[T]) End() Iterator[T] {
	b, off := d.locate(d.size)
	return Iterator[T]{d: d, block: b, off: off}
}

// IteratorAt returns an Iterator addressing position i. The position is not
// bounds checked; i == Len() yields End.
func (d *Deque[T]) IteratorAt(i int) Iterator[T] {
	b, off := d.locate(i)
	return Iterator[T]{d: d, block: b, off: off}
}

// Index returns the element position this Iterator addresses, in O(1).
func (it Iterator[T]) Index() int {
	return (it.block-it.d.startBlock)*it.d.blockLen + it.off - it.d.startOff
}

// Valid reports whether the Iterator addresses a live element.
func (it Iterator[T]) Valid() bool {
	i := it.Index()
	return i >= 0 && i < it.d.size
}

// Next returns the Iterator advanced by one position, crossing into the
// next block when at the block edge.
func (it Iterator[T]) Next() Iterator[T] { return it.Add(1) }

// Prev returns the Iterator moved back by one position, crossing into the
// previous block when at the block edge.
func (it Iterator[T]) Prev() Iterator[T] { return it.Add(-1) }

// Add returns the Iterator moved by n positions (n may be negative).
func (it Iterator[T]) Add(n int) Iterator[T] {
	q, r := floorDiv(it.off+n, it.d.blockLen)
	it.block += q
	it.off = r
	return it
}

// Diff returns the distance it - o in element positions, in O(1). Both
// Iterators must belong to the same Deque.
func (it Iterator[T]) Diff(o Iterator[T]) int {
	return (it.block-o.block)*it.d.blockLen + it.off - o.off
}

// Equal reports whether both Iterators address the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.block == o.block && it.off == o.off
}

// Less orders Iterators of the same Deque by position: block slot first,
// then in-block offset.
func (it Iterator[T]) Less(o Iterator[T]) bool {
	if it.block != o.block {
		return it.block < o.block
	}
	return it.off < o.off
}

// Get returns the addressed element. Returns false if the Iterator does not
// address a live element.
func (it Iterator[T]) Get() (t T, ok bool) {
	if !it.Valid() {
		return
	}
	return it.d.blocks[it.block][it.off], true
}

// Value returns the addressed element without any validity check.
func (it Iterator[T]) Value() T {
	return it.d.blocks[it.block][it.off]
}

// Set writes v to the addressed slot without any validity check.
func (it Iterator[T]) Set(v T) {
	it.d.blocks[it.block][it.off] = v
}
