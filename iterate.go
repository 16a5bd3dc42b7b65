package segdeque

import "iter"

/*****************************************************************************
 * ITERATION
 *****************************************************************************/

// All returns an index/value sequence over the elements from front to back.
// The walk goes block by block rather than through position arithmetic.
// Safe on a nil Deque. Inserting or erasing during the walk is undefined;
// Set on an already-visited position is fine.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d.Len() == 0 {
			return
		}
		i := 0
		off := d.startOff
		for b := d.startBlock; i < d.size; b++ {
			blk := d.blocks[b]
			for ; off < len(blk) && i < d.size; off++ {
				if !yield(i, blk[off]) {
					return
				}
				i++
			}
			off = 0
		}
	}
}

// Values returns the elements from front to back. Safe on a nil Deque.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range d.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an index/value sequence over the elements from back to
// front. Safe on a nil Deque.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d.Len() == 0 {
			return
		}
		i := d.size - 1
		b, off := d.locate(i)
		for ; i >= 0; b-- {
			blk := d.blocks[b]
			for ; off >= 0 && i >= 0; off-- {
				if !yield(i, blk[off]) {
					return
				}
				i--
			}
			off = d.blockLen - 1
		}
	}
}
