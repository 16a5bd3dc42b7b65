package segdeque

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/segdeque/alloc"
)

func TestInsertMiddle(t *testing.T) {
	d, err := FromSlice([]int{0, 1, 2, 3, 4, 5}, WithBlockLength[int](4))
	require.NoError(t, err)

	// Front side is shorter: the prefix shifts left.
	require.NoError(t, d.Insert(2, 90, 91))
	require.Equal(t, []int{0, 1, 90, 91, 2, 3, 4, 5}, collect(d))

	// Back side is shorter: the suffix shifts right.
	require.NoError(t, d.Insert(6, 80))
	require.Equal(t, []int{0, 1, 90, 91, 2, 3, 80, 4, 5}, collect(d))
}

func TestInsertAtEnds(t *testing.T) {
	d, err := FromSlice([]int{1, 2}, WithBlockLength[int](4))
	require.NoError(t, err)
	require.NoError(t, d.Insert(0, -2, -1))
	require.NoError(t, d.Insert(d.Len(), 3, 4))
	require.Equal(t, []int{-2, -1, 1, 2, 3, 4}, collect(d))

	empty, err := New[int]()
	require.NoError(t, err)
	require.NoError(t, empty.Insert(0, 7))
	require.Equal(t, []int{7}, collect(empty))
}

func TestInsertNothing(t *testing.T) {
	d, err := FromSlice([]int{1, 2})
	require.NoError(t, err)
	require.NoError(t, d.Insert(1))
	require.Equal(t, []int{1, 2}, collect(d))
}

func TestInsertFailureLeavesUnchanged(t *testing.T) {
	ba := newBudgetAlloc[int](1)
	d, err := FromSlice([]int{1, 2, 3, 4}, WithAllocator[int](ba), WithBlockLength[int](4))
	require.NoError(t, err)

	require.ErrorIs(t, d.Insert(2, 5, 6, 7, 8, 9), errBoom)
	require.Equal(t, []int{1, 2, 3, 4}, collect(d))
}

func TestErase(t *testing.T) {
	d, err := FromSlice(iota40(), WithBlockLength[int](16))
	require.NoError(t, err)

	require.NoError(t, d.Erase(10, 5))
	want := append(slices.Clone(iota40()[:10]), iota40()[15:]...)
	require.Equal(t, want, collect(d))
	require.Equal(t, 35, d.Len())
}

func TestEraseZeroesVacatedSlots(t *testing.T) {
	ptrs := make([]*int, 12)
	for i := range ptrs {
		ptrs[i] = new(int)
	}
	d, err := FromSlice(ptrs, WithBlockLength[*int](4))
	require.NoError(t, err)

	// Front side shorter: the slots in front of the new first element must
	// have been zeroed.
	require.NoError(t, d.Erase(2, 3))
	require.Equal(t, 9, d.Len())
	for i := -3; i < 0; i++ {
		b, off := d.locate(i)
		if d.blocks[b] != nil {
			require.Nil(t, d.blocks[b][off])
		}
	}

	// Back side shorter: same for the slots behind the new last element.
	require.NoError(t, d.Erase(6, 2))
	require.Equal(t, 7, d.Len())
	for i := d.size; i < d.size+2; i++ {
		b, off := d.locate(i)
		if b <= d.hiBlock && d.blocks[b] != nil {
			require.Nil(t, d.blocks[b][off])
		}
	}
}

func TestEraseAll(t *testing.T) {
	d, err := FromSlice(iota40(), WithBlockLength[int](4))
	require.NoError(t, err)
	require.NoError(t, d.Erase(0, 40))
	require.True(t, d.Empty())
	require.Equal(t, d.BlockLen(), d.Cap())
	require.NoError(t, d.PushBack(1))
	require.Equal(t, []int{1}, collect(d))
}

func TestEraseSpanErrors(t *testing.T) {
	d, err := FromSlice([]int{1, 2, 3})
	require.NoError(t, err)
	require.ErrorIs(t, d.Erase(-1, 1), ErrOutOfRange)
	require.ErrorIs(t, d.Erase(0, -1), ErrOutOfRange)
	require.ErrorIs(t, d.Erase(2, 2), ErrOutOfRange)
	require.ErrorIs(t, d.Erase(4, 0), ErrOutOfRange)
	require.NoError(t, d.Erase(3, 0))
	require.Equal(t, []int{1, 2, 3}, collect(d))
}

func TestEraseReleasesEmptiedBlocks(t *testing.T) {
	counting := alloc.NewCounting[int](alloc.Runtime[int]{})
	d, err := FromSlice(iota40(), WithBlockLength[int](4), WithAllocator[int](counting))
	require.NoError(t, err)
	require.Equal(t, 10, counting.Live())

	// Erasing a whole block's worth at the front frees its block.
	require.NoError(t, d.Erase(0, 8))
	require.Equal(t, 8, counting.Live())
}

func TestInsertSeq(t *testing.T) {
	for _, n := range []int{0, 1, 3, 17, 64} {
		for _, i := range []int{0, 1, 7, 20, 39, 40} {
			d, err := FromSlice(iota40(), WithBlockLength[int](4))
			require.NoError(t, err)

			ins := make([]int, n)
			for k := range ins {
				ins[k] = 100 + k
			}
			require.NoError(t, d.InsertSeq(i, slices.Values(ins)))

			want := slices.Insert(slices.Clone(iota40()), i, ins...)
			require.Equal(t, want, collect(d), "n=%d i=%d", n, i)
		}
	}
}

func TestInsertSeqIntoEmpty(t *testing.T) {
	d, err := New[int](WithBlockLength[int](4))
	require.NoError(t, err)
	require.NoError(t, d.InsertSeq(0, slices.Values([]int{1, 2, 3, 4, 5, 6, 7, 8, 9})))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, collect(d))
}

func TestInsertSeqDoesNotLeakBlocks(t *testing.T) {
	counting := alloc.NewCounting[int](alloc.Runtime[int]{})
	d, err := FromSlice(iota40(), WithBlockLength[int](4), WithAllocator[int](counting))
	require.NoError(t, err)

	require.NoError(t, d.InsertSeq(3, slices.Values(iota40())))
	require.Equal(t, 80, d.Len())
	want := slices.Insert(slices.Clone(iota40()), 3, iota40()...)
	require.Equal(t, want, collect(d))

	d.Release()
	require.Equal(t, 0, counting.Live())
}

func TestInsertSeqFailureLeavesUnchanged(t *testing.T) {
	ba := newBudgetAlloc[int](20)
	d, err := FromSlice(iota40(), WithAllocator[int](ba), WithBlockLength[int](4))
	require.NoError(t, err)

	err = d.InsertSeq(20, func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, iota40(), collect(d))
}

func TestResize(t *testing.T) {
	d, err := FromSlice([]int{1, 2, 3}, WithBlockLength[int](4))
	require.NoError(t, err)

	require.NoError(t, d.Resize(6))
	require.Equal(t, []int{1, 2, 3, 0, 0, 0}, collect(d))

	require.NoError(t, d.Resize(2))
	require.Equal(t, []int{1, 2}, collect(d))

	require.NoError(t, d.Resize(2))
	require.Equal(t, []int{1, 2}, collect(d))

	require.NoError(t, d.Resize(0))
	require.True(t, d.Empty())

	require.ErrorIs(t, d.Resize(-1), ErrNegativeCount)
}

func TestResizeWith(t *testing.T) {
	d, err := FromSlice([]int{1}, WithBlockLength[int](4))
	require.NoError(t, err)
	require.NoError(t, d.ResizeWith(4, 9))
	require.Equal(t, []int{1, 9, 9, 9}, collect(d))
}

func TestAssign(t *testing.T) {
	d, err := FromSlice(iota40(), WithBlockLength[int](4))
	require.NoError(t, err)

	require.NoError(t, d.Assign(7, 8, 9))
	require.Equal(t, []int{7, 8, 9}, collect(d))

	require.NoError(t, d.Assign(1, 2, 3, 4, 5, 6))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, collect(d))

	require.NoError(t, d.Assign())
	require.True(t, d.Empty())
}

func TestAssignSeq(t *testing.T) {
	d, err := FromSlice([]int{9, 9, 9}, WithBlockLength[int](4))
	require.NoError(t, err)
	require.NoError(t, d.AssignSeq(slices.Values(iota40())))
	require.Equal(t, iota40(), collect(d))

	require.NoError(t, d.AssignSeq(slices.Values([]int{5})))
	require.Equal(t, []int{5}, collect(d))
}

func TestAssignFailureLeavesEmpty(t *testing.T) {
	ba := newBudgetAlloc[int](1)
	d, err := FromSlice([]int{1, 2}, WithAllocator[int](ba), WithBlockLength[int](4))
	require.NoError(t, err)

	vs := make([]int, 20)
	require.ErrorIs(t, d.Assign(vs...), errBoom)
	require.True(t, d.Empty())

	// The deque stays usable within the storage it already holds.
	require.NoError(t, d.PushBack(1))
	require.Equal(t, []int{1}, collect(d))
}
