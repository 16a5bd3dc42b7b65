package segdeque

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	a, err := FromSlice(iota40(), WithBlockLength[int](4))
	require.NoError(t, err)
	b, err := FromSlice(iota40(), WithBlockLength[int](16))
	require.NoError(t, err)

	// Equality is element-wise; block layout does not matter.
	require.True(t, Equal(a, b))

	b.Set(20, 99)
	require.False(t, Equal(a, b))

	require.NoError(t, b.Erase(20, 1))
	require.False(t, Equal(a, b))

	var nilD *Deque[int]
	empty, err := New[int]()
	require.NoError(t, err)
	require.True(t, Equal(nilD, nilD))
	require.True(t, Equal(nilD, empty))
	require.False(t, Equal(nilD, a))
}

func TestEqualFunc(t *testing.T) {
	a, err := FromSlice([]string{"Go", "DEQUE"})
	require.NoError(t, err)
	b, err := FromSlice([]string{"go", "deque"})
	require.NoError(t, err)
	require.True(t, a.EqualFunc(b, strings.EqualFold))
	require.False(t, a.EqualFunc(b, func(x, y string) bool { return x == y }))
}

func TestCompare(t *testing.T) {
	mk := func(vs ...int) *Deque[int] {
		d, err := FromSlice(vs, WithBlockLength[int](2))
		require.NoError(t, err)
		return d
	}
	require.Equal(t, 0, Compare(mk(1, 2, 3), mk(1, 2, 3)))
	require.Equal(t, -1, Compare(mk(1, 2), mk(1, 3)))
	require.Equal(t, 1, Compare(mk(2), mk(1, 9, 9)))
	// A prefix orders before anything it prefixes.
	require.Equal(t, -1, Compare(mk(1, 2), mk(1, 2, 0)))
	require.Equal(t, 0, Compare(mk(), mk()))
}

func TestCompareFunc(t *testing.T) {
	a, err := FromSlice([]string{"b"})
	require.NoError(t, err)
	b, err := FromSlice([]string{"A", "z"})
	require.NoError(t, err)
	got := a.CompareFunc(b, func(x, y string) int {
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	})
	require.Equal(t, 1, got)
}

func TestIndexContains(t *testing.T) {
	d, err := FromSlice([]int{5, 3, 8, 3}, WithBlockLength[int](2))
	require.NoError(t, err)

	require.Equal(t, 1, Index(d, 3))
	require.Equal(t, -1, Index(d, 7))
	require.True(t, Contains(d, 8))
	require.False(t, Contains(d, 7))

	require.Equal(t, 2, d.IndexFunc(func(v int) bool { return v > 5 }))
	require.Equal(t, -1, d.IndexFunc(func(v int) bool { return v < 0 }))
	require.True(t, d.ContainsFunc(func(v int) bool { return v%2 == 0 }))
}

func TestIterationOrder(t *testing.T) {
	d, err := FromSlice(iota40(), WithBlockLength[int](4))
	require.NoError(t, err)

	i := 0
	for idx, v := range d.All() {
		require.Equal(t, i, idx)
		require.Equal(t, i, v)
		i++
	}
	require.Equal(t, 40, i)

	i = 39
	for idx, v := range d.Backward() {
		require.Equal(t, i, idx)
		require.Equal(t, i, v)
		i--
	}
	require.Equal(t, -1, i)
}

func TestIterationEarlyBreak(t *testing.T) {
	d, err := FromSlice(iota40(), WithBlockLength[int](4))
	require.NoError(t, err)

	seen := 0
	for _, v := range d.All() {
		if v == 10 {
			break
		}
		seen++
	}
	require.Equal(t, 10, seen)

	seen = 0
	for v := range d.Values() {
		_ = v
		seen++
		if seen == 5 {
			break
		}
	}
	require.Equal(t, 5, seen)

	for i, v := range d.Backward() {
		require.Equal(t, 39, i)
		require.Equal(t, 39, v)
		break
	}
}
