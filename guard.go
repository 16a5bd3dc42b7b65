package segdeque

import "github.com/lucasgdosr/segdeque/alloc"

// blockGuard owns blocks acquired for an operation that has not committed
// yet. acquire obtains all requested blocks or releases the ones it already
// holds and reports the allocator's error; take hands the blocks over once
// the operation can no longer fail. A guard that is never taken released
// everything, so a failed multi-block acquisition leaves no storage behind.
type blockGuard[T any] struct {
	alloc  alloc.Allocator[T]
	blocks [][]T
}

func (g *blockGuard[T]) acquire(n, length int) error {
	for range n {
		b, err := g.alloc.NewBlock(length)
		if err != nil {
			g.release()
			return err
		}
		g.blocks = append(g.blocks, b)
	}
	return nil
}

func (g *blockGuard[T]) release() {
	for _, b := range g.blocks {
		g.alloc.ReleaseBlock(b)
	}
	g.blocks = nil
}

func (g *blockGuard[T]) take() [][]T {
	bs := g.blocks
	g.blocks = nil
	return bs
}

// wipeGuard empties the deque unless the operation it protects commits. The
// assign family uses it: a failed assignment must leave the deque logically
// empty rather than holding an unspecified mix of old and new elements.
type wipeGuard[T any] struct {
	d         *Deque[T]
	committed bool
}

func (g *wipeGuard[T]) commit() { g.committed = true }

func (g *wipeGuard[T]) done() {
	if !g.committed {
		g.d.Clear()
	}
}
