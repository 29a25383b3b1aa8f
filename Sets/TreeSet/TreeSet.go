package TreeSet

import (
	"io"

	"github.com/g-m-twostay/go-ordset/Sets"
	"github.com/g-m-twostay/go-ordset/Trees"
	"github.com/rs/zerolog"
)

// TreeSet is an ordered set of unique values backed by one of the Trees engines, chosen when
// it's created. Two values are the same element iff the Comparator returns 0 for them.
// A TreeSet owns its values: the destroy function, if any, is called exactly once on every
// value that leaves the set, whether removed, replaced by an equivalent value, or dropped by
// Destroy. Rebalancing never destroys anything.
// The times given are for the AVL and B-tree backends. With the BST backend log(n) is the
// height of the tree instead, which is n in the worst case.
// A TreeSet is not safe for concurrent use; wrap the whole set in a single mutex if it's
// shared between goroutines.
type TreeSet[E any] struct {
	eng     Trees.Engine[E]
	cmp     Sets.Comparator[E]
	destroy Sets.DestroyFunc[E]
	sz      uint
	//incremented on every change of the structure when check is set.
	gen   uint64
	check bool
	log   zerolog.Logger
}

var _ Sets.Navigable[int, Node[int]] = (*TreeSet[int])(nil)

// New empty TreeSet ordered by cmp. destroy may be nil. Panics with *NilComparatorError if
// cmp is nil.
func New[E any](cmp Sets.Comparator[E], destroy Sets.DestroyFunc[E], opts ...Option) *TreeSet[E] {
	if cmp == nil {
		panic(&NilComparatorError{})
	}
	c := DefaultConfig()
	for _, o := range opts {
		o(&c)
	}
	u := &TreeSet[E]{
		eng:     Trees.New[E](c.Backend, cmp),
		cmp:     cmp,
		destroy: destroy,
		check:   c.CheckedNodes,
		log:     c.Logger.With().Str("backend", c.Backend.String()).Logger(),
	}
	u.log.Debug().Bool("checked", u.check).Msg("created set")
	return u
}

func (u *TreeSet[E]) Size() uint {
	return u.sz
}

func (u *TreeSet[E]) Kind() Trees.Kind {
	return u.eng.Kind()
}

func (u *TreeSet[E]) mutated() {
	if u.check {
		u.gen++
	}
}

func (u *TreeSet[E]) drop(v E) {
	if u.destroy != nil {
		u.destroy(v)
	}
}

// Insert v. If an equivalent value is in the set, it's replaced by v and destroyed; the
// structure doesn't change, so Nodes stay valid.
// Time: O(log(n))
func (u *TreeSet[E]) Insert(v E) {
	if old, inserted := u.eng.Insert(v); inserted {
		u.sz++
		u.mutated()
	} else {
		u.log.Trace().Msg("replaced equivalent value")
		u.drop(old)
	}
}

// Remove the value equivalent to v and destroy it. Returns false if there's no such value.
// Time: O(log(n))
func (u *TreeSet[E]) Remove(v E) bool {
	old, removed := u.eng.Remove(v)
	if removed {
		u.sz--
		u.mutated()
		u.drop(old)
	}
	return removed
}

// Find the value equivalent to v. The stored value is returned, which may differ from v.
// Time: O(log(n))
func (u *TreeSet[E]) Find(v E) (E, bool) {
	if r := u.eng.Find(v); r != nil {
		return r.Value(), true
	}
	return *new(E), false
}

// FindNode is the Node of the value equivalent to v.
// Time: O(log(n))
func (u *TreeSet[E]) FindNode(v E) (Node[E], bool) {
	return u.node(u.eng.Find(v))
}

// First Node, in ascending order.
// Time: O(log(n))
func (u *TreeSet[E]) First() (Node[E], bool) {
	return u.node(u.eng.First())
}

// Last Node, in ascending order.
// Time: O(log(n))
func (u *TreeSet[E]) Last() (Node[E], bool) {
	return u.node(u.eng.Last())
}

// Next Node after n, or false if n holds the largest value. The zero Node has no next, so
// Next(First()) on an empty set is false too.
// Time: O(log(n))
func (u *TreeSet[E]) Next(n Node[E]) (Node[E], bool) {
	if n.Nil() {
		return Node[E]{}, false
	}
	return u.node(u.eng.Next(u.valid(n)))
}

// Previous Node before n, or false if n holds the smallest value. The zero Node has no
// previous.
// Time: O(log(n))
func (u *TreeSet[E]) Previous(n Node[E]) (Node[E], bool) {
	if n.Nil() {
		return Node[E]{}, false
	}
	return u.node(u.eng.Previous(u.valid(n)))
}

// NodeValue is the value held by n. Panics with Trees.InvalidRefError on the zero Node.
func (u *TreeSet[E]) NodeValue(n Node[E]) E {
	r := u.valid(n)
	if r == nil {
		panic(Trees.InvalidRefError{Kind: u.Kind(), Ref: nil})
	}
	return r.Value()
}

// SetDestroy replaces the destroy function and returns the previous one. f may be nil.
func (u *TreeSet[E]) SetDestroy(f Sets.DestroyFunc[E]) Sets.DestroyFunc[E] {
	old := u.destroy
	u.destroy = f
	return old
}

// Destroy every value in the set and empty it. The set stays usable afterward.
// Time: O(n)
func (u *TreeSet[E]) Destroy() {
	u.log.Debug().Uint("size", u.sz).Msg("destroying set")
	u.eng.Clear(u.destroy)
	u.sz = 0
	u.mutated()
}

// Visit every value in ascending order, moving from First with Next. f mustn't modify the set.
// Time: O(n*D), D being the height; that's O(n^2) for a degenerate BST.
func (u *TreeSet[E]) Visit(f func(E)) {
	for r := u.eng.First(); r != nil; r = u.eng.Next(r) {
		f(r.Value())
	}
}

// Height of the backing structure, the number of levels for a B-tree.
func (u *TreeSet[E]) Height() int {
	return u.eng.Height()
}

// Corrupt reports whether the backing structure is broken, or holds a number of values
// different from Size.
// Time: O(n)
func (u *TreeSet[E]) Corrupt() bool {
	if u.eng.Corrupt() {
		return true
	}
	var n uint
	u.eng.Walk(func(E) bool {
		n++
		return true
	})
	return n != u.sz
}

// Print the backing structure level by level.
func (u *TreeSet[E]) Print(w io.Writer) {
	u.eng.Print(w)
}
